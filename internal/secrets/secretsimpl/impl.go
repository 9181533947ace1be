package secretsimpl

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/chapala/instagram-story-metrics/internal/secrets"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	errs "github.com/chapala/instagram-story-metrics/pkg/errors"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type SecretsImpl struct {
	sm     secretsmanageriface.SecretsManagerAPI
	logger logger.Logger

	mu    sync.RWMutex
	cache map[string]string
}

var _ secrets.Resolver = (*SecretsImpl)(nil)

func New(opts Opts) (*SecretsImpl, error) {
	awsCfg := aws.NewConfig().WithRegion(opts.Config.AWS.Region)
	if opts.Config.AWS.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(opts.Config.AWS.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &SecretsImpl{
		sm:     secretsmanager.New(sess),
		logger: opts.Logger.WithComponent("SecretResolver"),
		cache:  make(map[string]string),
	}, nil
}

// Get resolves a secret by name, returning the cached value when present.
// Concurrent re-resolution of the same name is harmless: both writers store
// the identical value.
func (s *SecretsImpl) Get(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	value, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return value, nil
	}

	out, err := s.sm.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		s.logger.Error("Failed to retrieve secret", "name", name, "error", err)
		return "", fmt.Errorf("%w: %s: %v", errs.ErrSecretAccess, name, err)
	}

	value = strings.TrimSpace(aws.StringValue(out.SecretString))

	s.mu.Lock()
	s.cache[name] = value
	s.mu.Unlock()

	s.logger.Info("Successfully retrieved secret", "name", name)
	return value, nil
}
