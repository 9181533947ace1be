package notifierimpl

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/chapala/instagram-story-metrics/internal/notifier"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// sender is the slice of the bot API the notifier needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramImpl struct {
	bot    sender
	user   int64
	logger logger.Logger
}

var _ notifier.Client = (*TelegramImpl)(nil)

// New builds the Telegram notifier. When no bot token is configured the
// notifier is a no-op rather than an error, so alerting stays optional.
func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("Notifier")

	if opts.Config.Telegram.Token == "" {
		log.Info("Telegram token not configured, failure alerts disabled")
		return &TelegramImpl{logger: log}, nil
	}

	bot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, err
	}

	return &TelegramImpl{
		bot:    bot,
		user:   opts.Config.Telegram.User,
		logger: log,
	}, nil
}

func (t *TelegramImpl) NotifyBatchFailures(batch domain.BatchResult) {
	if t.bot == nil || len(batch.FailedAccounts) == 0 {
		return
	}

	text := fmt.Sprintf(
		"Story metrics export finished with status %s.\nFailed accounts: %s",
		batch.Status,
		strings.Join(batch.FailedAccounts, ", "),
	)

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.user, text)); err != nil {
		t.logger.Error("Failed to send failure alert", "error", err)
	}
}
