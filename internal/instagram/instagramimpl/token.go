package instagramimpl

import (
	"context"
	"net/url"

	"github.com/chapala/instagram-story-metrics/internal/instagram"
)

var requiredScopes = []string{
	"instagram_basic",
	"instagram_manage_insights",
	"pages_read_engagement",
}

type debugTokenResponse struct {
	Data struct {
		Scopes []string `json:"scopes"`
	} `json:"data"`
}

func (g *GraphImpl) VerifyTokenScopes(ctx context.Context, creds instagram.Credentials) bool {
	q := url.Values{}
	q.Set("input_token", creds.AccessToken)
	q.Set("access_token", creds.AccessToken)
	endpoint := g.baseURL + "/debug_token?" + q.Encode()

	var resp debugTokenResponse
	if err := g.getJSON(ctx, creds.Account, endpoint, &resp); err != nil {
		g.logger.Error("Failed to verify token scopes", "account", creds.Account, "error", err)
		return false
	}

	granted := make(map[string]bool, len(resp.Data.Scopes))
	for _, scope := range resp.Data.Scopes {
		granted[scope] = true
	}

	var missing []string
	for _, scope := range requiredScopes {
		if !granted[scope] {
			missing = append(missing, scope)
		}
	}

	if len(missing) > 0 {
		g.logger.Error("Token missing required scopes", "account", creds.Account, "missing", missing)
		return false
	}

	g.logger.Info("Token scopes verified successfully", "account", creds.Account)
	return true
}
