package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	config "github.com/fiaz291/ecommerce-korean-backend/configs"
)

const googleIssuer = "https://accounts.google.com"

// GoogleProfile is the subset of Google's userinfo claims we map onto a user
// record during social sign-in.
type GoogleProfile struct {
	Sub        string `json:"sub"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

type GoogleVerifier struct {
	provider *oidc.Provider
	oauth    *oauth2.Config
}

func NewGoogleVerifier(ctx context.Context, cfg config.GoogleOAuthConfig) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("google oidc provider: %w", err)
	}

	return &GoogleVerifier{
		provider: provider,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// Exchange trades an authorization code for the user's Google profile.
func (g *GoogleVerifier) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange: %w", err)
	}

	info, err := g.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, fmt.Errorf("google userinfo: %w", err)
	}

	var profile GoogleProfile
	if err := info.Claims(&profile); err != nil {
		return nil, fmt.Errorf("parse google claims: %w", err)
	}
	return &profile, nil
}
