package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"veritas-ai/models"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"

// UIDPrefixGoogle namespaces Google subjects in the users collection so uids
// from other identity sources can never collide with them.
const UIDPrefixGoogle = "google:"

// GoogleOAuthClient drives the authorization-code flow and turns the Google
// userinfo payload into a profile document.
type GoogleOAuthClient struct {
	config      *oauth2.Config
	userinfoURL string
}

func NewGoogleOAuthClientFromEnv() (*GoogleOAuthClient, error) {
	clientID := os.Getenv("GOOGLE_OAUTH_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET")
	redirectURL := os.Getenv("GOOGLE_OAUTH_REDIRECT_URL")

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, fmt.Errorf("google oauth env not set: GOOGLE_OAUTH_CLIENT_ID/SECRET/REDIRECT_URL are required")
	}

	return &GoogleOAuthClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userinfoURL: userinfoEndpoint,
	}, nil
}

func (c *GoogleOAuthClient) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (c *GoogleOAuthClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.config.Exchange(ctx, code)
}

// googleUserinfo is the subset of the OIDC userinfo response a profile needs.
type googleUserinfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// FetchProfile resolves the token's owner and maps them onto the users
// schema. Role and timestamps are left for the repository upsert to settle.
func (c *GoogleOAuthClient) FetchProfile(ctx context.Context, token *oauth2.Token) (*models.User, error) {
	resp, err := c.config.Client(ctx, token).Get(c.userinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo: unexpected status %d", resp.StatusCode)
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("google userinfo: response without subject")
	}

	return &models.User{
		UID:         UIDPrefixGoogle + info.Sub,
		DisplayName: info.Name,
		Email:       info.Email,
		PhotoURL:    info.Picture,
	}, nil
}
