package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/mongo"

	"veritas-ai/cmd/api/auth"
	"veritas-ai/models"
	"veritas-ai/repositories"
)

type AuthService struct {
	googleOAuth *auth.GoogleOAuthClient
	users       *repositories.UserRepository
	jwtManager  *auth.JWTManager
	redirectURL string
}

var ErrUserNotFound = errors.New("user not found")

func NewAuthService(googleOAuth *auth.GoogleOAuthClient, users *repositories.UserRepository, jwtManager *auth.JWTManager, redirectURL string) *AuthService {
	return &AuthService{
		googleOAuth: googleOAuth,
		users:       users,
		jwtManager:  jwtManager,
		redirectURL: redirectURL,
	}
}

func NewAuthServiceFromEnv(users *repositories.UserRepository) (*AuthService, error) {
	googleClient, err := auth.NewGoogleOAuthClientFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to init GoogleOAuthClient: %w", err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to init JWTManager: %w", err)
	}

	redirectURL := os.Getenv("AUTH_LOGIN_SUCCESS_REDIRECT_URL")
	if redirectURL == "" {
		return nil, fmt.Errorf("AUTH_LOGIN_SUCCESS_REDIRECT_URL is blank")
	}

	return NewAuthService(googleClient, users, jwtManager, redirectURL), nil
}

func (s *AuthService) BuildGoogleLoginURL(state string) string {
	return s.googleOAuth.AuthCodeURL(state)
}

// HandleGoogleCallback exchanges the OAuth code, upserts the user profile
// and issues an access token.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (string, error) {
	token, err := s.googleOAuth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("google oauth exchange: %w", err)
	}

	user, err := s.googleOAuth.FetchProfile(ctx, token)
	if err != nil {
		return "", fmt.Errorf("google userinfo: %w", err)
	}

	if err := s.users.UpsertProfile(ctx, user); err != nil {
		return "", fmt.Errorf("user upsert: %w", err)
	}

	stored, err := s.users.FindByUID(ctx, user.UID)
	if err != nil {
		return "", fmt.Errorf("user lookup after upsert: %w", err)
	}

	accessToken, err := s.jwtManager.Sign(stored.UID, stored.Role)
	if err != nil {
		return "", fmt.Errorf("jwt sign: %w", err)
	}

	return accessToken, nil
}

// GetRedirectURL is the final redirect target of the Google OAuth flow.
// On success the token is appended via GetRedirectURLWithToken; on failure
// the flow redirects here without a token.
func (s *AuthService) GetRedirectURL() string {
	return s.redirectURL
}

func (s *AuthService) GetRedirectURLWithToken(token string) string {
	return fmt.Sprintf("%s?token=%s", s.redirectURL, token)
}

func (s *AuthService) ParseAccessToken(token string) (string, string, error) {
	return s.jwtManager.Parse(token)
}

func (s *AuthService) GetUserProfile(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
