package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"veritas-ai/cmd/api/dto"
	"veritas-ai/cmd/api/middleware"
	"veritas-ai/cmd/api/services"
	"veritas-ai/logger"
)

const oauthStateCookieName = "oauth_state"

func generateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GoogleLoginHandler godoc
// @Summary      Start Google sign-in
// @Description  Generates a state value, stores it in a cookie, and redirects to the Google OAuth consent page. On failure the user still lands on the frontend login page, just without a token.
// @Tags         auth
// @Produce      json
// @Success      302  {string}  string  "Redirect to Google OAuth or to the login completion page"
// @Router       /auth/google/login [get]
func GoogleLoginHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateState()
		if err != nil {
			redirectURL := authSvc.GetRedirectURL()
			logger.ErrorWithFields("google login failed to generate state", logger.Fields{
				"error":       err.Error(),
				"redirect_to": redirectURL,
				"request_id":  c.Request.Header.Get("X-Request-Id"),
				"span_id":     c.Request.Header.Get("X-Span-Id"),
			})
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		// The state cookie binds the callback to this browser session.
		c.SetCookie(oauthStateCookieName, state, 300, "/", "", false, true)

		loginURL := authSvc.BuildGoogleLoginURL(state)
		logger.InfoWithFields("redirect to google oauth", logger.Fields{
			"redirect_to": loginURL,
			"request_id":  c.Request.Header.Get("X-Request-Id"),
			"span_id":     c.Request.Header.Get("X-Span-Id"),
		})
		c.Redirect(http.StatusFound, loginURL)
	}
}

// GoogleCallbackHandler godoc
// @Summary      Handle the Google OAuth callback
// @Description  Verifies the state value, exchanges the code for a Google access token, upserts the user profile, issues a JWT and redirects to the login completion page.
// @Tags         auth
// @Produce      json
// @Success      302  {string}  string  "Redirect to the login completion page (with token on success)"
// @Router       /auth/google/callback [get]
func GoogleCallbackHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := c.Query("state")
		code := c.Query("code")
		redirectURL := authSvc.GetRedirectURL()

		if state == "" || code == "" {
			logger.ErrorWithFields("google callback missing state or code", logger.Fields{
				"state":       state,
				"redirect_to": redirectURL,
				"request_id":  c.Request.Header.Get("X-Request-Id"),
				"span_id":     c.Request.Header.Get("X-Span-Id"),
			})
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		cookieState, err := c.Cookie(oauthStateCookieName)
		if err != nil {
			logger.ErrorWithFields("google callback state cookie not found", logger.Fields{
				"state":       state,
				"error":       err.Error(),
				"redirect_to": redirectURL,
				"request_id":  c.Request.Header.Get("X-Request-Id"),
				"span_id":     c.Request.Header.Get("X-Span-Id"),
			})
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		// Expire the state cookie right away so it cannot be replayed.
		c.SetCookie(oauthStateCookieName, "", -1, "/", "", false, true)

		if cookieState != state {
			logger.ErrorWithFields("google callback invalid state", logger.Fields{
				"cookie_state": cookieState,
				"state":        state,
				"redirect_to":  redirectURL,
				"request_id":   c.Request.Header.Get("X-Request-Id"),
				"span_id":      c.Request.Header.Get("X-Span-Id"),
			})
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		accessToken, err := authSvc.HandleGoogleCallback(c.Request.Context(), code)
		if err != nil {
			logger.ErrorWithFields("google callback failed", logger.Fields{
				"error":       err.Error(),
				"redirect_to": redirectURL,
				"request_id":  c.Request.Header.Get("X-Request-Id"),
				"span_id":     c.Request.Header.Get("X-Span-Id"),
			})
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		redirectWithToken := authSvc.GetRedirectURLWithToken(accessToken)
		logger.InfoWithFields("redirect to login success with token", logger.Fields{
			"request_id": c.Request.Header.Get("X-Request-Id"),
			"span_id":    c.Request.Header.Get("X-Span-Id"),
		})
		c.Redirect(http.StatusFound, redirectWithToken)
	}
}

// GetUserProfileHandler godoc
// @Summary      Get the signed-in user's profile
// @Description  Returns the profile of the user identified by the Bearer token.
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.UserProfileDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /users/profile [get]
func GetUserProfileHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := authSvc.GetUserProfile(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "user_not_found"})
				return
			}
			c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed_to_load_profile"})
			return
		}

		c.JSON(http.StatusOK, dto.UserProfileDTO{
			UID:         profile.UID,
			DisplayName: profile.DisplayName,
			Email:       profile.Email,
			PhotoURL:    profile.PhotoURL,
			Role:        profile.Role,
			CreatedAt:   profile.CreatedAt.Format(time.RFC3339),
			LastLoginAt: profile.LastLoginAt.Format(time.RFC3339),
		})
	}
}
