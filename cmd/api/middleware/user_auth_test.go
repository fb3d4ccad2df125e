package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubParser struct {
	uid  string
	role string
	err  error
}

func (s stubParser) ParseAccessToken(token string) (string, string, error) {
	return s.uid, s.role, s.err
}

func runIdentityRequest(t *testing.T, handler gin.HandlerFunc, headers map[string]string) (*httptest.ResponseRecorder, string, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var gotUID string
	var gotAnon bool

	r := gin.New()
	r.GET("/probe", handler, func(c *gin.Context) {
		gotUID = UserID(c)
		gotAnon = c.GetBool(CtxAnonymous)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	return recorder, gotUID, gotAnon
}

func TestRequireUserValidToken(t *testing.T) {
	rec, uid, anon := runIdentityRequest(t, RequireUser(stubParser{uid: "user-1", role: "user"}),
		map[string]string{"Authorization": "Bearer token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", uid)
	assert.False(t, anon)
}

func TestRequireUserMissingHeader(t *testing.T) {
	rec, _, _ := runIdentityRequest(t, RequireUser(stubParser{uid: "user-1"}), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserBadToken(t *testing.T) {
	rec, _, _ := runIdentityRequest(t, RequireUser(stubParser{err: errors.New("expired")}),
		map[string]string{"Authorization": "Bearer token"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalUserPrefersToken(t *testing.T) {
	rec, uid, anon := runIdentityRequest(t, OptionalUser(stubParser{uid: "user-1", role: "user"}),
		map[string]string{
			"Authorization":  "Bearer token",
			"X-Anonymous-Id": "device-9",
		})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", uid)
	assert.False(t, anon)
}

func TestOptionalUserAnonymousFallback(t *testing.T) {
	rec, uid, anon := runIdentityRequest(t, OptionalUser(stubParser{}),
		map[string]string{"X-Anonymous-Id": "device-9"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anon:device-9", uid)
	assert.True(t, anon)
}

func TestOptionalUserNoIdentity(t *testing.T) {
	rec, _, _ := runIdentityRequest(t, OptionalUser(stubParser{}), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptionalUserInvalidTokenStillFails(t *testing.T) {
	rec, _, _ := runIdentityRequest(t, OptionalUser(stubParser{err: errors.New("bad signature")}),
		map[string]string{
			"Authorization":  "Bearer token",
			"X-Anonymous-Id": "device-9",
		})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
