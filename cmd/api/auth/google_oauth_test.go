package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/oauth2"
)

func oauthClientFor(url string) *GoogleOAuthClient {
	return &GoogleOAuthClient{config: &oauth2.Config{}, userinfoURL: url}
}

func TestFetchProfileMapsUserinfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"sub": "108213977",
			"email": "jamie@example.com",
			"name": "Jamie Rivera",
			"picture": "https://example.com/avatar.png"
		}`))
	}))
	defer srv.Close()

	user, err := oauthClientFor(srv.URL).FetchProfile(context.Background(), &oauth2.Token{AccessToken: "tok"})
	if err != nil {
		t.Fatalf("FetchProfile failed: %v", err)
	}

	if user.UID != "google:108213977" {
		t.Fatalf("uid = %q, want google-namespaced subject", user.UID)
	}
	if user.DisplayName != "Jamie Rivera" || user.Email != "jamie@example.com" || user.PhotoURL != "https://example.com/avatar.png" {
		t.Fatalf("unexpected profile mapping: %+v", user)
	}
}

func TestFetchProfileRejectsMissingSubject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"email": "jamie@example.com"}`))
	}))
	defer srv.Close()

	if _, err := oauthClientFor(srv.URL).FetchProfile(context.Background(), &oauth2.Token{AccessToken: "tok"}); err == nil {
		t.Fatal("expected error for userinfo without subject")
	}
}

func TestFetchProfileRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := oauthClientFor(srv.URL).FetchProfile(context.Background(), &oauth2.Token{AccessToken: "tok"}); err == nil {
		t.Fatal("expected error for non-200 userinfo response")
	}
}
