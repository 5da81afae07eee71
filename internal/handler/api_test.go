package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/config"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/repository"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/usecase"
	"github.com/vasapolrittideah/bookmark-keeper-api/pkg/types"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/auth"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/mailer"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/validator"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	cfg := &config.Config{
		AppPasswordResetURL: "http://localhost:3000/password-reset",
		Token: config.TokenConfig{
			Issuer:                      "bookmark-keeper-api",
			AccessTokenSecret:           "access-secret",
			RefreshTokenSecret:          "refresh-secret",
			PasswordResetTokenSecret:    "reset-secret",
			AccessTokenExpiresIn:        15 * time.Minute,
			RefreshTokenExpiresIn:       168 * time.Hour,
			PasswordResetTokenExpiresIn: time.Hour,
		},
	}

	log := zerolog.Nop()

	userRepo := repository.NewUserMemoryRepository()
	bookmarkRepo := repository.NewBookmarkMemoryRepository()
	resetTokenRepo := repository.NewPasswordResetTokenMemoryRepository()

	valid, err := validator.New()
	require.NoError(t, err)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	tokenUsecase := usecase.NewTokenUsecase(userRepo, jwtAuth, cfg)
	authUsecase := usecase.NewAuthUsecase(userRepo, tokenUsecase)
	userUsecase := usecase.NewUserUsecase(userRepo)
	bookmarkUsecase := usecase.NewBookmarkUsecase(bookmarkRepo)
	resetUsecase := usecase.NewPasswordResetUsecase(
		userRepo, resetTokenRepo, jwtAuth, mailer.NewLogMailer(&log), cfg,
	)

	return NewRouter(
		NewAuthHandler(authUsecase, resetUsecase, valid, &log),
		NewUserHandler(userUsecase, valid, &log),
		NewBookmarkHandler(bookmarkUsecase, valid, &log),
		tokenUsecase,
		&log,
	)
}

func doJSON(t *testing.T, router chi.Router, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func signUp(t *testing.T, router chi.Router, email string) types.Tokens {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     email,
		"password":  "Password1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var tokens types.Tokens
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	return tokens
}

func TestEndToEndScenario(t *testing.T) {
	router := newTestRouter(t)

	// signup → 201 with tokens
	signUp(t, router, "john@gmail.com")

	// login same creds → 200 with tokens
	w := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "john@gmail.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tokens types.Tokens
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))

	// GET /users/me → 200 user without password field
	w = doJSON(t, router, http.MethodGet, "/users/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "john@gmail.com")
	assert.NotContains(t, strings.ToLower(w.Body.String()), "password")

	// create bookmark → 201
	w = doJSON(t, router, http.MethodPost, "/bookmarks", tokens.AccessToken, map[string]string{
		"title": "t",
		"link":  "https://x",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// list → length 1
	w = doJSON(t, router, http.MethodGet, "/bookmarks", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	// patch → 200 body contains new title
	w = doJSON(t, router, http.MethodPatch, "/bookmarks/"+created.ID, tokens.AccessToken, map[string]string{
		"title": "t2",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "t2")

	// delete → 204
	w = doJSON(t, router, http.MethodDelete, "/bookmarks/"+created.ID, tokens.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// get afterwards → 404
	w = doJSON(t, router, http.MethodGet, "/bookmarks/"+created.ID, tokens.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignUp_Validation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"firstName": "J", "lastName": "D", "password": "Password1"}},
		{"invalid email", map[string]string{"firstName": "J", "lastName": "D", "email": "nope", "password": "Password1"}},
		{"weak password", map[string]string{"firstName": "J", "lastName": "D", "email": "j@d.com", "password": "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSignUp_DuplicateEmailIsForbiddenNot500(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "john@gmail.com")

	w := doJSON(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"firstName": "John",
		"lastName":  "Doe",
		"email":     "john@gmail.com",
		"password":  "Password1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Credentials taken")
}

func TestLogin_BadCredential(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "john@gmail.com")

	w := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "john@gmail.com",
		"password": "Password2",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Credential incorrect")
}

func TestGuardedEndpointsRequireAccessToken(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users"},
		{http.MethodGet, "/bookmarks"},
		{http.MethodPost, "/bookmarks"},
		{http.MethodPost, "/auth/logout"},
		{http.MethodPost, "/auth/refresh"},
	}

	for _, p := range paths {
		w := doJSON(t, router, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)

		w = doJSON(t, router, p.method, p.path, "garbage-token", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s with bad token", p.method, p.path)
	}
}

func TestRefreshEndpoint_RejectsAccessToken(t *testing.T) {
	router := newTestRouter(t)
	tokens := signUp(t, router, "john@gmail.com")

	w := doJSON(t, router, http.MethodPost, "/auth/refresh", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshEndpoint_RotationInvalidatesOldToken(t *testing.T) {
	router := newTestRouter(t)
	tokens := signUp(t, router, "john@gmail.com")

	w := doJSON(t, router, http.MethodPost, "/auth/refresh", tokens.RefreshToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fresh types.Tokens
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fresh))
	require.NotEmpty(t, fresh.RefreshToken)

	// Replay of the rotated-out token fails despite a valid signature.
	w = doJSON(t, router, http.MethodPost, "/auth/refresh", tokens.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/refresh", fresh.RefreshToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutThenRefreshFails(t *testing.T) {
	router := newTestRouter(t)
	tokens := signUp(t, router, "john@gmail.com")

	w := doJSON(t, router, http.MethodPost, "/auth/logout", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/refresh", tokens.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookmarkOwnershipAcrossUsers(t *testing.T) {
	router := newTestRouter(t)
	alice := signUp(t, router, "alice@gmail.com")
	bob := signUp(t, router, "bob@gmail.com")

	w := doJSON(t, router, http.MethodPost, "/bookmarks", alice.AccessToken, map[string]string{
		"title": "alice's bookmark",
		"link":  "https://example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Bob cannot see, edit or delete Alice's bookmark.
	w = doJSON(t, router, http.MethodGet, "/bookmarks/"+created.ID, bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/bookmarks/"+created.ID, bob.AccessToken, map[string]string{"title": "stolen"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/bookmarks/"+created.ID, bob.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The record is left unchanged.
	w = doJSON(t, router, http.MethodGet, "/bookmarks/"+created.ID, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice's bookmark")

	// And Bob's own list stays empty.
	w = doJSON(t, router, http.MethodGet, "/bookmarks", bob.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestUpdateUserEndpoint(t *testing.T) {
	router := newTestRouter(t)
	tokens := signUp(t, router, "john@gmail.com")

	w := doJSON(t, router, http.MethodPatch, "/users", tokens.AccessToken, map[string]string{
		"firstName": "Jane",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane")
	assert.Contains(t, w.Body.String(), "Doe")

	w = doJSON(t, router, http.MethodPatch, "/users", tokens.AccessToken, map[string]string{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordResetRequestEndpoint(t *testing.T) {
	router := newTestRouter(t)
	signUp(t, router, "john@gmail.com")

	// Known and unknown addresses answer identically.
	w := doJSON(t, router, http.MethodPost, "/auth/password-reset/request", "", map[string]string{
		"email": "john@gmail.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/password-reset/request", "", map[string]string{
		"email": "nobody@gmail.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/password-reset/confirm", "", map[string]string{
		"token":        "garbage",
		"new_password": "Password2",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMalformedJSONBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
