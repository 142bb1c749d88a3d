package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobboardhq/jobs-api/internal/apierror"
	"github.com/jobboardhq/jobs-api/internal/authoriser"
	"github.com/jobboardhq/jobs-api/internal/handler"
	"github.com/jobboardhq/jobs-api/internal/middleware"
	"github.com/jobboardhq/jobs-api/internal/user"
)

type fakeUserStore struct {
	users map[string]user.User
}

func (f *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	u, ok := f.users[username]
	if !ok {
		return user.User{}, apierror.NewNotFound(fmt.Sprintf("no user with username %s", username))
	}
	return u, nil
}

func authTestStore(t *testing.T) *fakeUserStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeUserStore{users: map[string]user.User{
		"alice": {Username: "alice", Email: "alice@example.com", PasswordHash: string(hash), IsAdmin: true},
	}}
}

func TestPostAuthSessionHandlerSignsOn(t *testing.T) {
	router := mux.NewRouter()
	svr := newTestServer(t, router)
	auth := authoriser.NewAuthoriser(authTestStore(t))
	svr.RegisterRoute("/auth/session", handler.PostAuthSessionHandler(svr, auth), []string{"POST"})

	req := httptest.NewRequest(http.MethodPost, "/auth/session", bytes.NewBufferString(`{"username":"alice","password":"s3cret"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	body := decodeBody(t, res)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, true, body["isAdmin"])
	cookies := res.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionName, cookies[0].Name)
}

func TestPostAuthSessionHandlerCookieOpensAdminRoutes(t *testing.T) {
	router := mux.NewRouter()
	svr := newTestServer(t, router)
	auth := authoriser.NewAuthoriser(authTestStore(t))
	jobRepo := seededJobRepo()
	svr.RegisterRoute("/auth/session", handler.PostAuthSessionHandler(svr, auth), []string{"POST"})
	svr.RegisterRoute("/jobs/{id:[0-9]+}", handler.DeleteJobHandler(svr, jobRepo), []string{"DELETE"})

	signOn := httptest.NewRequest(http.MethodPost, "/auth/session", bytes.NewBufferString(`{"username":"alice","password":"s3cret"}`))
	signOnRes := httptest.NewRecorder()
	router.ServeHTTP(signOnRes, signOn)
	require.Equal(t, http.StatusOK, signOnRes.Code)
	cookies := signOnRes.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodDelete, "/jobs/1", nil)
	req.AddCookie(cookies[0])
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, jobRepo.jobs, 2)
}

func TestPostAuthSessionHandlerWrongPassword(t *testing.T) {
	router := mux.NewRouter()
	svr := newTestServer(t, router)
	auth := authoriser.NewAuthoriser(authTestStore(t))
	svr.RegisterRoute("/auth/session", handler.PostAuthSessionHandler(svr, auth), []string{"POST"})

	req := httptest.NewRequest(http.MethodPost, "/auth/session", bytes.NewBufferString(`{"username":"alice","password":"wrong"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, []string{"invalid username or password"}, errorMessages(t, res))
}

func TestPostAuthSessionHandlerUnknownUser(t *testing.T) {
	router := mux.NewRouter()
	svr := newTestServer(t, router)
	auth := authoriser.NewAuthoriser(authTestStore(t))
	svr.RegisterRoute("/auth/session", handler.PostAuthSessionHandler(svr, auth), []string{"POST"})

	// an unknown username reads the same as a wrong password
	req := httptest.NewRequest(http.MethodPost, "/auth/session", bytes.NewBufferString(`{"username":"nobody","password":"s3cret"}`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, []string{"invalid username or password"}, errorMessages(t, res))
}

func TestPostAuthSessionHandlerMalformedPayload(t *testing.T) {
	router := mux.NewRouter()
	svr := newTestServer(t, router)
	auth := authoriser.NewAuthoriser(authTestStore(t))
	svr.RegisterRoute("/auth/session", handler.PostAuthSessionHandler(svr, auth), []string{"POST"})

	req := httptest.NewRequest(http.MethodPost, "/auth/session", bytes.NewBufferString(`{"username":`))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, []string{"malformed json payload"}, errorMessages(t, res))
}
