package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookieFrom(rec *http.Response) *http.Cookie {
	for _, c := range rec.Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestLoginSuccessGrantsAdminAccess(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/login", loginRequest{
		Username: testAdminUser,
		Password: testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookieFrom(rec.Result())
	require.NotNil(t, cookie, "login must set the session cookie")
	require.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	admin := env.do(http.MethodGet, "/admin", nil, cookie)
	assert.Equal(t, http.StatusOK, admin.Code)
}

func TestLoginWrongPasswordLeavesSessionUnauthenticated(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/login", loginRequest{
		Username: testAdminUser,
		Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookieFrom(rec.Result()), "failed login must not set a cookie")

	admin := env.do(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, admin.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/login", loginRequest{
		Username: "nobody",
		Password: testAdminPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRefuseWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/admin"},
		{http.MethodPost, "/admin/project/add"},
		{http.MethodGet, "/admin/cleanup-media"},
		{http.MethodPost, "/admin/blog/add"},
	} {
		rec := env.do(route.method, route.path, nil)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestAdminRefusesUnknownSessionToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/admin", nil, &http.Cookie{
		Name:  sessionCookieName,
		Value: "stale-or-forged-token",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutInvalidatesSessionAndIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.adminCookie(t)

	rec := env.do(http.MethodPost, "/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// the session is gone
	admin := env.do(http.MethodGet, "/admin", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, admin.Code)

	// logging out again is still fine
	again := env.do(http.MethodPost, "/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, again.Code)

	// and so is logging out with no session at all
	bare := env.do(http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusOK, bare.Code)
}
