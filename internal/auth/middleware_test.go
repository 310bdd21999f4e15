package auth_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/spec-kit/school-service/internal/api/http"
	"github.com/spec-kit/school-service/internal/auth"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/observability"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	err   error
	seen  []string
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) TouchLastSeen(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, id)
	return nil
}

type recordedSink struct {
	mu  sync.Mutex
	ids []string
}

func (s *recordedSink) Record(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
}

func schoolID(id string) *string { return &id }

func newProtectedApp(t *testing.T, repo *fakeUserRepo, sink auth.LastSeenSink) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	tm := newTestTokenManager()
	mw := auth.NewMiddleware(tm, repo, sink, zap.NewNop())

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/protected", mw.Protect, func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"success": true, "id": principal.ID, "role": principal.Role})
	})
	return app, tm
}

func activeUser() *domain.User {
	return &domain.User{
		ID:            "user-1",
		Name:          "Dana Kim",
		Email:         "dana@greenwood.test",
		Role:          domain.RoleTeacher,
		SchoolID:      schoolID("school-1"),
		EmailVerified: true,
		IsActive:      true,
	}
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestProtectMissingToken(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	app, _ := newProtectedApp(t, repo, nil)

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"success":false,"message":"not authorized"}`, body)
}

func TestProtectUniform401ForBadTokens(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{"user-1": activeUser()}}
	app, _ := newProtectedApp(t, repo, nil)

	var bodies []string
	for _, token := range []string{
		signExpired(t, "access-secret", "user-1"),
		"garbage.garbage.garbage",
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		status, body := doRequest(t, app, req)
		assert.Equal(t, http.StatusUnauthorized, status)
		bodies = append(bodies, body)
	}
	// the body must not reveal which failure occurred
	assert.Equal(t, bodies[0], bodies[1])
}

func TestProtectTokenSources(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{"user-1": activeUser()}}
	app, tm := newProtectedApp(t, repo, nil)

	token, _, err := tm.Issue("user-1", domain.RoleTeacher, "school-1")
	require.NoError(t, err)

	header := httptest.NewRequest(http.MethodGet, "/protected", nil)
	header.Header.Set("Authorization", "Bearer "+token)

	cookie := httptest.NewRequest(http.MethodGet, "/protected", nil)
	cookie.AddCookie(&http.Cookie{Name: "token", Value: token})

	// download links carry the token as a query parameter
	query := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)

	headerStatus, headerBody := doRequest(t, app, header)
	cookieStatus, cookieBody := doRequest(t, app, cookie)
	queryStatus, queryBody := doRequest(t, app, query)

	assert.Equal(t, http.StatusOK, headerStatus)
	assert.Equal(t, http.StatusOK, cookieStatus)
	assert.Equal(t, http.StatusOK, queryStatus)
	assert.Equal(t, headerBody, cookieBody)
	assert.Equal(t, headerBody, queryBody)
}

func TestProtectUnknownSubject(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	app, tm := newProtectedApp(t, repo, nil)

	token, _, err := tm.Issue("ghost", domain.RoleAdmin, "")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	status, _ := doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectDeactivatedAccount(t *testing.T) {
	user := activeUser()
	user.IsActive = false
	repo := &fakeUserRepo{users: map[string]*domain.User{"user-1": user}}
	app, tm := newProtectedApp(t, repo, nil)

	token, _, err := tm.Issue("user-1", domain.RoleTeacher, "school-1")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	status, _ := doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectSchoolMismatch(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{"user-1": activeUser()}}
	app, tm := newProtectedApp(t, repo, nil)

	// token minted for another school must not replay against this account
	token, _, err := tm.Issue("user-1", domain.RoleTeacher, "school-2")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	status, _ := doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectTenantlessPrincipalSkipsMismatchCheck(t *testing.T) {
	user := activeUser()
	user.SchoolID = nil
	repo := &fakeUserRepo{users: map[string]*domain.User{"user-1": user}}
	app, tm := newProtectedApp(t, repo, nil)

	// platform-level accounts have no school on either side
	token, _, err := tm.Issue("user-1", domain.RoleAdmin, "school-2")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	status, _ := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, status)
}

func TestProtectIsIdempotent(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{"user-1": activeUser()}}
	app, tm := newProtectedApp(t, repo, nil)

	token, _, err := tm.Issue("user-1", domain.RoleTeacher, "school-1")
	require.NoError(t, err)

	var bodies []string
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		status, body := doRequest(t, app, req)
		assert.Equal(t, http.StatusOK, status)
		bodies = append(bodies, body)
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestProtectRecordsLastSeen(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*domain.User{"user-1": activeUser()}}
	sink := &recordedSink{}
	app, tm := newProtectedApp(t, repo, sink)

	token, _, err := tm.Issue("user-1", domain.RoleTeacher, "school-1")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	status, _ := doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"user-1"}, sink.ids)
}

func TestProtectRepositoryFailureIs401(t *testing.T) {
	repo := &fakeUserRepo{err: errors.New("connection refused")}
	app, tm := newProtectedApp(t, repo, nil)

	token, _, err := tm.Issue("user-1", domain.RoleTeacher, "school-1")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	status, body := doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotContains(t, body, "connection refused")
}
