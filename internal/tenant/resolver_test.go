package tenant_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/spec-kit/school-service/internal/api/http"
	"github.com/spec-kit/school-service/internal/domain"
	"github.com/spec-kit/school-service/internal/observability"
	"github.com/spec-kit/school-service/internal/tenant"
)

type fakeSchoolRepo struct {
	bySubdomain map[string]*domain.School
	byID        map[string]*domain.School
	err         error
	lookups     int
}

func (f *fakeSchoolRepo) GetByID(_ context.Context, id string) (*domain.School, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	school, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *school
	return &clone, nil
}

func (f *fakeSchoolRepo) GetBySubdomain(_ context.Context, subdomain string, statuses ...domain.SchoolStatus) (*domain.School, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	school, ok := f.bySubdomain[subdomain]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	for _, status := range statuses {
		if school.Status == status {
			clone := *school
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func greenwood() *domain.School {
	return &domain.School{
		ID:        "school-1",
		Name:      "Greenwood International School",
		Subdomain: "greenwood",
		Status:    domain.SchoolStatusActive,
	}
}

const mainDomain = "schoolhub.example.com"

// newResolverApp reports the resolved school name, or "none".
func newResolverApp(repo *fakeSchoolRepo) *fiber.App {
	resolver := tenant.NewResolver(repo, mainDomain, zap.NewNop())

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Use(resolver.Resolve)
	app.Get("/*", func(c *fiber.Ctx) error {
		if school, ok := tenant.SchoolFromContext(c); ok {
			return c.SendString(school.Name)
		}
		return c.SendString("none")
	})
	return app
}

func resolveHost(t *testing.T, app *fiber.App, url string, headers map[string]string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestResolveFromSubdomainHeader(t *testing.T) {
	repo := &fakeSchoolRepo{bySubdomain: map[string]*domain.School{"greenwood": greenwood()}}
	app := newResolverApp(repo)

	// no Host-based subdomain, only the explicit header
	name := resolveHost(t, app, "http://"+mainDomain+"/dashboard",
		map[string]string{tenant.HeaderSchoolSubdomain: "greenwood"})
	assert.Equal(t, "Greenwood International School", name)
}

func TestResolveFromHostSubdomain(t *testing.T) {
	repo := &fakeSchoolRepo{bySubdomain: map[string]*domain.School{"greenwood": greenwood()}}
	app := newResolverApp(repo)

	name := resolveHost(t, app, "http://greenwood.schoolhub.example.com/dashboard", nil)
	assert.Equal(t, "Greenwood International School", name)
}

func TestResolveSkipsLoopback(t *testing.T) {
	repo := &fakeSchoolRepo{bySubdomain: map[string]*domain.School{"greenwood": greenwood()}}
	app := newResolverApp(repo)

	for _, url := range []string{
		"http://localhost:3000/any/path",
		"http://localhost/any/path",
		"http://127.0.0.1:3000/any/path",
	} {
		assert.Equal(t, "none", resolveHost(t, app, url, nil), url)
	}
	assert.Zero(t, repo.lookups)
}

func TestResolveSkipsMainDomain(t *testing.T) {
	repo := &fakeSchoolRepo{bySubdomain: map[string]*domain.School{"greenwood": greenwood()}}
	app := newResolverApp(repo)

	assert.Equal(t, "none", resolveHost(t, app, "http://"+mainDomain+"/pricing", nil))
	assert.Zero(t, repo.lookups)
}

func TestResolveSkipsTwoLabelHost(t *testing.T) {
	repo := &fakeSchoolRepo{bySubdomain: map[string]*domain.School{"greenwood": greenwood()}}
	app := newResolverApp(repo)

	assert.Equal(t, "none", resolveHost(t, app, "http://example.com/anything", nil))
	assert.Zero(t, repo.lookups)
}

func TestResolveMissIsNonFatal(t *testing.T) {
	repo := &fakeSchoolRepo{bySubdomain: map[string]*domain.School{}}
	app := newResolverApp(repo)

	assert.Equal(t, "none", resolveHost(t, app, "http://unknown.schoolhub.example.com/x", nil))
}

func TestResolveExcludesSuspendedSchools(t *testing.T) {
	suspended := greenwood()
	suspended.Status = domain.SchoolStatusSuspended
	repo := &fakeSchoolRepo{bySubdomain: map[string]*domain.School{"greenwood": suspended}}
	app := newResolverApp(repo)

	assert.Equal(t, "none", resolveHost(t, app, "http://greenwood.schoolhub.example.com/x", nil))
}

func TestResolveLookupErrorIsSwallowed(t *testing.T) {
	repo := &fakeSchoolRepo{err: errors.New("connection refused")}
	app := newResolverApp(repo)

	// soft-fail: the pipeline proceeds unresolved
	assert.Equal(t, "none", resolveHost(t, app, "http://greenwood.schoolhub.example.com/x", nil))
}
