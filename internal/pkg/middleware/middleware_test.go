package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
	"github.com/dentaqr/dashboard/internal/pkg/cliniccontext"
)

type stubClinics struct {
	clinics map[uint]models.Clinic
	err     error
}

func (s stubClinics) CreateWithSubscription(ctx context.Context, clinic *models.Clinic, sub *models.Subscription) error {
	return errors.New("not implemented")
}

func (s stubClinics) GetByID(ctx context.Context, id uint) (*models.Clinic, error) {
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.clinics[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s stubClinics) SlugExists(ctx context.Context, slug string) (bool, error) {
	return false, nil
}

func TestAdminKeyMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AdminKeyMiddleware("s3cret"), func(c *fiber.Ctx) error {
		assert.True(t, cliniccontext.IsAdmin(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{name: "missing", want: fiber.StatusUnauthorized},
		{name: "wrong", header: "X-Admin-Key", value: "nope", want: fiber.StatusUnauthorized},
		{name: "header", header: "X-Admin-Key", value: "s3cret", want: fiber.StatusNoContent},
		{name: "bearer", header: "Authorization", value: "Bearer s3cret", want: fiber.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAdminKeyMiddlewareDisabledWithoutKey(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", AdminKeyMiddleware(""), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.Header.Set("X-Admin-Key", "")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestClinicContextMiddleware(t *testing.T) {
	repo := stubClinics{clinics: map[uint]models.Clinic{7: {ID: 7, Name: "Sakura Dental", Slug: "sakura"}}}
	app := fiber.New()
	app.Get("/clinics/:clinicID", ClinicContextMiddleware(repo), func(c *fiber.Ctx) error {
		cc, ok := cliniccontext.Get(c)
		require.True(t, ok)
		return c.JSON(cc)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/clinics/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/clinics/8", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/clinics/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestClinicContextMiddlewareStoreFailure(t *testing.T) {
	app := fiber.New()
	app.Get("/clinics/:clinicID", ClinicContextMiddleware(stubClinics{err: errors.New("db down")}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/clinics/1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
