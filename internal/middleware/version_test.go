package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/gestobra/gestobra-api/internal/types"
)

func versionApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var customErr *types.CustomError
			if errors.As(err, &customErr) {
				return c.Status(customErr.Code).SendString(customErr.Message)
			}
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
	})
	app.Use(VersionMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalAPIVersion).(string))
	})
	return app
}

func TestVersionNegotiation(t *testing.T) {
	app := versionApp()

	cases := []struct {
		header string
		want   string
	}{
		{"", CurrentAPIVersion},
		{"1", CurrentAPIVersion},
		{"1.0", CurrentAPIVersion},
		{"1.2.3", "1.2.3"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			req.Header.Set("X-Api-Version", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Errorf("header %q: expected status 200, got %d", tc.header, resp.StatusCode)
		}
		if got := resp.Header.Get("X-Api-Version"); got != tc.want {
			t.Errorf("header %q: expected negotiated version %s, got %s", tc.header, tc.want, got)
		}
	}
}

func TestVersionUnsupportedMajorRejected(t *testing.T) {
	app := versionApp()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Api-Version", "2.0.0")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for unsupported major, got %d", resp.StatusCode)
	}
}
