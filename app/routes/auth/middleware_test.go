package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// guardedApp mounts stub handlers behind the middleware the way main.go
// does, so the tests exercise the real routing paths without a database.
func guardedApp(guard *Guard) *fiber.App {
	app := fiber.New()

	app.Get("/history", guard.RequireUser, func(c *fiber.Ctx) error {
		return c.SendString("records")
	})

	api := app.Group("/api", guard.RequireUser)
	admin := api.Group("", guard.RequireAdmin)
	admin.Get("/grade_distribution", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "data": "aggregate"})
	})

	return app
}

func TestRequireUserRejectsAnonymousAPIRequest(t *testing.T) {
	app := guardedApp(NewGuard("test-secret"))

	req := httptest.NewRequest("GET", "/api/grade_distribution", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if success, _ := body["success"].(bool); success {
		t.Error("anonymous API request got success=true")
	}
	if _, leaked := body["data"]; leaked {
		t.Error("anonymous API request received record data")
	}
}

func TestRequireAdminRejectsTeacherRole(t *testing.T) {
	guard := NewGuard("test-secret")
	app := guardedApp(guard)

	token, err := guard.GenerateToken(2, "teacher", "teacher")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/grade_distribution", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}

func TestRequireAdminAllowsAdminRole(t *testing.T) {
	guard := NewGuard("test-secret")
	app := guardedApp(guard)

	token, err := guard.GenerateToken(1, "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/grade_distribution", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireUserRedirectsAnonymousBrowserRequest(t *testing.T) {
	app := guardedApp(NewGuard("test-secret"))

	req := httptest.NewRequest("GET", "/history", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}
}

func TestRequireUserRejectsInvalidCookieToken(t *testing.T) {
	app := guardedApp(NewGuard("test-secret"))

	// Signed with a different secret, as a tampered cookie would be.
	stale, err := NewGuard("old-secret").GenerateToken(1, "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/grade_distribution", nil)
	req.AddCookie(&http.Cookie{Name: "jwt_token", Value: stale})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
