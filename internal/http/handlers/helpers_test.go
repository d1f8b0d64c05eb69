package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shoplite/internal/http/handlers"
	"shoplite/internal/repos"
)

// newTestApp builds the API surface against a seeded in-memory db,
// mirroring the wiring in cmd/shoplite.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})

	deps := handlers.NewDeps(db)
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", deps.AuthHandler.Login)
	auth.Post("/logout", deps.AuthHandler.Logout)
	auth.Get("/me", handlers.RequireUser(deps.Auth), deps.AuthHandler.Me)

	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/category/:category", deps.ProductHandler.ByCategory)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Post("/products", handlers.RequireSeller(deps.Auth), deps.ProductHandler.Create)
	api.Put("/products/:id", handlers.RequireSeller(deps.Auth), deps.ProductHandler.Update)
	api.Delete("/products/:id", handlers.RequireSeller(deps.Auth), deps.ProductHandler.Delete)

	cart := api.Group("/cart", handlers.RequireUser(deps.Auth))
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/", deps.CartHandler.Add)
	cart.Put("/:id", deps.CartHandler.Update)
	cart.Delete("/:id", deps.CartHandler.Remove)

	orders := api.Group("/orders", handlers.RequireUser(deps.Auth))
	orders.Post("/", deps.OrderHandler.Place)
	orders.Get("/", deps.OrderHandler.List)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Put("/:id/status", deps.OrderHandler.UpdateStatus)

	seller := api.Group("/seller", handlers.RequireSeller(deps.Auth))
	seller.Get("/dashboard", deps.SellerHandler.Dashboard)
	seller.Get("/orders", deps.SellerHandler.Orders)
	seller.Get("/products", deps.SellerHandler.Products)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, sid string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

// login authenticates a seeded demo user and returns the sid cookie.
func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	return loginWith(t, app, email, "Passw0rd!")
}

func loginWith(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c.Value
		}
	}
	t.Fatal("no sid cookie on login response")
	return ""
}
