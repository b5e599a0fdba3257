package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"suraah/internal/config"
	"suraah/internal/http/handlers"
	applog "suraah/internal/log"
	"suraah/internal/metrics"
	"suraah/internal/repos"
)

const adminPassword = "Passw0rd!"

// newTestApp wires the API the same way main does, minus rate limiting.
func newTestApp(t *testing.T) (*fiber.App, *repos.Store) {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	store := repos.NewStore(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Config{
		AdminUser:         "admin",
		AdminPasswordHash: string(hash),
		TokenSecret:       "test-secret",
		TokenTTL:          time.Hour,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	app.Use(requestid.New())

	deps := handlers.NewDeps(store, cfg, metrics.NewStoreMetrics())

	api := app.Group("/api/v1")
	api.Get("/products", deps.CatalogHandler.Products)
	api.Get("/products/:id", deps.CatalogHandler.Product)
	api.Get("/categories", deps.CatalogHandler.Categories)

	api.Get("/intent", deps.IntentHandler.Get)
	api.Put("/intent", deps.IntentHandler.Set)
	api.Patch("/intent/quantity", deps.IntentHandler.UpdateQuantity)
	api.Delete("/intent", deps.IntentHandler.Clear)

	api.Get("/checkout", deps.CheckoutHandler.Summary)
	api.Post("/checkout", deps.CheckoutHandler.Submit)
	api.Get("/orders/:id", deps.CheckoutHandler.Confirmation)

	api.Post("/admin/login", deps.AuthHandler.Login)
	admin := api.Group("/admin", handlers.RequireAdmin(deps.Auth))
	admin.Get("/dashboard", deps.AdminHandler.DashboardStats)
	admin.Get("/orders", deps.AdminHandler.ListOrders)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)

	return app, store
}

type client struct {
	t   *testing.T
	app *fiber.App
	sid string
}

func (cl *client) do(method, path string, body any, headers map[string]string) *http.Response {
	cl.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(cl.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: cl.sid})
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := cl.app.Test(req, 5000)
	require.NoError(cl.t, err)
	for _, c := range resp.Cookies() {
		if c.Name == "sid" && c.Value != "" {
			cl.sid = c.Value
		}
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	cl := &client{t: t, app: app}

	// buy now
	resp := cl.do("PUT", "/api/v1/intent", map[string]any{
		"id": "1", "name": "Panjabi", "price": 1690, "quantity": 2, "category": "Premium Panjabi",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var intent struct {
		TotalPrice float64 `json:"totalPrice"`
		Quote      struct {
			ShippingFee float64 `json:"shippingFee"`
			Total       float64 `json:"total"`
		} `json:"quote"`
	}
	decode(t, resp, &intent)
	require.Equal(t, 3380.0, intent.TotalPrice)
	require.Equal(t, 0.0, intent.Quote.ShippingFee)
	require.Equal(t, 3380.0, intent.Quote.Total)

	// invalid form: missing name, no order written
	resp = cl.do("POST", "/api/v1/checkout", map[string]any{
		"customerPhone":  "01712345678",
		"shippingStreet": "12 Mirpur Road",
		"shippingCity":   "Dhaka",
	}, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, resp, &verr)
	require.Contains(t, verr.Fields, "customerName")

	// valid form
	resp = cl.do("POST", "/api/v1/checkout", map[string]any{
		"customerName":   "Rahim Uddin",
		"customerPhone":  "01712345678",
		"shippingStreet": "12 Mirpur Road",
		"shippingCity":   "Dhaka",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var placed struct {
		OrderID string `json:"orderId"`
	}
	decode(t, resp, &placed)
	require.NotEmpty(t, placed.OrderID)

	// confirmation lookup
	resp = cl.do("GET", "/api/v1/orders/"+placed.OrderID, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var order struct {
		Status       string  `json:"status"`
		TotalAmount  float64 `json:"totalAmount"`
		CustomerInfo struct {
			Email string `json:"email"`
		} `json:"customerInfo"`
	}
	decode(t, resp, &order)
	require.Equal(t, "pending", order.Status)
	require.Equal(t, 3380.0, order.TotalAmount)
	require.Equal(t, "01712345678@customer.local", order.CustomerInfo.Email)

	// intent consumed
	resp = cl.do("GET", "/api/v1/intent", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var after struct {
		Item *json.RawMessage `json:"item"`
	}
	decode(t, resp, &after)
	require.True(t, after.Item == nil || string(*after.Item) == "null", "intent should be cleared")
}

func TestCheckoutWithoutIntentConflicts(t *testing.T) {
	app, _ := newTestApp(t)
	cl := &client{t: t, app: app}

	resp := cl.do("GET", "/api/v1/checkout", nil, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestIntentQuantityZeroClearsOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	cl := &client{t: t, app: app}

	resp := cl.do("PUT", "/api/v1/intent", map[string]any{"id": "1", "name": "p", "price": 100, "quantity": 2}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = cl.do("PATCH", "/api/v1/intent/quantity", map[string]any{"quantity": 0}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out struct {
		Item       *json.RawMessage `json:"item"`
		TotalItems int              `json:"totalItems"`
	}
	decode(t, resp, &out)
	require.True(t, out.Item == nil || string(*out.Item) == "null")
	require.Zero(t, out.TotalItems)
}

func TestAdminAuthz(t *testing.T) {
	app, _ := newTestApp(t)
	cl := &client{t: t, app: app}

	// no token
	resp := cl.do("GET", "/api/v1/admin/orders", nil, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// garbage token
	resp = cl.do("GET", "/api/v1/admin/orders", nil, map[string]string{"Authorization": "Bearer junk"})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// bad credentials
	resp = cl.do("POST", "/api/v1/admin/login", map[string]any{"username": "admin", "password": "nope"}, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// good credentials
	resp = cl.do("POST", "/api/v1/admin/login", map[string]any{"username": "admin", "password": adminPassword}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp = cl.do("GET", "/api/v1/admin/orders", nil, map[string]string{"Authorization": "Bearer " + login.Token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAdminOrderStatusOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	cl := &client{t: t, app: app}

	// place an order first
	resp := cl.do("PUT", "/api/v1/intent", map[string]any{"id": "1", "name": "p", "price": 100, "quantity": 1}, nil)
	resp.Body.Close()
	resp = cl.do("POST", "/api/v1/checkout", map[string]any{
		"customerName": "Rahim", "customerPhone": "0171", "shippingStreet": "s", "shippingCity": "Dhaka",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var placed struct {
		OrderID string `json:"orderId"`
	}
	decode(t, resp, &placed)

	resp = cl.do("POST", "/api/v1/admin/login", map[string]any{"username": "admin", "password": adminPassword}, nil)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, resp, &login)
	auth := map[string]string{"Authorization": "Bearer " + login.Token}

	// unknown enum value is an error, not a default
	resp = cl.do("POST", "/api/v1/admin/orders/"+placed.OrderID+"/status", map[string]any{"status": "returned"}, auth)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = cl.do("POST", "/api/v1/admin/orders/"+placed.OrderID+"/status", map[string]any{"status": "delivered"}, auth)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = cl.do("GET", "/api/v1/orders/"+placed.OrderID, nil, nil)
	var order struct {
		Status       string  `json:"status"`
		DeliveryDate *string `json:"deliveryDate"`
	}
	decode(t, resp, &order)
	require.Equal(t, "delivered", order.Status)
	require.NotNil(t, order.DeliveryDate)
}

// friendly error surface, no internal leakage
func TestErrorHandlerFriendlyMessage(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/err", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "db timeout: secret trace")
	})

	req := httptest.NewRequest("GET", "/err", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	require.Contains(t, string(body), "something went wrong")
	require.NotContains(t, string(body), "db timeout")
	require.NotContains(t, string(body), "secret")
}
