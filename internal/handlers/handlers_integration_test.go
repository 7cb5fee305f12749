package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"shopx/internal/handlers"
	"shopx/internal/middleware"
	"shopx/internal/models"
	"shopx/internal/repositories"
	"shopx/internal/services"
	"shopx/pkg/password"
	"shopx/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp wires the full application over an in-memory SQLite database,
// without RabbitMQ (events and emails are skipped).
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	// A named shared-cache DSN keeps every pooled connection on the same
	// in-memory database, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.PasswordReset{},
		&models.Order{},
		&models.OrderItem{},
		&models.Subject{},
		&models.Contact{},
	)
	assert.NoError(t, err)

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	resetRepo := repositories.NewGORMPasswordResetRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	hasher := password.NewHasher()
	hasher.SetCost(bcrypt.MinCost)
	tokens := token.NewManager("test_jwt_secret", "shopx-api", "shopx-clients")
	shippingFee := decimal.NewFromInt(5)

	authService := services.NewAuthService(userRepo, resetRepo, hasher, tokens, nil)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(productRepo, shippingFee)
	orderService := services.NewOrderService(orderRepo, productRepo, nil, shippingFee)
	userService := services.NewUserService(userRepo)
	contactService := services.NewContactService(contactRepo, nil)

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	userHandler := handlers.NewUserHandler(userService)
	contactHandler := handlers.NewContactHandler(contactService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	contactHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	productHandler.RegisterProtectedRoutes(protected)
	orderHandler.RegisterRoutes(protected)
	userHandler.RegisterRoutes(protected)
	contactHandler.RegisterProtectedRoutes(protected)

	seedCatalog(t, db)

	return app, db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []models.Product{
		{Name: "Laptop", Brand: "Acme", Price: decimal.NewFromFloat(100.00), CreatedAt: time.Now()},
		{Name: "Mouse", Brand: "Acme", Price: decimal.NewFromFloat(50.00), CreatedAt: time.Now()},
	}
	for i := range products {
		assert.NoError(t, db.Create(&products[i]).Error)
	}
}

// seedAdmin inserts an admin account directly and returns its id.
func seedAdmin(t *testing.T, db *gorm.DB) int {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.MinCost)
	assert.NoError(t, err)
	admin := models.User{
		FirstName: "Ada",
		LastName:  "Admin",
		Email:     "admin@example.com",
		Password:  string(hashed),
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}
	assert.NoError(t, db.Create(&admin).Error)
	return admin.ID
}

func doRequest(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		// Some endpoints return bare arrays or empty bodies; ignore those.
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/account/register", "", map[string]interface{}{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      email,
		"password":   "password123",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/account/login", "", map[string]interface{}{
		"email":    email,
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	jwt, _ := body["token"].(string)
	assert.NotEmpty(t, jwt)
	return jwt
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestCartPreviewAndOrderFlow(t *testing.T) {
	app, _ := setupApp(t)
	jwt := registerAndLogin(t, app, "jane@example.com")

	// Anonymous cart preview: product 1 twice, product 2 once, plus an id
	// that resolves to nothing.
	resp, body := doRequest(t, app, http.MethodGet, "/api/v1/cart/?identifiers=1-1-2-999", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := body["items"].([]interface{})
	assert.Len(t, items, 2)
	assert.Equal(t, "250", body["subtotal"])
	assert.Equal(t, "5", body["shipping_fee"])
	assert.Equal(t, "255", body["total"])

	// Creating the order requires authentication.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/orders/", "", map[string]interface{}{
		"product_identifiers": "1-1-2",
		"delivery_address":    "1 Main Street",
		"payment_method":      "Cash",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Strict path: an unresolvable id fails the whole creation.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/orders/", jwt, map[string]interface{}{
		"product_identifiers": "1-1-2-999",
		"delivery_address":    "1 Main Street",
		"payment_method":      "Cash",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Happy path.
	resp, body = doRequest(t, app, http.MethodPost, "/api/v1/orders/", jwt, map[string]interface{}{
		"product_identifiers": "1-1-2",
		"delivery_address":    "1 Main Street",
		"payment_method":      "Cash",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Pending", body["payment_status"])
	assert.Equal(t, "Created", body["order_status"])
	assert.Len(t, body["items"].([]interface{}), 2)
	orderID := int(body["id"].(float64))

	// The owner fetches it back.
	resp, body = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), jwt, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "1 Main Street", body["delivery_address"])

	// Another client cannot see it.
	otherJWT := registerAndLogin(t, app, "john@example.com")
	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), otherJWT, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// And their listing stays empty.
	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/orders/", otherJWT, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["orders"])
	assert.EqualValues(t, 0, body["total_pages"])
}

func TestOrderUpdateRequiresAdmin(t *testing.T) {
	app, db := setupApp(t)
	jwt := registerAndLogin(t, app, "jane@example.com")

	resp, body := doRequest(t, app, http.MethodPost, "/api/v1/orders/", jwt, map[string]interface{}{
		"product_identifiers": "1",
		"delivery_address":    "1 Main Street",
		"payment_method":      "PayPal",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	orderID := int(body["id"].(float64))

	// A client cannot update order statuses.
	resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", orderID), jwt, map[string]interface{}{
		"order_status": "Shipped",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	seedAdmin(t, db)
	resp, adminBody := doRequest(t, app, http.MethodPost, "/api/v1/account/login", "", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "adminpass123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	adminJWT := adminBody["token"].(string)

	// The admin updates only the order status; payment status is untouched.
	resp, body = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", orderID), adminJWT, map[string]interface{}{
		"order_status": "Shipped",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Shipped", body["order_status"])
	assert.Equal(t, "Pending", body["payment_status"])

	// An empty update fails validation.
	resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", orderID), adminJWT, map[string]interface{}{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// So does an out-of-enumeration status.
	resp, _ = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/orders/%d", orderID), adminJWT, map[string]interface{}{
		"payment_status": "Refunded",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPasswordResetFlow(t *testing.T) {
	app, db := setupApp(t)
	registerAndLogin(t, app, "jane@example.com")

	// Requesting a reset for an unknown email is a 404.
	resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/account/forgot-password", "", map[string]interface{}{
		"email": "nobody@example.com",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Request twice; only the second token stays live.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/account/forgot-password", "", map[string]interface{}{
		"email": "jane@example.com",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var first models.PasswordReset
	assert.NoError(t, db.First(&first, "email = ?", "jane@example.com").Error)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/account/forgot-password", "", map[string]interface{}{
		"email": "jane@example.com",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var second models.PasswordReset
	assert.NoError(t, db.First(&second, "email = ?", "jane@example.com").Error)
	assert.NotEqual(t, first.Token, second.Token)

	var count int64
	assert.NoError(t, db.Model(&models.PasswordReset{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The superseded token no longer works.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/account/reset-password", "", map[string]interface{}{
		"token":    first.Token,
		"password": "newpassword1",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The live one does, exactly once.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/account/reset-password", "", map[string]interface{}{
		"token":    second.Token,
		"password": "newpassword1",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/account/reset-password", "", map[string]interface{}{
		"token":    second.Token,
		"password": "anotherpassword1",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The old password is dead, the new one logs in.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/account/login", "", map[string]interface{}{
		"email":    "jane@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/account/login", "", map[string]interface{}{
		"email":    "jane@example.com",
		"password": "newpassword1",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProfileAndUserDirectory(t *testing.T) {
	app, db := setupApp(t)
	jwt := registerAndLogin(t, app, "jane@example.com")

	resp, body := doRequest(t, app, http.MethodGet, "/api/v1/account/profile", jwt, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "jane@example.com", body["email"])
	assert.Equal(t, "client", body["role"])
	// The password hash is never serialized.
	_, leaked := body["password"]
	assert.False(t, leaked)

	// The user directory is admin-only.
	resp, _ = doRequest(t, app, http.MethodGet, "/api/v1/users/", jwt, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	seedAdmin(t, db)
	resp, adminBody := doRequest(t, app, http.MethodPost, "/api/v1/account/login", "", map[string]interface{}{
		"email":    "admin@example.com",
		"password": "adminpass123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	adminJWT := adminBody["token"].(string)

	resp, body = doRequest(t, app, http.MethodGet, "/api/v1/users/", adminJWT, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["users"].([]interface{}), 2)
}

func TestProductManagementRoles(t *testing.T) {
	app, _ := setupApp(t)
	jwt := registerAndLogin(t, app, "jane@example.com")

	// Public listing works anonymously.
	resp, body := doRequest(t, app, http.MethodGet, "/api/v1/products/", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"].([]interface{}), 2)

	// Clients cannot create products.
	resp, _ = doRequest(t, app, http.MethodPost, "/api/v1/products/", jwt, map[string]interface{}{
		"name":  "Monitor",
		"price": "200.00",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
