package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/imjasmeet/e-commerce-app/cart"
	"github.com/imjasmeet/e-commerce-app/database"
	"github.com/imjasmeet/e-commerce-app/faults"
	"github.com/imjasmeet/e-commerce-app/logging"
	"github.com/imjasmeet/e-commerce-app/models"
	"github.com/imjasmeet/e-commerce-app/routes"
)

// env wires the full API against an in-memory cart store and a seeded
// sqlite database, and keeps the session cookie between requests the way
// a browser would.
type env struct {
	t       *testing.T
	router  *gin.Engine
	db      *gorm.DB
	inj     *faults.Injector
	cookies []*http.Cookie
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	logs, err := logging.New("")
	require.NoError(t, err)
	t.Cleanup(func() { logs.Close() })

	inj := faults.New(20*time.Millisecond, 0.3)

	router := gin.New()
	routes.SetupRoutes(router, db, cart.NewMemoryStore(), inj, logs)
	return &env{t: t, router: router, db: db, inj: inj}
}

func (e *env) do(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range e.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		e.cookies = cookies
	}

	var envelope map[string]interface{}
	if strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &envelope))
	}
	return w, envelope
}

func data(envelope map[string]interface{}) map[string]interface{} {
	d, _ := envelope["data"].(map[string]interface{})
	return d
}

func TestListProducts(t *testing.T) {
	e := newEnv(t)

	w, envelope := e.do("GET", "/api/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, envelope["success"])

	products, ok := data(envelope)["products"].([]interface{})
	require.True(t, ok)
	assert.Len(t, products, 5)
}

func TestGetProductByID(t *testing.T) {
	e := newEnv(t)

	w, envelope := e.do("GET", "/api/products/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	product := data(envelope)["product"].(map[string]interface{})
	assert.Equal(t, "Laptop", product["name"])
	assert.InDelta(t, 999.99, product["price"].(float64), 0.001)

	w, envelope = e.do("GET", "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, envelope["success"])

	w, _ = e.do("GET", "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductExport(t *testing.T) {
	e := newEnv(t)

	w, _ := e.do("GET", "/api/products/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}

func TestCartFlow(t *testing.T) {
	e := newEnv(t)

	// Empty cart is a normal empty result.
	w, envelope := e.do("GET", "/api/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, data(envelope)["item_count"].(float64))
	assert.EqualValues(t, 0, data(envelope)["total"].(float64))

	// Add with explicit quantity.
	w, envelope = e.do("POST", "/api/cart/add", gin.H{"product_id": 1, "quantity": 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, data(envelope)["quantity"].(float64))
	assert.EqualValues(t, 2, data(envelope)["item_count"].(float64))

	// Re-adding accumulates; omitted quantity defaults to 1.
	w, envelope = e.do("POST", "/api/cart/add", gin.H{"product_id": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, data(envelope)["quantity"].(float64))
	assert.EqualValues(t, 3, data(envelope)["item_count"].(float64))

	// View prices the cart live from the catalog.
	w, envelope = e.do("GET", "/api/cart", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, data(envelope)["item_count"].(float64))
	assert.InDelta(t, 2999.97, data(envelope)["total"].(float64), 0.001)
	items := data(envelope)["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "Laptop", line["name"])
	assert.InDelta(t, 2999.97, line["total"].(float64), 0.001)

	// Remove reports the removed quantity and the new item count.
	w, envelope = e.do("DELETE", "/api/cart/remove/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, data(envelope)["removed"].(float64))
	assert.EqualValues(t, 0, data(envelope)["item_count"].(float64))

	// Removing again is a not-found.
	w, envelope = e.do("DELETE", "/api/cart/remove/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, envelope["success"])

	// Clearing an empty cart succeeds with zero cleared.
	w, envelope = e.do("DELETE", "/api/cart/clear", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, data(envelope)["cleared"].(float64))
}

func TestAddUnknownProduct(t *testing.T) {
	e := newEnv(t)

	w, envelope := e.do("POST", "/api/cart/add", gin.H{"product_id": 4242})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", envelope["message"])
}

func TestCheckoutValidation(t *testing.T) {
	e := newEnv(t)

	// Empty cart.
	w, envelope := e.do("POST", "/api/orders", gin.H{"customer_name": "A", "customer_email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart is empty", envelope["message"])

	var count int64
	require.NoError(t, e.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	// Missing email leaves the cart untouched and creates nothing.
	_, _ = e.do("POST", "/api/cart/add", gin.H{"product_id": 2, "quantity": 1})
	w, _ = e.do("POST", "/api/orders", gin.H{"customer_name": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, e.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	_, envelope = e.do("GET", "/api/cart", nil)
	assert.EqualValues(t, 1, data(envelope)["item_count"].(float64))
}

func TestCheckout(t *testing.T) {
	e := newEnv(t)

	_, _ = e.do("POST", "/api/cart/add", gin.H{"product_id": 1, "quantity": 2})

	w, envelope := e.do("POST", "/api/orders", gin.H{"customer_name": "A", "customer_email": "a@x.com"})
	assert.Equal(t, http.StatusCreated, w.Code)
	order := data(envelope)["order"].(map[string]interface{})
	assert.InDelta(t, 1999.98, order["total_amount"].(float64), 0.001)

	items := order["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.EqualValues(t, 1, item["product_id"].(float64))
	assert.EqualValues(t, 2, item["quantity"].(float64))
	assert.InDelta(t, 999.99, item["price"].(float64), 0.001)

	// The cart is emptied by a successful checkout.
	_, envelope = e.do("GET", "/api/cart", nil)
	assert.EqualValues(t, 0, data(envelope)["item_count"].(float64))

	// Persisted order matches the frozen-total invariant.
	var stored models.Order
	require.NoError(t, e.db.Preload("Items").First(&stored).Error)
	var sum float64
	for _, it := range stored.Items {
		sum += float64(it.Quantity) * it.Price
	}
	assert.InDelta(t, stored.TotalAmount, sum, 0.001)
	assert.Equal(t, "A", stored.CustomerName)
	assert.Equal(t, "a@x.com", stored.CustomerEmail)

	// Order reads.
	w, envelope = e.do("GET", "/api/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, data(envelope)["orders"].([]interface{}), 1)

	w, _ = e.do("GET", "/api/orders/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do("GET", "/api/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSimulatedDBFailure(t *testing.T) {
	e := newEnv(t)

	w, envelope := e.do("GET", "/api/simulate/db-failure", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, data(envelope)["enabled"])

	// Every domain operation fails while the flag is on, with no writes.
	w, envelope = e.do("GET", "/api/products", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, envelope["success"])

	w, _ = e.do("POST", "/api/cart/add", gin.H{"product_id": 1})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w, _ = e.do("POST", "/api/orders", gin.H{"customer_name": "A", "customer_email": "a@x.com"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var count int64
	require.NoError(t, e.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	// Health still answers and reports the simulated outage.
	w, envelope = e.do("GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", data(envelope)["status"])
	assert.Equal(t, "unavailable (simulated)", data(envelope)["database"])

	// Toggling off restores normal operation.
	w, envelope = e.do("GET", "/api/simulate/db-failure", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, data(envelope)["enabled"])

	w, _ = e.do("GET", "/api/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSimulatedNullDereference(t *testing.T) {
	e := newEnv(t)

	_, _ = e.do("GET", "/api/simulate/null-pointer", nil)

	w, envelope := e.do("GET", "/api/orders", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Internal server error", envelope["message"])

	_, envelope = e.do("GET", "/api/simulate/null-pointer", nil)
	assert.Equal(t, false, data(envelope)["enabled"])

	w, _ = e.do("GET", "/api/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSimulatedSlowResponse(t *testing.T) {
	e := newEnv(t)

	_, _ = e.do("GET", "/api/simulate/slow-response", nil)

	start := time.Now()
	w, _ := e.do("GET", "/api/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	_, _ = e.do("GET", "/api/simulate/slow-response", nil)
}

func TestSimulatedRandomErrors(t *testing.T) {
	e := newEnv(t)
	e.inj.Reseed(42)

	_, _ = e.do("GET", "/api/simulate/random-errors", nil)

	failures := 0
	for i := 0; i < 1000; i++ {
		w, _ := e.do("GET", "/api/products", nil)
		switch w.Code {
		case http.StatusInternalServerError:
			failures++
		case http.StatusOK:
		default:
			t.Fatalf("unexpected status %d", w.Code)
		}
	}

	// ~30% of calls fail, ±5%.
	assert.GreaterOrEqual(t, failures, 250)
	assert.LessOrEqual(t, failures, 350)

	_, _ = e.do("GET", "/api/simulate/random-errors", nil)
	w, _ := e.do("GET", "/api/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownSimulation(t *testing.T) {
	e := newEnv(t)

	w, envelope := e.do("GET", "/api/simulate/kernel-panic", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestHealthCheck(t *testing.T) {
	e := newEnv(t)

	w, envelope := e.do("GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", data(envelope)["status"])
	assert.Equal(t, "connected", data(envelope)["database"])
	assert.EqualValues(t, 5, data(envelope)["products"].(float64))

	sims := data(envelope)["simulations"].(map[string]interface{})
	assert.Len(t, sims, 4)
	for name, enabled := range sims {
		assert.Equal(t, false, enabled, name)
	}
}

func TestLogTail(t *testing.T) {
	e := newEnv(t)

	for i := 0; i < 3; i++ {
		_, _ = e.do("GET", "/api/products", nil)
	}

	w, envelope := e.do("GET", "/api/logs", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	streams := data(envelope)["logs"].(map[string]interface{})
	assert.Len(t, streams, 4)
	requests := streams["requests"].([]interface{})
	assert.NotEmpty(t, requests)
	assert.LessOrEqual(t, len(requests), 50)
	for name, lines := range streams {
		assert.LessOrEqual(t, len(lines.([]interface{})), 50, name)
	}
}

func TestSessionCookieIsAssigned(t *testing.T) {
	e := newEnv(t)

	_, _ = e.do("GET", "/api/products", nil)
	require.NotEmpty(t, e.cookies)

	found := false
	for _, ck := range e.cookies {
		if ck.Name == "session_id" && ck.Value != "" {
			found = true
		}
	}
	assert.True(t, found)
}
