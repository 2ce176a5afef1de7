package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/imjasmeet/e-commerce-app/cart"
	"github.com/imjasmeet/e-commerce-app/logging"
	"github.com/imjasmeet/e-commerce-app/middleware"
	"github.com/imjasmeet/e-commerce-app/models"
	"github.com/imjasmeet/e-commerce-app/response"
)

type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// Checkout converts the session's cart into an order.
//
// Each cart line's price is read from the catalog exactly once; the same
// value feeds the running total and the order item row, so the order total
// always equals the sum of its items even if catalog prices change while
// the checkout runs. The order and its items go in as a single Create; the
// cart is cleared afterwards and outside that insert, so a crash in
// between leaves the order placed while the cart still holds its items.
//
// POST /api/orders
func Checkout(db *gorm.DB, carts cart.Store, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input", err)
			return
		}
		if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
			response.Fail(c, http.StatusBadRequest, "Customer name and email are required", nil)
			return
		}

		sid := middleware.SessionID(c)
		entries, err := carts.Get(c.Request.Context(), sid)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch cart", err)
			return
		}
		if len(entries) == 0 {
			response.Fail(c, http.StatusBadRequest, "Cart is empty", nil)
			return
		}

		var total float64
		items := make([]models.OrderItem, 0, len(entries))
		for productID, qty := range entries {
			var product models.Product
			if err := db.First(&product, productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				response.Fail(c, http.StatusInternalServerError, "Failed to read product", err)
				return
			}
			total += product.Price * float64(qty)
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  qty,
				Price:     product.Price,
			})
		}
		if len(items) == 0 {
			response.Fail(c, http.StatusBadRequest, "Cart is empty", nil)
			return
		}

		order := models.Order{
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerEmail: strings.TrimSpace(req.CustomerEmail),
			TotalAmount:   total,
			Items:         items,
		}
		if err := db.Create(&order).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to place order", err)
			return
		}

		if _, err := carts.Clear(c.Request.Context(), sid); err != nil {
			// The order already exists; losing the clear only leaves stale
			// cart entries behind.
			logs.Error("cart_clear", err.Error(), c.ClientIP(), c.Request.URL.Path, c.Request.Method)
		}

		logs.Record(c, sid, "checkout", start, logrus.Fields{
			"order_id":     order.ID,
			"total_amount": order.TotalAmount,
			"items":        len(order.Items),
		})
		response.OK(c, http.StatusCreated, "Order placed successfully", gin.H{"order": order})
	}
}

// GetOrders lists all orders, newest first.
// GET /api/orders
func GetOrders(db *gorm.DB, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var orders []models.Order
		if err := db.Preload("Items").Order("id DESC").Find(&orders).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch orders", err)
			return
		}

		logs.Record(c, middleware.SessionID(c), "list_orders", start, logrus.Fields{
			"count": len(orders),
		})
		response.OK(c, http.StatusOK, "Orders retrieved", gin.H{"orders": orders})
	}
}

// GetOrderByID returns one order with its items.
// GET /api/orders/:id
func GetOrderByID(db *gorm.DB, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid order ID", err)
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Fail(c, http.StatusNotFound, "Order not found", err)
			} else {
				response.Fail(c, http.StatusInternalServerError, "Failed to fetch order", err)
			}
			return
		}

		logs.Record(c, middleware.SessionID(c), "get_order", start, logrus.Fields{
			"order_id": order.ID,
		})
		response.OK(c, http.StatusOK, "Order retrieved", gin.H{"order": order})
	}
}
