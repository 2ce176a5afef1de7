package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
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

type AddToCartInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// CartLine is one cart row as shown to the client, priced live from the
// catalog.
type CartLine struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

// AddToCart adds a product to the session's cart. Quantity defaults to 1
// and accumulates onto any existing entry.
// POST /api/cart/add
func AddToCart(db *gorm.DB, carts cart.Store, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid input", err)
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}
		if input.Quantity < 0 {
			response.Fail(c, http.StatusBadRequest, "Quantity must be positive", nil)
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Fail(c, http.StatusNotFound, "Product not found", err)
			} else {
				response.Fail(c, http.StatusInternalServerError, "Failed to validate product", err)
			}
			return
		}

		sid := middleware.SessionID(c)
		qty, totalItems, err := carts.Add(c.Request.Context(), sid, product.ID, input.Quantity)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to update cart", err)
			return
		}

		logs.Record(c, sid, "add_to_cart", start, logrus.Fields{
			"product_id": product.ID,
			"quantity":   qty,
			"item_count": totalItems,
		})
		response.OK(c, http.StatusOK, "Product added to cart", gin.H{
			"product_id": product.ID,
			"quantity":   qty,
			"item_count": totalItems,
		})
	}
}

// GetCart returns the cart's lines with live catalog prices and the grand
// total. An empty or absent cart is a normal empty result, never an error.
// GET /api/cart
func GetCart(db *gorm.DB, carts cart.Store, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		sid := middleware.SessionID(c)
		entries, err := carts.Get(c.Request.Context(), sid)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch cart", err)
			return
		}

		lines := make([]CartLine, 0, len(entries))
		var grandTotal float64
		itemCount := 0
		for productID, qty := range entries {
			var product models.Product
			if err := db.First(&product, productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Product vanished from the catalog; skip the line.
					continue
				}
				response.Fail(c, http.StatusInternalServerError, "Failed to fetch cart", err)
				return
			}
			lineTotal := product.Price * float64(qty)
			lines = append(lines, CartLine{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				Quantity:  qty,
				Total:     lineTotal,
			})
			grandTotal += lineTotal
			itemCount += qty
		}

		logs.Record(c, sid, "view_cart", start, logrus.Fields{
			"item_count": itemCount,
			"total":      grandTotal,
		})
		response.OK(c, http.StatusOK, "Cart retrieved", gin.H{
			"items":      lines,
			"total":      grandTotal,
			"item_count": itemCount,
		})
	}
}

// RemoveFromCart deletes one product's entry from the cart.
// DELETE /api/cart/remove/:id
func RemoveFromCart(carts cart.Store, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		sid := middleware.SessionID(c)
		removed, totalItems, err := carts.Remove(c.Request.Context(), sid, uint(id))
		if err != nil {
			if errors.Is(err, cart.ErrNotInCart) {
				response.Fail(c, http.StatusNotFound, "Product not in cart", err)
			} else {
				response.Fail(c, http.StatusInternalServerError, "Failed to remove item", err)
			}
			return
		}

		logs.Record(c, sid, "remove_from_cart", start, logrus.Fields{
			"product_id": id,
			"removed":    removed,
			"item_count": totalItems,
		})
		response.OK(c, http.StatusOK, "Product removed from cart", gin.H{
			"product_id": id,
			"removed":    removed,
			"item_count": totalItems,
		})
	}
}

// ClearCart empties the cart. Clearing an already empty cart succeeds.
// DELETE /api/cart/clear
func ClearCart(carts cart.Store, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		sid := middleware.SessionID(c)
		cleared, err := carts.Clear(c.Request.Context(), sid)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to clear cart", err)
			return
		}

		logs.Record(c, sid, "clear_cart", start, logrus.Fields{
			"cleared": cleared,
		})
		response.OK(c, http.StatusOK, "Cart cleared", gin.H{"cleared": cleared})
	}
}
