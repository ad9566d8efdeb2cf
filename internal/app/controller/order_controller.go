package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/app/service"
	"github.com/adiprakosa/kasirpos/internal/cart"
	apperrors "github.com/adiprakosa/kasirpos/internal/errors"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CheckoutRequest carries the register's cart snapshot plus the chosen
// payment method as a first-class field.
type CheckoutRequest struct {
	PaymentMethodID uint       `json:"paymentMethodId" binding:"required"`
	Cart            cart.State `json:"cart" binding:"required"`
}

// Checkout converts the submitted cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid checkout details")
		return
	}

	order, err := ctrl.orderService.Checkout(userID, req.PaymentMethodID, req.Cart)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.OrderEmptyCart, "Cart is empty")
		case errors.Is(err, service.ErrTotalsMismatch):
			apperrors.BadRequest(c, apperrors.OrderTotalsMismatch, "Cart totals do not match line items")
		case errors.Is(err, service.ErrPaymentMethodNotFound):
			apperrors.BadRequest(c, apperrors.PaymentMethodNotFound, "Payment method does not exist")
		case errors.Is(err, service.ErrPaymentMethodDisabled):
			apperrors.BadRequest(c, apperrors.PaymentMethodDisabled, "Payment method is not accepted")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.BadRequest(c, apperrors.ProductNotFound, "Cart references a product that no longer exists")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "Failed to complete checkout")
		}
		return
	}

	log.Info("Checkout completed", map[string]interface{}{
		"order_id":       order.ID,
		"invoice_number": order.InvoiceNumber,
		"user_id":        userID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// List returns all orders, newest first (admin)
// GET /api/v1/orders?limit=&offset=
func (ctrl *OrderController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := ctrl.orderService.GetOrders(limit, offset)
	if err != nil {
		log.Error("Failed to list orders", err)
		apperrors.InternalError(c, "Failed to load orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
	})
}

// Get returns a single order. Staff can read any order; customers only
// their own.
// GET /api/v1/orders/:id
func (ctrl *OrderController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to get order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to load order")
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if role == model.RoleCustomer && order.UserID != userID {
		apperrors.Forbidden(c, "You do not have access to this order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// MyOrders returns the authenticated user's order history
// GET /api/v1/orders/mine
func (ctrl *OrderController) MyOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := ctrl.orderService.GetOrdersByUser(userID)
	if err != nil {
		log.Error("Failed to list user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to load orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
