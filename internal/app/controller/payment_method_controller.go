package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/app/service"
	apperrors "github.com/adiprakosa/kasirpos/internal/errors"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PaymentMethodController struct {
	paymentMethodService service.PaymentMethodService
}

func NewPaymentMethodController(paymentMethodService service.PaymentMethodService) *PaymentMethodController {
	return &PaymentMethodController{paymentMethodService: paymentMethodService}
}

type PaymentMethodRequest struct {
	Name string `json:"name" binding:"required"`
}

type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// List returns payment methods. Staff see disabled methods too;
// everyone else only sees what the register accepts.
// GET /api/v1/payment-methods
func (ctrl *PaymentMethodController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	role, _ := middleware.GetUserRole(c)
	enabledOnly := role != model.RoleAdmin

	methods, err := ctrl.paymentMethodService.GetPaymentMethods(enabledOnly)
	if err != nil {
		log.Error("Failed to list payment methods", err)
		apperrors.InternalError(c, "Failed to load payment methods")
		return
	}

	c.JSON(http.StatusOK, gin.H{"paymentMethods": methods})
}

// Create adds a payment method (admin)
// POST /api/v1/payment-methods
func (ctrl *PaymentMethodController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment method details")
		return
	}

	method, err := ctrl.paymentMethodService.CreatePaymentMethod(req.Name)
	if err != nil {
		log.Error("Failed to create payment method", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to create payment method")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Payment method created successfully",
		"paymentMethod": method,
	})
}

// SetEnabled toggles whether a payment method is accepted (admin)
// PATCH /api/v1/payment-methods/:id
func (ctrl *PaymentMethodController) SetEnabled(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid payment method ID")
		return
	}

	var req SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid payment method details")
		return
	}

	method, err := ctrl.paymentMethodService.SetEnabled(uint(id), *req.Enabled)
	if err != nil {
		if errors.Is(err, service.ErrPaymentMethodNotFound) {
			apperrors.NotFound(c, apperrors.PaymentMethodNotFound, "Payment method not found")
			return
		}
		log.Error("Failed to update payment method", err, map[string]interface{}{
			"payment_method_id": id,
		})
		apperrors.InternalError(c, "Failed to update payment method")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Payment method updated successfully",
		"paymentMethod": method,
	})
}
