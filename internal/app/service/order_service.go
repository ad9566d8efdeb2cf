package service

import (
	"errors"
	"time"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/internal/cart"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"github.com/adiprakosa/kasirpos/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrTotalsMismatch        = errors.New("cart totals do not match line items")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrPaymentMethodDisabled = errors.New("payment method is disabled")
)

// OrderNotifier receives completed orders for fan-out to live
// subscribers. Implemented by the websocket hub.
type OrderNotifier interface {
	NotifyOrderCreated(order *model.Order)
}

type OrderService interface {
	Checkout(userID, paymentMethodID uint, cartState cart.State) (*model.Order, error)
	GetOrders(limit, offset int) ([]model.Order, int64, error)
	GetOrderByID(id uint) (*model.Order, error)
	GetOrdersByUser(userID uint) ([]model.Order, error)
}

type orderService struct {
	db                *gorm.DB
	orderRepo         repository.OrderRepository
	productRepo       repository.ProductRepository
	paymentMethodRepo repository.PaymentMethodRepository
	notifier          OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	notifier OrderNotifier,
) OrderService {
	return &orderService{
		db:                db,
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		paymentMethodRepo: paymentMethodRepo,
		notifier:          notifier,
	}
}

// Checkout turns a cart into a persisted order. The cart totals are
// recomputed from the line items and must agree with the stored totals
// before anything is written.
func (s *orderService) Checkout(userID, paymentMethodID uint, cartState cart.State) (*model.Order, error) {
	logger.Info("Processing checkout", map[string]interface{}{
		"user_id":           userID,
		"payment_method_id": paymentMethodID,
		"item_count":        len(cartState.Items),
		"total_amounts":     cartState.TotalAmounts,
		"total_price":       cartState.SubTotalProductPrice,
	})

	if len(cartState.Items) == 0 {
		logger.Warn("Checkout rejected: empty cart", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	wantAmounts, wantPrice := cart.RecomputeTotals(cartState)
	if wantAmounts != cartState.TotalAmounts || wantPrice != cartState.SubTotalProductPrice {
		logger.Warn("Checkout rejected: totals mismatch", map[string]interface{}{
			"user_id":          userID,
			"claimed_amounts":  cartState.TotalAmounts,
			"computed_amounts": wantAmounts,
			"claimed_price":    cartState.SubTotalProductPrice,
			"computed_price":   wantPrice,
		})
		return nil, ErrTotalsMismatch
	}

	method, err := s.paymentMethodRepo.FindByID(paymentMethodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	if !method.Enabled {
		logger.Warn("Checkout rejected: payment method disabled", map[string]interface{}{
			"payment_method_id": paymentMethodID,
		})
		return nil, ErrPaymentMethodDisabled
	}

	productIDs := make([]uint, 0, len(cartState.Items))
	for _, item := range cartState.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(productIDs) {
		logger.Warn("Checkout rejected: cart references missing product", map[string]interface{}{
			"requested": len(productIDs),
			"found":     len(products),
		})
		return nil, ErrProductNotFound
	}

	invoiceNumber := util.GenerateInvoiceNumber(time.Now())

	order := &model.Order{
		InvoiceNumber:   invoiceNumber,
		UserID:          userID,
		PaymentMethodID: paymentMethodID,
		TotalAmounts:    cartState.TotalAmounts,
		TotalPrice:      cartState.SubTotalProductPrice,
	}
	for _, item := range cartState.Items {
		order.OrderItems = append(order.OrderItems, model.OrderItem{
			ProductID: item.ProductID,
			UnitPrice: item.Product.Price,
			Amounts:   item.Amounts,
			SubTotal:  item.SubTotal,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		logger.Error("Failed to persist order", err, map[string]interface{}{
			"user_id":        userID,
			"invoice_number": invoiceNumber,
		})
		return nil, err
	}

	created, err := s.orderRepo.FindByID(order.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyOrderCreated(created)
	}

	logger.Info("Checkout completed successfully", map[string]interface{}{
		"order_id":       created.ID,
		"invoice_number": created.InvoiceNumber,
		"total_price":    created.TotalPrice,
	})

	return created, nil
}

func (s *orderService) GetOrders(limit, offset int) ([]model.Order, int64, error) {
	return s.orderRepo.FindAll(limit, offset)
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrdersByUser(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}
