package repository

import (
	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindAll(limit, offset int) ([]model.Order, int64, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindByInvoiceNumber(invoiceNumber string) (*model.Order, error)
	FindCreatedBetween(from, to int64) ([]model.Order, error)
	WithTx(tx *gorm.DB) OrderRepository
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// WithTx returns a repository bound to an open transaction so order and
// order item writes commit atomically.
func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
		return db.Preload("Product")
	}).Preload("User").Preload("PaymentMethod")
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_id":        order.UserID,
		"invoice_number": order.InvoiceNumber,
		"total_price":    order.TotalPrice,
		"total_amounts":  order.TotalAmounts,
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id":        order.UserID,
			"invoice_number": order.InvoiceNumber,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":       order.ID,
		"invoice_number": order.InvoiceNumber,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	logger.Debug("Order found by ID in database", map[string]interface{}{
		"order_id":       order.ID,
		"invoice_number": order.InvoiceNumber,
	})
	return &order, nil
}

func (r *orderRepository) FindAll(limit, offset int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.Model(&model.Order{}).Count(&total).Error; err != nil {
		logger.Error("Failed to count orders in database", err)
		return nil, 0, err
	}

	query := r.preloadOrder().Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders in database", err)
		return nil, 0, err
	}

	logger.Debug("Orders found in database", map[string]interface{}{
		"count": len(orders),
		"total": total,
	})
	return orders, total, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	if err := r.preloadOrder().Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (r *orderRepository) FindByInvoiceNumber(invoiceNumber string) (*model.Order, error) {
	var order model.Order
	if err := r.preloadOrder().Where("invoice_number = ?", invoiceNumber).
		First(&order).Error; err != nil {
		logger.Error("Failed to find order by invoice number in database", err, map[string]interface{}{
			"invoice_number": invoiceNumber,
		})
		return nil, err
	}
	return &order, nil
}

// FindCreatedBetween returns orders whose creation epoch falls in
// [from, to). Used by the daily sales report.
func (r *orderRepository) FindCreatedBetween(from, to int64) ([]model.Order, error) {
	logger.Debug("Finding orders created between timestamps in database", map[string]interface{}{
		"from": from,
		"to":   to,
	})

	var orders []model.Order
	if err := r.preloadOrder().
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by time range in database", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, err
	}

	logger.Debug("Orders found by time range in database", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}
