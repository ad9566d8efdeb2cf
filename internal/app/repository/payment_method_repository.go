package repository

import (
	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"gorm.io/gorm"
)

type PaymentMethodRepository interface {
	Create(method *model.PaymentMethod) error
	FindAll(enabledOnly bool) ([]model.PaymentMethod, error)
	FindByID(id uint) (*model.PaymentMethod, error)
	Update(method *model.PaymentMethod) error
	Delete(id uint) error
}

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(method *model.PaymentMethod) error {
	logger.Debug("Creating payment method in database", map[string]interface{}{
		"name": method.Name,
	})

	if err := r.db.Create(method).Error; err != nil {
		logger.Error("Failed to create payment method in database", err, map[string]interface{}{
			"name": method.Name,
		})
		return err
	}
	return nil
}

func (r *paymentMethodRepository) FindAll(enabledOnly bool) ([]model.PaymentMethod, error) {
	query := r.db.Order("id ASC")
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var methods []model.PaymentMethod
	if err := query.Find(&methods).Error; err != nil {
		logger.Error("Failed to find payment methods in database", err)
		return nil, err
	}

	logger.Debug("Payment methods found in database", map[string]interface{}{
		"count":        len(methods),
		"enabled_only": enabledOnly,
	})
	return methods, nil
}

func (r *paymentMethodRepository) FindByID(id uint) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	if err := r.db.First(&method, id).Error; err != nil {
		logger.Error("Failed to find payment method by ID in database", err, map[string]interface{}{
			"payment_method_id": id,
		})
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) Update(method *model.PaymentMethod) error {
	logger.Debug("Updating payment method in database", map[string]interface{}{
		"payment_method_id": method.ID,
		"name":              method.Name,
		"enabled":           method.Enabled,
	})

	if err := r.db.Save(method).Error; err != nil {
		logger.Error("Failed to update payment method in database", err, map[string]interface{}{
			"payment_method_id": method.ID,
		})
		return err
	}
	return nil
}

func (r *paymentMethodRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.PaymentMethod{}, id).Error; err != nil {
		logger.Error("Failed to delete payment method in database", err, map[string]interface{}{
			"payment_method_id": id,
		})
		return err
	}
	return nil
}
