package service

import (
	"errors"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"gorm.io/gorm"
)

type PaymentMethodService interface {
	GetPaymentMethods(enabledOnly bool) ([]model.PaymentMethod, error)
	CreatePaymentMethod(name string) (*model.PaymentMethod, error)
	SetEnabled(id uint, enabled bool) (*model.PaymentMethod, error)
}

type paymentMethodService struct {
	paymentMethodRepo repository.PaymentMethodRepository
}

func NewPaymentMethodService(paymentMethodRepo repository.PaymentMethodRepository) PaymentMethodService {
	return &paymentMethodService{paymentMethodRepo: paymentMethodRepo}
}

func (s *paymentMethodService) GetPaymentMethods(enabledOnly bool) ([]model.PaymentMethod, error) {
	return s.paymentMethodRepo.FindAll(enabledOnly)
}

func (s *paymentMethodService) CreatePaymentMethod(name string) (*model.PaymentMethod, error) {
	method := &model.PaymentMethod{Name: name, Enabled: true}
	if err := s.paymentMethodRepo.Create(method); err != nil {
		return nil, err
	}

	logger.Info("Payment method created", map[string]interface{}{
		"payment_method_id": method.ID,
		"name":              method.Name,
	})
	return method, nil
}

func (s *paymentMethodService) SetEnabled(id uint, enabled bool) (*model.PaymentMethod, error) {
	method, err := s.paymentMethodRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}

	method.Enabled = enabled
	if err := s.paymentMethodRepo.Update(method); err != nil {
		return nil, err
	}

	logger.Info("Payment method availability changed", map[string]interface{}{
		"payment_method_id": method.ID,
		"enabled":           enabled,
	})
	return method, nil
}
