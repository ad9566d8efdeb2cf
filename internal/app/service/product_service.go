package service

import (
	"errors"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUAlreadyUsed  = errors.New("sku already used by another product")
)

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Name       string
	SKU        string
	Price      int64
	Image      string
	MinOrder   int
	CategoryID uint
}

type ProductService interface {
	CreateProduct(input ProductInput) (*model.Product, error)
	GetProducts(filter repository.ProductFilter) ([]model.Product, int64, error)
	GetProductByID(id uint) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name": input.Name,
		"sku":  input.SKU,
	})

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	existing, err := s.productRepo.FindBySKU(input.SKU)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing SKU", err, map[string]interface{}{
			"sku": input.SKU,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Product creation failed: SKU already used", map[string]interface{}{
			"sku": input.SKU,
		})
		return nil, ErrSKUAlreadyUsed
	}

	minOrder := input.MinOrder
	if minOrder < 1 {
		minOrder = 1
	}

	product := &model.Product{
		Name:       input.Name,
		SKU:        input.SKU,
		Price:      input.Price,
		Image:      input.Image,
		MinOrder:   minOrder,
		CategoryID: input.CategoryID,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	return s.productRepo.FindByID(product.ID)
}

func (s *productService) GetProducts(filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.FindAll(filter)
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.SKU != "" && input.SKU != product.SKU {
		existing, err := s.productRepo.FindBySKU(input.SKU)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSKUAlreadyUsed
		}
		product.SKU = input.SKU
	}

	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Image != "" {
		product.Image = input.Image
	}
	if input.MinOrder > 0 {
		product.MinOrder = input.MinOrder
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})

	return s.productRepo.FindByID(product.ID)
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
