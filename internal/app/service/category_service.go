package service

import (
	"errors"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryNameUsed = errors.New("category name already used")
	ErrCategoryInUse    = errors.New("category still has products")
)

type CategoryService interface {
	CreateCategory(name string) (*model.Category, error)
	GetCategories(withProducts bool) ([]model.Category, error)
	GetCategoryByID(id uint, withProducts bool) (*model.Category, error)
	UpdateCategory(id uint, name string) (*model.Category, error)
	DeleteCategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(name string) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name": name,
	})

	existing, err := s.categoryRepo.FindByName(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		logger.Warn("Category creation failed: name already used", map[string]interface{}{
			"name": name,
		})
		return nil, ErrCategoryNameUsed
	}

	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

func (s *categoryService) GetCategories(withProducts bool) ([]model.Category, error) {
	if withProducts {
		return s.categoryRepo.FindAllWithProducts()
	}
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetCategoryByID(id uint, withProducts bool) (*model.Category, error) {
	var (
		category *model.Category
		err      error
	)
	if withProducts {
		category, err = s.categoryRepo.FindByIDWithProducts(id)
	} else {
		category, err = s.categoryRepo.FindByID(id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, name string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if name != "" && name != category.Name {
		existing, err := s.categoryRepo.FindByName(name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCategoryNameUsed
		}
		category.Name = name
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	logger.Info("Category updated successfully", map[string]interface{}{
		"category_id": category.ID,
	})
	return category, nil
}

// DeleteCategory refuses to remove a category that still owns products.
// Products must be moved or deleted first.
func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Warn("Category deletion refused: still has products", map[string]interface{}{
			"category_id":   id,
			"product_count": count,
		})
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Category deleted successfully", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
