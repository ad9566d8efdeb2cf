package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adiprakosa/kasirpos/internal/app/service"
	apperrors "github.com/adiprakosa/kasirpos/internal/errors"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// List returns all categories. Pass ?embed=products to include each
// category's product list in one round trip.
// GET /api/v1/categories
func (ctrl *CategoryController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	withProducts := c.Query("embed") == "products"

	categories, err := ctrl.categoryService.GetCategories(withProducts)
	if err != nil {
		log.Error("Failed to list categories", err)
		apperrors.InternalError(c, "Failed to load categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Get returns a single category
// GET /api/v1/categories/:id
func (ctrl *CategoryController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	withProducts := c.Query("embed") == "products"

	category, err := ctrl.categoryService.GetCategoryByID(uint(id), withProducts)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to get category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "Failed to load category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// Create adds a category (admin)
// POST /api/v1/categories
func (ctrl *CategoryController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category details")
		return
	}

	category, err := ctrl.categoryService.CreateCategory(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNameUsed) {
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "Category name is already in use")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.InternalError(c, "Failed to create category")
		return
	}

	log.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

// Update renames a category (admin)
// PUT /api/v1/categories/:id
func (ctrl *CategoryController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category details")
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(uint(id), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryNameUsed):
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "Category name is already in use")
		default:
			log.Error("Failed to update category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "Failed to update category")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// Delete removes an empty category (admin)
// DELETE /api/v1/categories/:id
func (ctrl *CategoryController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	if err := ctrl.categoryService.DeleteCategory(uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryInUse):
			apperrors.Conflict(c, apperrors.CategoryInUse, "Category still has products")
		default:
			log.Error("Failed to delete category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "Failed to delete category")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}
