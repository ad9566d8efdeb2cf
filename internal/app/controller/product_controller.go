package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/internal/app/service"
	apperrors "github.com/adiprakosa/kasirpos/internal/errors"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type ProductRequest struct {
	Name       string `json:"name" binding:"required"`
	SKU        string `json:"sku" binding:"required"`
	Price      int64  `json:"price" binding:"required,gt=0"`
	Image      string `json:"image"`
	MinOrder   int    `json:"minOrder"`
	CategoryID uint   `json:"categoryId" binding:"required"`
}

type ProductUpdateRequest struct {
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	Price      int64  `json:"price"`
	Image      string `json:"image"`
	MinOrder   int    `json:"minOrder"`
	CategoryID uint   `json:"categoryId"`
}

// List returns the product catalog
// GET /api/v1/products?categoryId=&q=&limit=&offset=
func (ctrl *ProductController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search: c.Query("q"),
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
			return
		}
		filter.CategoryID = uint(id)
	}
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, total, err := ctrl.productService.GetProducts(filter)
	if err != nil {
		log.Error("Failed to list products", err)
		apperrors.InternalError(c, "Failed to load products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
	})
}

// Get returns a single product
// GET /api/v1/products/:id
func (ctrl *ProductController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to load product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Create adds a product to the catalog (admin)
// POST /api/v1/products
func (ctrl *ProductController) Create(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product details")
		return
	}

	product, err := ctrl.productService.CreateProduct(service.ProductInput{
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		Image:      req.Image,
		MinOrder:   req.MinOrder,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSKUAlreadyUsed):
			apperrors.Conflict(c, apperrors.ProductSKUExists, "SKU is already in use")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.BadRequest(c, apperrors.CategoryNotFound, "Category does not exist")
		default:
			log.Error("Failed to create product", err, map[string]interface{}{
				"sku": req.SKU,
			})
			apperrors.InternalError(c, "Failed to create product")
		}
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// Update edits a product (admin)
// PUT /api/v1/products/:id
func (ctrl *ProductController) Update(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product details")
		return
	}

	product, err := ctrl.productService.UpdateProduct(uint(id), service.ProductInput{
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		Image:      req.Image,
		MinOrder:   req.MinOrder,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrSKUAlreadyUsed):
			apperrors.Conflict(c, apperrors.ProductSKUExists, "SKU is already in use")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.BadRequest(c, apperrors.CategoryNotFound, "Category does not exist")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"product_id": id,
			})
			apperrors.InternalError(c, "Failed to update product")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// Delete removes a product (admin)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}
