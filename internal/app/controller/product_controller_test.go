package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/internal/app/service"
	"github.com/adiprakosa/kasirpos/internal/db"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductControllerTest(t *testing.T) (*ProductController, *gin.Engine, repository.ProductRepository, *model.Category) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	productService := service.NewProductService(productRepo, categoryRepo)
	productController := NewProductController(productService)

	category := &model.Category{Name: "Minuman"}
	require.NoError(t, testDB.Create(category).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uint(1))
		c.Set(middleware.UserRoleKey, model.RoleAdmin)
		c.Next()
	})

	return productController, router, productRepo, category
}

func TestProductController_List(t *testing.T) {
	controller, router, productRepo, category := setupProductControllerTest(t)

	productRepo.Create(&model.Product{Name: "Thai Tea", SKU: "DRK-001", Price: 15000, MinOrder: 1, CategoryID: category.ID})
	productRepo.Create(&model.Product{Name: "Es Jeruk", SKU: "DRK-002", Price: 18000, MinOrder: 1, CategoryID: category.ID})

	router.GET("/products", controller.List)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products []model.Product `json:"products"`
		Total    int64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Products, 2)
	require.NotNil(t, resp.Products[0].Category)
	assert.Equal(t, "Minuman", resp.Products[0].Category.Name)
}

func TestProductController_List_FilterByCategory(t *testing.T) {
	controller, router, productRepo, category := setupProductControllerTest(t)

	productRepo.Create(&model.Product{Name: "Thai Tea", SKU: "DRK-001", Price: 15000, MinOrder: 1, CategoryID: category.ID})

	router.GET("/products", controller.List)

	req := httptest.NewRequest(http.MethodGet, "/products?categoryId=9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Zero(t, resp.Total)
}

func TestProductController_Get_NotFound(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.GET("/products/:id", controller.Get)

	req := httptest.NewRequest(http.MethodGet, "/products/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
}

func TestProductController_Create(t *testing.T) {
	controller, router, _, category := setupProductControllerTest(t)

	router.POST("/products", controller.Create)

	body, _ := json.Marshal(gin.H{
		"name":       "Thai Tea",
		"sku":        "DRK-001",
		"price":      15000,
		"categoryId": category.ID,
	})

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"sku":"DRK-001"`)
}

func TestProductController_Create_InvalidPayload(t *testing.T) {
	controller, router, _, _ := setupProductControllerTest(t)

	router.POST("/products", controller.Create)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader([]byte(`{"name":""}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestProductController_Create_DuplicateSKU(t *testing.T) {
	controller, router, productRepo, category := setupProductControllerTest(t)

	productRepo.Create(&model.Product{Name: "Thai Tea", SKU: "DRK-001", Price: 15000, MinOrder: 1, CategoryID: category.ID})

	router.POST("/products", controller.Create)

	body, _ := json.Marshal(gin.H{
		"name":       "Thai Tea Jumbo",
		"sku":        "DRK-001",
		"price":      20000,
		"categoryId": category.ID,
	})

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_SKU_EXISTS")
}

func TestProductController_Update(t *testing.T) {
	controller, router, productRepo, category := setupProductControllerTest(t)

	product := &model.Product{Name: "Thai Tea", SKU: "DRK-001", Price: 15000, MinOrder: 1, CategoryID: category.ID}
	require.NoError(t, productRepo.Create(product))

	router.PUT("/products/:id", controller.Update)

	body, _ := json.Marshal(gin.H{"price": 16000})
	req := httptest.NewRequest(http.MethodPut, "/products/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price":16000`)
}

func TestProductController_Delete(t *testing.T) {
	controller, router, productRepo, category := setupProductControllerTest(t)

	product := &model.Product{Name: "Thai Tea", SKU: "DRK-001", Price: 15000, MinOrder: 1, CategoryID: category.ID}
	require.NoError(t, productRepo.Create(product))

	router.DELETE("/products/:id", controller.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	_, err := productRepo.FindByID(product.ID)
	assert.Error(t, err)
}
