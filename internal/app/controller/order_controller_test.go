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
	"github.com/adiprakosa/kasirpos/internal/cart"
	"github.com/adiprakosa/kasirpos/internal/db"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderControllerFixture struct {
	controller *OrderController
	router     *gin.Engine
	db         *gorm.DB
	cashier    *model.User
	product    *model.Product
	tunai      *model.PaymentMethod
}

func setupOrderControllerTest(t *testing.T) *orderControllerFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cashier := &model.User{Email: "kasir@example.com", PasswordHash: "h", Name: "Budi Santoso", Role: model.RoleCashier}
	require.NoError(t, testDB.Create(cashier).Error)

	category := &model.Category{Name: "Minuman"}
	require.NoError(t, testDB.Create(category).Error)

	product := &model.Product{Name: "Thai Tea", SKU: "DRK-001", Price: 15000, MinOrder: 1, CategoryID: category.ID}
	require.NoError(t, testDB.Create(product).Error)

	tunai := &model.PaymentMethod{Name: "Tunai", Enabled: true}
	require.NoError(t, testDB.Create(tunai).Error)

	orderService := service.NewOrderService(
		testDB,
		repository.NewOrderRepository(testDB),
		repository.NewProductRepository(testDB),
		repository.NewPaymentMethodRepository(testDB),
		nil,
	)
	controller := NewOrderController(orderService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, cashier.ID)
		c.Set(middleware.UserRoleKey, cashier.Role)
		c.Next()
	})

	return &orderControllerFixture{
		controller: controller,
		router:     router,
		db:         testDB,
		cashier:    cashier,
		product:    product,
		tunai:      tunai,
	}
}

func checkoutBody(t *testing.T, fix *orderControllerFixture, amounts int) []byte {
	t.Helper()

	store := cart.NewStore()
	store.Add(cart.LineItem{
		ProductID: fix.product.ID,
		Product: cart.ProductSnapshot{
			ID:    fix.product.ID,
			Name:  fix.product.Name,
			SKU:   fix.product.SKU,
			Price: fix.product.Price,
		},
		Amounts:  1,
		SubTotal: fix.product.Price,
	})
	for i := 1; i < amounts; i++ {
		store.Increment(fix.product.ID, fix.product.Price)
	}

	body, err := json.Marshal(gin.H{
		"paymentMethodId": fix.tunai.ID,
		"cart":            store.State(),
	})
	require.NoError(t, err)
	return body
}

func TestOrderController_Checkout(t *testing.T) {
	fix := setupOrderControllerTest(t)

	fix.router.POST("/orders", fix.controller.Checkout)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(checkoutBody(t, fix, 2)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Order model.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.Order.ID)
	assert.Equal(t, 2, resp.Order.TotalAmounts)
	assert.Equal(t, int64(30000), resp.Order.TotalPrice)
	assert.Regexp(t, `^INV-`, resp.Order.InvoiceNumber)
}

func TestOrderController_Checkout_EmptyCart(t *testing.T) {
	fix := setupOrderControllerTest(t)

	fix.router.POST("/orders", fix.controller.Checkout)

	body, _ := json.Marshal(gin.H{
		"paymentMethodId": fix.tunai.ID,
		"cart":            cart.NewStore().State(),
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_EMPTY_CART")
}

func TestOrderController_Checkout_TamperedTotals(t *testing.T) {
	fix := setupOrderControllerTest(t)

	fix.router.POST("/orders", fix.controller.Checkout)

	store := cart.NewStore()
	store.Add(cart.LineItem{
		ProductID: fix.product.ID,
		Product:   cart.ProductSnapshot{ID: fix.product.ID, Price: fix.product.Price},
		Amounts:   1,
		SubTotal:  fix.product.Price,
	})
	state := store.State()
	state.TotalAmounts = 99

	body, _ := json.Marshal(gin.H{
		"paymentMethodId": fix.tunai.ID,
		"cart":            state,
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_TOTALS_MISMATCH")
}

func TestOrderController_List(t *testing.T) {
	fix := setupOrderControllerTest(t)

	fix.router.POST("/orders", fix.controller.Checkout)
	fix.router.GET("/orders", fix.controller.List)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(checkoutBody(t, fix, 1)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	w = httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []model.Order `json:"orders"`
		Total  int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Orders, 1)
	require.NotNil(t, resp.Orders[0].PaymentMethod)
	assert.Equal(t, "Tunai", resp.Orders[0].PaymentMethod.Name)
}

func TestOrderController_Get_CustomerCannotReadOthersOrder(t *testing.T) {
	fix := setupOrderControllerTest(t)

	fix.router.POST("/orders", fix.controller.Checkout)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(checkoutBody(t, fix, 1)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same order read back by a different customer
	customerRouter := gin.New()
	customerRouter.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uint(999))
		c.Set(middleware.UserRoleKey, model.RoleCustomer)
		c.Next()
	})
	customerRouter.GET("/orders/:id", fix.controller.Get)

	req = httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	w = httptest.NewRecorder()
	customerRouter.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderController_MyOrders(t *testing.T) {
	fix := setupOrderControllerTest(t)

	fix.router.POST("/orders", fix.controller.Checkout)
	fix.router.GET("/orders/mine", fix.controller.MyOrders)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(checkoutBody(t, fix, 1)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/orders/mine", nil)
	w = httptest.NewRecorder()
	fix.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []model.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 1)
}
