package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/checkout"
	storeHttp "github.com/vasiliy-maslov/storefront/internal/handler/http"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, order checkout.OrderRecord, recipient string) error {
	args := m.Called(ctx, order, recipient)
	return args.Error(0)
}

func testSnapshot() *catalog.Snapshot {
	return catalog.NewSnapshot([]catalog.Product{
		{ID: 1, Name: "Smartphone Galaxy Pro", Price: 10, Category: "Electrónicos"},
		{ID: 2, Name: "Esterilla de Yoga", Price: 5, Category: "Deportes"},
	})
}

func newCartRouter(notifier checkout.Notifier) (*chi.Mux, *cart.Store) {
	store := cart.NewStore()
	assembler := checkout.NewAssembler(notifier, time.Second)
	handler := storeHttp.NewCartHandler(store, testSnapshot(), assembler)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router, store
}

func doSessionJSON(t *testing.T, router http.Handler, method, target, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(storeHttp.SessionHeader, sessionID)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeCart(t *testing.T, rr *httptest.ResponseRecorder) storeHttp.CartResponse {
	t.Helper()
	var resp storeHttp.CartResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestCartHandler_GetCart_IssuesSessionID(t *testing.T) {
	router, _ := newCartRouter(new(MockNotifier))

	rr := doSessionJSON(t, router, http.MethodGet, "/cart", "", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(storeHttp.SessionHeader))

	resp := decodeCart(t, rr)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.ItemCount)
}

func TestCartHandler_AddItem(t *testing.T) {
	router, _ := newCartRouter(new(MockNotifier))

	rr := doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 1})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 1})
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeCart(t, rr)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, 20.0, resp.Total)
}

func TestCartHandler_AddItem_UnknownProduct(t *testing.T) {
	router, _ := newCartRouter(new(MockNotifier))

	rr := doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 99})
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCartHandler_SessionsAreIsolated(t *testing.T) {
	router, _ := newCartRouter(new(MockNotifier))

	doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 1})

	rr := doSessionJSON(t, router, http.MethodGet, "/cart", "session-b", nil)
	resp := decodeCart(t, rr)
	assert.Empty(t, resp.Items, "another session must see its own empty cart")
}

func TestCartHandler_SetQuantityAndRemove(t *testing.T) {
	router, _ := newCartRouter(new(MockNotifier))

	doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 1})
	doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 2})

	rr := doSessionJSON(t, router, http.MethodPut, "/cart/items/1", "session-a", storeHttp.SetQuantityRequest{Quantity: 4})
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeCart(t, rr)
	assert.Equal(t, 5, resp.ItemCount)
	assert.Equal(t, 45.0, resp.Total)

	// Нулевое количество удаляет позицию.
	rr = doSessionJSON(t, router, http.MethodPut, "/cart/items/1", "session-a", storeHttp.SetQuantityRequest{Quantity: 0})
	resp = decodeCart(t, rr)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(2), resp.Items[0].Product.ID)

	rr = doSessionJSON(t, router, http.MethodDelete, "/cart/items/2", "session-a", nil)
	resp = decodeCart(t, rr)
	assert.Empty(t, resp.Items)
}

func TestCartHandler_ClearCart(t *testing.T) {
	router, _ := newCartRouter(new(MockNotifier))

	doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 1})

	rr := doSessionJSON(t, router, http.MethodDelete, "/cart", "session-a", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decodeCart(t, rr)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0.0, resp.Total)
}

func validCheckoutForm() checkout.ContactForm {
	return checkout.ContactForm{
		Name:         "Ana García",
		Email:        "ana@example.com",
		Phone:        "555-0101",
		City:         "Bogotá",
		DeliveryType: checkout.DeliveryPickup,
	}
}

func TestCartHandler_Checkout_Success(t *testing.T) {
	mockNotifier := new(MockNotifier)
	mockNotifier.On("Send", mock.Anything, mock.MatchedBy(func(o checkout.OrderRecord) bool {
		return o.Total == 25.0 && len(o.Lines) == 2
	}), "ana@example.com").Return(nil).Once()

	router, store := newCartRouter(mockNotifier)

	// A twice (price 10), B once (price 5) -> itemCount=3, total=25.
	doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 1})
	doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 1})
	doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 2})

	rr := doSessionJSON(t, router, http.MethodPost, "/checkout", "session-a", validCheckoutForm())
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp storeHttp.CheckoutResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.NotificationSent)
	assert.Equal(t, 25.0, resp.Order.Total)
	require.Len(t, resp.Order.Lines, 2)

	// Успешный заказ очищает корзину.
	c, ok := store.Get("session-a")
	require.True(t, ok)
	assert.Equal(t, 0, c.ItemCount())

	mockNotifier.AssertExpectations(t)
}

func TestCartHandler_Checkout_EmptyCart(t *testing.T) {
	mockNotifier := new(MockNotifier)
	router, _ := newCartRouter(mockNotifier)

	rr := doSessionJSON(t, router, http.MethodPost, "/checkout", "session-a", validCheckoutForm())

	require.Equal(t, http.StatusConflict, rr.Code)
	mockNotifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartHandler_Checkout_InvalidForm(t *testing.T) {
	mockNotifier := new(MockNotifier)
	router, store := newCartRouter(mockNotifier)

	doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 1})

	form := validCheckoutForm()
	form.Name = ""

	rr := doSessionJSON(t, router, http.MethodPost, "/checkout", "session-a", form)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockNotifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)

	// Корзина остаётся нетронутой, пользователь может исправить форму.
	c, ok := store.Get("session-a")
	require.True(t, ok)
	assert.Equal(t, 1, c.ItemCount())
}

func TestCartHandler_Checkout_NotificationFailure(t *testing.T) {
	mockNotifier := new(MockNotifier)
	mockNotifier.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp: connection refused")).
		Once()

	router, store := newCartRouter(mockNotifier)

	doSessionJSON(t, router, http.MethodPost, "/cart/items", "session-a", storeHttp.AddItemRequest{ProductID: 1})

	rr := doSessionJSON(t, router, http.MethodPost, "/checkout", "session-a", validCheckoutForm())

	// Заказ размещён несмотря на провал письма.
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp storeHttp.CheckoutResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.NotificationSent)
	assert.Equal(t, 10.0, resp.Order.Total)

	c, ok := store.Get("session-a")
	require.True(t, ok)
	assert.Equal(t, 0, c.ItemCount(), "cart is cleared even when the receipt mail fails")
}
