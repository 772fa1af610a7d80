package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/checkout"
)

// SessionHeader carries the session id that keys the cart. The server
// issues a fresh id on the first request that arrives without one.
const SessionHeader = "X-Session-ID"

type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items     []cart.LineItem `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     float64         `json:"total"`
}

type CheckoutResponse struct {
	Order            checkout.OrderRecord `json:"order"`
	NotificationSent bool                 `json:"notification_sent"`
}

type CartHandler struct {
	store     *cart.Store
	snapshot  *catalog.Snapshot
	assembler *checkout.Assembler
}

func NewCartHandler(store *cart.Store, snapshot *catalog.Snapshot, assembler *checkout.Assembler) *CartHandler {
	return &CartHandler{
		store:     store,
		snapshot:  snapshot,
		assembler: assembler,
	}
}

func (h *CartHandler) RegisterRoutes(router chi.Router) {
	router.Get("/cart", h.handleGetCart)
	router.Post("/cart/items", h.handleAddItem)
	router.Put("/cart/items/{productID}", h.handleSetQuantity)
	router.Delete("/cart/items/{productID}", h.handleRemoveItem)
	router.Delete("/cart", h.handleClearCart)
	router.Post("/checkout", h.handleCheckout)
}

// sessionID returns the request's session id, issuing a new one when
// absent. The id is always echoed back so the client can keep it.
func (h *CartHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

func (h *CartHandler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	c := h.store.GetOrCreate(h.sessionID(w, r))
	respondWithCart(w, c)
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var requestPayload AddItemRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode add item request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	product, ok := h.snapshot.ByID(requestPayload.ProductID)
	if !ok {
		respondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	c := h.store.GetOrCreate(h.sessionID(w, r))
	c.AddItem(product)

	respondWithCart(w, c)
}

func (h *CartHandler) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var requestPayload SetQuantityRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestPayload); err != nil {
		log.Error().Err(err).Msg("Failed to decode set quantity request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	c := h.store.GetOrCreate(h.sessionID(w, r))
	c.SetQuantity(productID, requestPayload.Quantity)

	respondWithCart(w, c)
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	c := h.store.GetOrCreate(h.sessionID(w, r))
	c.RemoveItem(productID)

	respondWithCart(w, c)
}

func (h *CartHandler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.store.GetOrCreate(h.sessionID(w, r))
	c.Clear()

	respondWithCart(w, c)
}

// handleCheckout drives a full checkout attempt through the flow state
// machine: open the form over a non-empty cart, validate, assemble,
// notify. The cart is cleared whenever the order is placed, even when
// the receipt mail fails.
func (h *CartHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var form checkout.ContactForm

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&form); err != nil {
		log.Error().Err(err).Msg("Failed to decode checkout request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	c := h.store.GetOrCreate(h.sessionID(w, r))

	flow := checkout.NewFlow()
	if err := flow.Open(c.ItemCount()); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "Cart is empty")
		return
	}

	if err := flow.Submit(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Checkout flow error")
		return
	}

	intent, err := checkout.Validate(form)
	if err != nil {
		_ = flow.Reject(err.Error())
		respondWithError(w, mapErrorToStatusCode(err), "Please fill in all required fields")
		return
	}

	if err := flow.Accept(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Checkout flow error")
		return
	}

	record, err := h.assembler.Assemble(r.Context(), intent, c)
	if err != nil {
		if errors.Is(err, checkout.ErrNotificationFailed) {
			// Заказ размещён, письмо не ушло — корзину всё равно чистим.
			_ = flow.Fail(err.Error())
			c.Clear()
			respondWithJSON(w, http.StatusCreated, CheckoutResponse{Order: record, NotificationSent: false})
			return
		}

		log.Error().Err(err).Msg("Failed to assemble order")
		_ = flow.Fail(err.Error())
		respondWithError(w, mapErrorToStatusCode(err), "Failed to place order")
		return
	}

	if err := flow.Complete(); err != nil {
		log.Error().Err(err).Msg("Checkout flow completion failed")
	}
	c.Clear()

	respondWithJSON(w, http.StatusCreated, CheckoutResponse{Order: record, NotificationSent: true})
}

func respondWithCart(w http.ResponseWriter, c *cart.Cart) {
	items, count, total := c.Snapshot()
	respondWithJSON(w, http.StatusOK, CartResponse{Items: items, ItemCount: count, Total: total})
}
