package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalogdomain "github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/internal/cart/domain"
	"github.com/verdantgoods/storefront/internal/cart/usecase/command"
	"github.com/verdantgoods/storefront/internal/cart/usecase/query"
	"github.com/verdantgoods/storefront/internal/middleware"
)

// CartHandler handles HTTP requests for the caller's active cart.
// Every endpoint requires authentication; guest carts live client-side
// and only arrive here through the merge endpoint.
type CartHandler struct {
	// Command handlers
	addHandler    *command.AddItemHandler
	setQtyHandler *command.SetQuantityHandler
	removeHandler *command.RemoveItemHandler
	clearHandler  *command.ClearCartHandler
	mergeHandler  *command.MergeCartHandler

	// Query handlers
	getHandler *query.GetCartHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts domain.CartRepository, products catalogdomain.ProductRepository) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_requests_total",
			Help: "Total number of cart requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_cart_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CartHandler{
		addHandler:     command.NewAddItemHandler(carts, products),
		setQtyHandler:  command.NewSetQuantityHandler(carts),
		removeHandler:  command.NewRemoveItemHandler(carts),
		clearHandler:   command.NewClearCartHandler(carts),
		mergeHandler:   command.NewMergeCartHandler(carts, products),
		getHandler:     query.NewGetCartHandler(carts),
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)

	cart, err := h.getHandler.Handle(query.GetCartQuery{UserID: userID})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /cart/add
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)

	var req struct {
		ProductID uint `json:"product_id"`
		Qty       int  `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cart, err := h.addHandler.Handle(command.AddItemCommand{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Qty,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// SetQuantity handles PATCH /cart/qty
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)

	var req struct {
		ProductID uint `json:"product_id"`
		Qty       int  `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cart, err := h.setQtyHandler.Handle(command.SetQuantityCommand{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Qty,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/item/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)

	productID, err := strconv.ParseUint(mux.Vars(r)["productId"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	cart, err := h.removeHandler.Handle(command.RemoveItemCommand{
		UserID:    userID,
		ProductID: uint(productID),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /cart/clear
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)

	cart, err := h.clearHandler.Handle(command.ClearCartCommand{UserID: userID})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// MergeCart handles POST /cart/merge
func (h *CartHandler) MergeCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r)

	var req struct {
		Items []domain.GuestLine `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cart, err := h.mergeHandler.Handle(command.MergeCartCommand{
		UserID: userID,
		Lines:  req.Items,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// RegisterRoutes registers all cart routes.
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/cart", h.metricsMiddleware("/cart", middleware.Auth(h.GetCart))).Methods("GET")
	router.HandleFunc("/cart/add", h.metricsMiddleware("/cart/add", middleware.Auth(h.AddItem))).Methods("POST")
	router.HandleFunc("/cart/qty", h.metricsMiddleware("/cart/qty", middleware.Auth(h.SetQuantity))).Methods("PATCH")
	router.HandleFunc("/cart/item/{productId}", h.metricsMiddleware("/cart/item/{productId}", middleware.Auth(h.RemoveItem))).Methods("DELETE")
	router.HandleFunc("/cart/clear", h.metricsMiddleware("/cart/clear", middleware.Auth(h.ClearCart))).Methods("DELETE")
	router.HandleFunc("/cart/merge", h.metricsMiddleware("/cart/merge", middleware.Auth(h.MergeCart))).Methods("POST")
}
