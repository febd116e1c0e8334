package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/verdantgoods/storefront/internal/middleware"
	"github.com/verdantgoods/storefront/internal/order/usecase/command"
	"github.com/verdantgoods/storefront/internal/order/usecase/query"
)

// OrderHandler handles HTTP requests for checkout and sales.
type OrderHandler struct {
	// Command handlers
	placeOrderHandler *command.PlaceOrderHandler

	// Query handlers
	getSaleHandler  *query.GetSaleHandler
	listHandler     *query.ListSalesHandler
	getStatsHandler *query.GetStatsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	ordersPlaced   prometheus.Counter
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(
	placeOrderHandler *command.PlaceOrderHandler,
	getSaleHandler *query.GetSaleHandler,
	listHandler *query.ListSalesHandler,
	getStatsHandler *query.GetStatsHandler,
) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_order_requests_total",
			Help: "Total number of order requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_order_request_duration_seconds",
			Help:    "Duration of order requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	ordersPlaced := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Total number of successfully placed orders",
		},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(ordersPlaced)

	return &OrderHandler{
		placeOrderHandler: placeOrderHandler,
		getSaleHandler:    getSaleHandler,
		listHandler:       listHandler,
		getStatsHandler:   getStatsHandler,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		ordersPlaced:      ordersPlaced,
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

func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Checkout handles POST /checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req struct {
		Items []struct {
			Slug string `json:"slug"`
			Qty  int    `json:"qty"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cmd := command.PlaceOrderCommand{UserID: userID}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, command.OrderLine{Slug: item.Slug, Quantity: item.Qty})
	}

	sale, err := h.placeOrderHandler.Handle(r.Context(), cmd)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	h.ordersPlaced.Inc()
	respondJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"order_id":  sale.ID,
		"reference": sale.Reference,
		"total":     sale.Total,
	})
}

// --- ADMIN ENDPOINTS ---

// ListSales handles GET /admin/sales
func (h *OrderHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	q := query.ListSalesQuery{}

	userID, _ := strconv.ParseUint(r.URL.Query().Get("user_id"), 10, 32)
	q.UserID = uint(userID)
	q.Skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	q.Take, _ = strconv.Atoi(r.URL.Query().Get("take"))

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		q.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		// Inclusive end of day.
		q.To = t.Add(24*time.Hour - time.Nanosecond)
	}

	result, err := h.listHandler.Handle(q)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetSale handles GET /admin/sales/{id}
func (h *OrderHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sale id"})
		return
	}

	sale, err := h.getSaleHandler.Handle(query.GetSaleQuery{ID: uint(id)})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

// GetStats handles GET /stats
func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.getStatsHandler.Handle()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"months": buckets})
}

// RegisterRoutes registers all order routes.
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/checkout", h.metricsMiddleware("/checkout", middleware.Auth(h.Checkout))).Methods("POST")

	router.HandleFunc("/admin/sales", h.metricsMiddleware("/admin/sales", middleware.Admin(h.ListSales))).Methods("GET")
	router.HandleFunc("/admin/sales/{id}", h.metricsMiddleware("/admin/sales/{id}", middleware.Admin(h.GetSale))).Methods("GET")
	router.HandleFunc("/stats", h.metricsMiddleware("/stats", middleware.Admin(h.GetStats))).Methods("GET")
}
