package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/verdantgoods/storefront/internal/content/usecase/command"
	"github.com/verdantgoods/storefront/internal/content/usecase/query"
	"github.com/verdantgoods/storefront/internal/middleware"
)

// ContentHandler handles HTTP requests for reviews and FAQ entries.
type ContentHandler struct {
	// Command handlers
	submitReviewHandler   *command.SubmitReviewHandler
	moderateReviewHandler *command.ModerateReviewHandler
	deleteReviewHandler   *command.DeleteReviewHandler
	createFAQHandler      *command.CreateFAQHandler
	updateFAQHandler      *command.UpdateFAQHandler
	deleteFAQHandler      *command.DeleteFAQHandler

	// Query handlers
	listReviewsHandler *query.ListReviewsHandler
	listFAQsHandler    *query.ListFAQsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewContentHandler creates a new content handler.
func NewContentHandler(
	submitReviewHandler *command.SubmitReviewHandler,
	moderateReviewHandler *command.ModerateReviewHandler,
	deleteReviewHandler *command.DeleteReviewHandler,
	createFAQHandler *command.CreateFAQHandler,
	updateFAQHandler *command.UpdateFAQHandler,
	deleteFAQHandler *command.DeleteFAQHandler,
	listReviewsHandler *query.ListReviewsHandler,
	listFAQsHandler *query.ListFAQsHandler,
) *ContentHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_content_requests_total",
			Help: "Total number of content requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_content_request_duration_seconds",
			Help:    "Duration of content requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ContentHandler{
		submitReviewHandler:   submitReviewHandler,
		moderateReviewHandler: moderateReviewHandler,
		deleteReviewHandler:   deleteReviewHandler,
		createFAQHandler:      createFAQHandler,
		updateFAQHandler:      updateFAQHandler,
		deleteFAQHandler:      deleteFAQHandler,
		listReviewsHandler:    listReviewsHandler,
		listFAQsHandler:       listFAQsHandler,
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
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

func (h *ContentHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListReviews handles GET /reviews
func (h *ContentHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	q := query.ListReviewsQuery{}
	productID, _ := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 32)
	q.ProductID = uint(productID)
	q.Skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	q.Take, _ = strconv.Atoi(r.URL.Query().Get("take"))

	result, err := h.listReviewsHandler.Handle(q)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// SubmitReview handles POST /reviews
func (h *ContentHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Author    string `json:"author"`
		Body      string `json:"body"`
		Stars     int    `json:"stars"`
		ProductID *uint  `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cmd := command.SubmitReviewCommand{
		Author:    req.Author,
		Body:      req.Body,
		Stars:     req.Stars,
		ProductID: req.ProductID,
	}
	if userID, ok := middleware.UserID(r); ok {
		cmd.UserID = &userID
	}

	review, err := h.submitReviewHandler.Handle(cmd)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

// ListFAQs handles GET /faqs
func (h *ContentHandler) ListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.listFAQsHandler.Handle(query.ListFAQsQuery{})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"faqs": faqs})
}

// --- ADMIN ENDPOINTS ---

// AdminListReviews handles GET /admin/reviews
func (h *ContentHandler) AdminListReviews(w http.ResponseWriter, r *http.Request) {
	q := query.ListReviewsQuery{IncludeUnlisted: true}
	productID, _ := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 32)
	q.ProductID = uint(productID)
	q.Skip, _ = strconv.Atoi(r.URL.Query().Get("skip"))
	q.Take, _ = strconv.Atoi(r.URL.Query().Get("take"))

	result, err := h.listReviewsHandler.Handle(q)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ModerateReview handles PATCH /admin/reviews/{id}
func (h *ContentHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid review id"})
		return
	}

	var req struct {
		Author    *string `json:"author"`
		Body      *string `json:"body"`
		Stars     *int    `json:"stars"`
		Published *bool   `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	review, err := h.moderateReviewHandler.Handle(command.ModerateReviewCommand{
		ID:        uint(id),
		Author:    req.Author,
		Body:      req.Body,
		Stars:     req.Stars,
		Published: req.Published,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /admin/reviews/{id}
func (h *ContentHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid review id"})
		return
	}

	if err := h.deleteReviewHandler.Handle(command.DeleteReviewCommand{ID: uint(id)}); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}

// AdminListFAQs handles GET /admin/faqs
func (h *ContentHandler) AdminListFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.listFAQsHandler.Handle(query.ListFAQsQuery{IncludeUnlisted: true})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"faqs": faqs})
}

// CreateFAQ handles POST /admin/faqs
func (h *ContentHandler) CreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question  string `json:"question"`
		Answer    string `json:"answer"`
		Position  int    `json:"position"`
		Published *bool  `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	faq, err := h.createFAQHandler.Handle(command.CreateFAQCommand{
		Question:  req.Question,
		Answer:    req.Answer,
		Position:  req.Position,
		Published: req.Published,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, faq)
}

// UpdateFAQ handles PATCH /admin/faqs/{id}
func (h *ContentHandler) UpdateFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid faq id"})
		return
	}

	var req struct {
		Question  *string `json:"question"`
		Answer    *string `json:"answer"`
		Position  *int    `json:"position"`
		Published *bool   `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	faq, err := h.updateFAQHandler.Handle(command.UpdateFAQCommand{
		ID:        uint(id),
		Question:  req.Question,
		Answer:    req.Answer,
		Position:  req.Position,
		Published: req.Published,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, faq)
}

// DeleteFAQ handles DELETE /admin/faqs/{id}
func (h *ContentHandler) DeleteFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid faq id"})
		return
	}

	if err := h.deleteFAQHandler.Handle(command.DeleteFAQCommand{ID: uint(id)}); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "faq deleted"})
}

// RegisterRoutes registers all content routes. Public GETs are served
// through the response cache when a redis client is configured.
func (h *ContentHandler) RegisterRoutes(router *mux.Router, cache *redis.Client) {
	cacheCfg := middleware.DefaultCacheConfig()

	router.HandleFunc("/reviews", h.metricsMiddleware("/reviews",
		middleware.Cache(cache, cacheCfg, h.ListReviews))).Methods("GET")
	router.HandleFunc("/reviews", h.metricsMiddleware("/reviews",
		middleware.OptionalAuth(h.SubmitReview))).Methods("POST")
	router.HandleFunc("/faqs", h.metricsMiddleware("/faqs",
		middleware.Cache(cache, cacheCfg, h.ListFAQs))).Methods("GET")

	router.HandleFunc("/admin/reviews", h.metricsMiddleware("/admin/reviews",
		middleware.Admin(h.AdminListReviews))).Methods("GET")
	router.HandleFunc("/admin/reviews/{id}", h.metricsMiddleware("/admin/reviews/{id}",
		middleware.Admin(h.ModerateReview))).Methods("PATCH")
	router.HandleFunc("/admin/reviews/{id}", h.metricsMiddleware("/admin/reviews/{id}",
		middleware.Admin(h.DeleteReview))).Methods("DELETE")

	router.HandleFunc("/admin/faqs", h.metricsMiddleware("/admin/faqs",
		middleware.Admin(h.AdminListFAQs))).Methods("GET")
	router.HandleFunc("/admin/faqs", h.metricsMiddleware("/admin/faqs",
		middleware.Admin(h.CreateFAQ))).Methods("POST")
	router.HandleFunc("/admin/faqs/{id}", h.metricsMiddleware("/admin/faqs/{id}",
		middleware.Admin(h.UpdateFAQ))).Methods("PATCH")
	router.HandleFunc("/admin/faqs/{id}", h.metricsMiddleware("/admin/faqs/{id}",
		middleware.Admin(h.DeleteFAQ))).Methods("DELETE")
}
