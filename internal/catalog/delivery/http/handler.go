package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/verdantgoods/storefront/internal/catalog/domain"
	"github.com/verdantgoods/storefront/internal/catalog/usecase/command"
	"github.com/verdantgoods/storefront/internal/catalog/usecase/query"
	"github.com/verdantgoods/storefront/internal/middleware"
)

// CatalogHandler handles HTTP requests for products and the portfolio.
type CatalogHandler struct {
	// Command handlers
	createHandler          *command.CreateProductHandler
	updateHandler          *command.UpdateProductHandler
	deleteHandler          *command.DeleteProductHandler
	savePortfolioHandler   *command.SavePortfolioHandler
	deletePortfolioHandler *command.DeletePortfolioHandler

	// Query handlers
	getProductHandler    *query.GetProductHandler
	listProductsHandler  *query.ListProductsHandler
	listPortfolioHandler *query.ListPortfolioHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(products domain.ProductRepository, portfolio domain.PortfolioRepository) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_requests_total",
			Help: "Total number of catalog requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CatalogHandler{
		createHandler:          command.NewCreateProductHandler(products),
		updateHandler:          command.NewUpdateProductHandler(products),
		deleteHandler:          command.NewDeleteProductHandler(products),
		savePortfolioHandler:   command.NewSavePortfolioHandler(portfolio),
		deletePortfolioHandler: command.NewDeletePortfolioHandler(portfolio),
		getProductHandler:      query.NewGetProductHandler(products),
		listProductsHandler:    query.NewListProductsHandler(products),
		listPortfolioHandler:   query.NewListPortfolioHandler(portfolio),
		requestCounter:         requestCounter,
		requestLatency:         requestLatency,
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

func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	take, _ := strconv.Atoi(r.URL.Query().Get("take"))

	result, err := h.listProductsHandler.Handle(query.ListProductsQuery{
		Skip:     skip,
		Take:     take,
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetProduct handles GET /products/{slug}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.getProductHandler.Handle(query.GetProductQuery{Slug: mux.Vars(r)["slug"]})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// ListPortfolio handles GET /portfolio
func (h *CatalogHandler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := h.listPortfolioHandler.Handle()
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// --- ADMIN ENDPOINTS ---

type productPayload struct {
	Slug        *string  `json:"slug"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
}

func strOr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// CreateProduct handles POST /admin/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cmd := command.CreateProductCommand{
		Slug:        strOr(req.Slug),
		Name:        strOr(req.Name),
		Description: strOr(req.Description),
		Category:    strOr(req.Category),
		Image:       strOr(req.Image),
	}
	if req.Price != nil {
		cmd.Price = *req.Price
	}
	if req.Stock != nil {
		cmd.Stock = *req.Stock
	}

	product, err := h.createHandler.Handle(cmd)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PATCH /admin/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	var req productPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		ID:          uint(id),
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{ID: uint(id)}); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

type portfolioPayload struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// CreatePortfolio handles POST /admin/portfolio
func (h *CatalogHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req portfolioPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, err := h.savePortfolioHandler.Handle(command.SavePortfolioCommand{
		Slug:        req.Slug,
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// UpdatePortfolio handles PATCH /admin/portfolio/{id}
func (h *CatalogHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid portfolio id"})
		return
	}

	var req portfolioPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, err := h.savePortfolioHandler.Handle(command.SavePortfolioCommand{
		ID:          uint(id),
		Slug:        req.Slug,
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DeletePortfolio handles DELETE /admin/portfolio/{id}
func (h *CatalogHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid portfolio id"})
		return
	}

	if err := h.deletePortfolioHandler.Handle(command.DeletePortfolioCommand{ID: uint(id)}); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "portfolio item deleted"})
}

// RegisterRoutes registers all catalog routes. Public reads go through
// the Redis response cache when a client is configured.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router, cache *redis.Client) {
	cacheCfg := middleware.DefaultCacheConfig()
	cached := func(endpoint string, fn http.HandlerFunc) http.HandlerFunc {
		return h.metricsMiddleware(endpoint, middleware.Cache(cache, cacheCfg, fn))
	}

	// Public routes
	router.HandleFunc("/products", cached("/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/products/{slug}", cached("/products/{slug}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/portfolio", cached("/portfolio", h.ListPortfolio)).Methods("GET")

	// Admin routes
	router.HandleFunc("/admin/products", h.metricsMiddleware("/admin/products", middleware.Admin(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/admin/products/{id}", h.metricsMiddleware("/admin/products/{id}", middleware.Admin(h.UpdateProduct))).Methods("PATCH")
	router.HandleFunc("/admin/products/{id}", h.metricsMiddleware("/admin/products/{id}", middleware.Admin(h.DeleteProduct))).Methods("DELETE")
	router.HandleFunc("/admin/portfolio", h.metricsMiddleware("/admin/portfolio", middleware.Admin(h.CreatePortfolio))).Methods("POST")
	router.HandleFunc("/admin/portfolio/{id}", h.metricsMiddleware("/admin/portfolio/{id}", middleware.Admin(h.UpdatePortfolio))).Methods("PATCH")
	router.HandleFunc("/admin/portfolio/{id}", h.metricsMiddleware("/admin/portfolio/{id}", middleware.Admin(h.DeletePortfolio))).Methods("DELETE")
}
