package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/verdantgoods/storefront/internal/middleware"
	"github.com/verdantgoods/storefront/internal/user/domain"
	"github.com/verdantgoods/storefront/internal/user/usecase/command"
	"github.com/verdantgoods/storefront/internal/user/usecase/query"
	"github.com/verdantgoods/storefront/pkg/auth"
)

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	// Command handlers
	registerHandler      *command.RegisterUserHandler
	loginHandler         *command.LoginUserHandler
	updateProfileHandler *command.UpdateProfileHandler
	updateUserHandler    *command.UpdateUserHandler
	resetPasswordHandler *command.ResetPasswordHandler
	deleteHandler        *command.DeleteUserHandler

	// Query handlers
	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewUserHandler creates a new user handler.
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_user_requests_total",
			Help: "Total number of user/session requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_user_request_duration_seconds",
			Help:    "Duration of user/session requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &UserHandler{
		registerHandler:      command.NewRegisterUserHandler(repo),
		loginHandler:         command.NewLoginUserHandler(repo),
		updateProfileHandler: command.NewUpdateProfileHandler(repo),
		updateUserHandler:    command.NewUpdateUserHandler(repo),
		resetPasswordHandler: command.NewResetPasswordHandler(repo),
		deleteHandler:        command.NewDeleteUserHandler(repo),
		getUserHandler:       query.NewGetUserHandler(repo),
		listHandler:          query.NewListUsersHandler(repo),
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics.
func (h *UserHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.TokenTTL().Seconds()),
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Register handles POST /register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, token, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}

	setAuthCookie(w, token)
	respondJSON(w, http.StatusCreated, map[string]any{"user": user, "token": token})
}

// Login handles POST /login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, token, err := h.loginHandler.Handle(command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}

	setAuthCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]any{"user": user, "token": token})
}

// Logout handles POST /logout. It only discards the client-held
// credential; the token itself stays valid until it expires.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// GetProfile handles GET /me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: userID})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PATCH /me
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password"`
		Email           string `json:"email"`
		Name            string `json:"name"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := h.updateProfileHandler.Handle(command.UpdateProfileCommand{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		Email:           req.Email,
		Name:            req.Name,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}

	// An email change invalidates the old claims, so re-issue the
	// credential with the new ones.
	if result.NewToken != "" {
		setAuthCookie(w, result.NewToken)
	}
	respondJSON(w, http.StatusOK, result.User)
}

// --- ADMIN ENDPOINTS ---

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	take, _ := strconv.Atoi(r.URL.Query().Get("take"))

	result, err := h.listHandler.Handle(query.ListUsersQuery{
		Skip:   skip,
		Take:   take,
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetUser handles GET /admin/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	user, err := h.getUserHandler.Handle(query.GetUserQuery{ID: uint(id)})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUser handles PATCH /admin/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	var req struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		IsAdmin *bool  `json:"is_admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.updateUserHandler.Handle(command.UpdateUserCommand{
		ID:      uint(id),
		Email:   req.Email,
		Name:    req.Name,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ResetPassword handles POST /admin/users/{id}/password
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	var req struct {
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.resetPasswordHandler.Handle(command.ResetPasswordCommand{
		UserID:      uint(id),
		NewPassword: req.NewPassword,
	}); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password reset"})
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}

	if err := h.deleteHandler.Handle(command.DeleteUserCommand{ID: uint(id)}); err != nil {
		respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// RegisterRoutes registers all account and session routes.
func (h *UserHandler) RegisterRoutes(router *mux.Router, limiter *middleware.RateLimiter) {
	// Public routes (rate limited against credential stuffing)
	router.HandleFunc("/register", h.metricsMiddleware("/register", limiter.Middleware(h.Register))).Methods("POST")
	router.HandleFunc("/login", h.metricsMiddleware("/login", limiter.Middleware(h.Login))).Methods("POST")
	router.HandleFunc("/logout", h.metricsMiddleware("/logout", h.Logout)).Methods("POST")

	// Authenticated user routes
	router.HandleFunc("/me", h.metricsMiddleware("/me", middleware.Auth(h.GetProfile))).Methods("GET")
	router.HandleFunc("/me", h.metricsMiddleware("/me", middleware.Auth(h.UpdateProfile))).Methods("PATCH")

	// Admin routes
	router.HandleFunc("/admin/users", h.metricsMiddleware("/admin/users", middleware.Admin(h.ListUsers))).Methods("GET")
	router.HandleFunc("/admin/users/{id}", h.metricsMiddleware("/admin/users/{id}", middleware.Admin(h.GetUser))).Methods("GET")
	router.HandleFunc("/admin/users/{id}", h.metricsMiddleware("/admin/users/{id}", middleware.Admin(h.UpdateUser))).Methods("PATCH")
	router.HandleFunc("/admin/users/{id}/password", h.metricsMiddleware("/admin/users/{id}/password", middleware.Admin(h.ResetPassword))).Methods("POST")
	router.HandleFunc("/admin/users/{id}", h.metricsMiddleware("/admin/users/{id}", middleware.Admin(h.DeleteUser))).Methods("DELETE")
}
