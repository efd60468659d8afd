// Package handlers is the HTTP boundary of the BiteMe API. Each handler
// decodes the request, invokes one core operation and maps its typed error
// onto a status code. Request counters and durations are collected with
// Prometheus and each handler runs under an OpenTelemetry span.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/ad1tya-dev/BiteMe/middleware"
	"github.com/ad1tya-dev/BiteMe/models"
	"github.com/ad1tya-dev/BiteMe/services"
)

// API bundles the core services behind the HTTP handlers.
type API struct {
	Foods  *services.FoodService
	Cart   *services.CartService
	Auth   *services.AuthService
	Orders *services.OrderService

	// StripeKey enables the payment endpoint when set.
	StripeKey string
}

var tracer = otel.Tracer("biteme-api")

// Define Prometheus metrics
var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biteme_requests_total",
			Help: "Total number of API requests by handler and status",
		},
		[]string{"handler", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biteme_request_duration_seconds",
			Help:    "Histogram of request durations by handler",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler"},
	)

	ordersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "biteme_orders_placed_total",
		Help: "Total number of orders placed",
	})

	loginRequestsByStatus = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "biteme_login_requests_by_status_total",
		Help: "Total number of login requests by status",
	},
		[]string{"status"})
)

func Init() {
	// Register metrics with Prometheus
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(ordersPlaced)
	prometheus.MustRegister(loginRequestsByStatus)
}

func observe(handler string, status int, start time.Time) {
	requestCount.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(handler).Observe(time.Since(start).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// statusFor maps the service error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with the mapped status and a class-level message.
// Wrapped detail (storage paths, parse errors) stays server-side.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	message := "Internal server error"
	switch status {
	case http.StatusBadRequest:
		message = "Invalid request"
	case http.StatusUnauthorized:
		message = "Invalid credentials"
	case http.StatusConflict:
		message = "User already exists"
	case http.StatusNotFound:
		message = "Not found"
	default:
		log.Printf("Internal error: %v", err)
	}
	writeJSON(w, status, map[string]string{"message": message})
}

func (api *API) GetFoodsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "GetFoodsHandler")
	defer span.End()

	foods, err := api.Foods.List(ctx)
	if err != nil {
		span.RecordError(err)
		writeError(w, err)
		observe("get_foods", statusFor(err), start)
		return
	}
	writeJSON(w, http.StatusOK, foods)
	observe("get_foods", http.StatusOK, start)
}

func (api *API) GetSingleFoodHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "GetSingleFoodHandler")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Food not found"})
		observe("get_food", http.StatusNotFound, start)
		return
	}

	food, err := api.Foods.Get(ctx, id)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, services.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Food not found"})
		} else {
			writeError(w, err)
		}
		observe("get_food", statusFor(err), start)
		return
	}
	writeJSON(w, http.StatusOK, food)
	observe("get_food", http.StatusOK, start)
}

func (api *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "LoginHandler")
	defer span.End()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		loginRequestsByStatus.WithLabelValues("error").Inc()
		observe("login", http.StatusBadRequest, start)
		return
	}

	token, user, err := api.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		span.RecordError(err)
		writeError(w, err)
		loginRequestsByStatus.WithLabelValues("error").Inc()
		observe("login", statusFor(err), start)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
	loginRequestsByStatus.WithLabelValues("success").Inc()
	observe("login", http.StatusOK, start)
}

func (api *API) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "RegisterHandler")
	defer span.End()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		observe("register", http.StatusBadRequest, start)
		return
	}

	token, user, err := api.Auth.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		span.RecordError(err)
		writeError(w, err)
		observe("register", statusFor(err), start)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
	observe("register", http.StatusOK, start)
}

func (api *API) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	_, span := tracer.Start(r.Context(), "GetCurrentUserHandler")
	defer span.End()

	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		observe("current_user", http.StatusUnauthorized, start)
		return
	}
	writeJSON(w, http.StatusOK, user)
	observe("current_user", http.StatusOK, start)
}

func (api *API) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "GetCartHandler")
	defer span.End()

	cart, err := api.Cart.Get(ctx)
	if err != nil {
		span.RecordError(err)
		writeError(w, err)
		observe("get_cart", statusFor(err), start)
		return
	}
	writeJSON(w, http.StatusOK, cart)
	observe("get_cart", http.StatusOK, start)
}

func (api *API) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "AddToCartHandler")
	defer span.End()

	var req struct {
		FoodID   interface{} `json:"foodId"`
		Quantity int         `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		observe("add_to_cart", http.StatusBadRequest, start)
		return
	}

	// Clients send foodId as either a number or a string.
	foodID, err := parseFoodID(req.FoodID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		observe("add_to_cart", http.StatusBadRequest, start)
		return
	}

	cart, err := api.Cart.Add(ctx, foodID, req.Quantity)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, services.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Food not found"})
		} else {
			writeError(w, err)
		}
		observe("add_to_cart", statusFor(err), start)
		return
	}
	writeJSON(w, http.StatusOK, cart)
	observe("add_to_cart", http.StatusOK, start)
}

func parseFoodID(v interface{}) (int, error) {
	switch id := v.(type) {
	case float64:
		return int(id), nil
	case string:
		return strconv.Atoi(id)
	default:
		return 0, fmt.Errorf("unexpected foodId type %T", v)
	}
}

func (api *API) RemoveFromCartHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "RemoveFromCartHandler")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		observe("remove_from_cart", http.StatusBadRequest, start)
		return
	}

	if err := api.Cart.Remove(ctx, id); err != nil {
		span.RecordError(err)
		writeError(w, err)
		observe("remove_from_cart", statusFor(err), start)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
	observe("remove_from_cart", http.StatusOK, start)
}

func (api *API) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "CreateOrderHandler")
	defer span.End()

	var req struct {
		Items     []models.OrderItem `json:"items"`
		Total     float64            `json:"total"`
		UserEmail string             `json:"userEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		observe("create_order", http.StatusBadRequest, start)
		return
	}

	order, err := api.Orders.Create(ctx, req.Items, req.Total, req.UserEmail)
	if err != nil {
		span.RecordError(err)
		writeError(w, err)
		observe("create_order", statusFor(err), start)
		return
	}
	ordersPlaced.Inc()
	writeJSON(w, http.StatusOK, order)
	observe("create_order", http.StatusOK, start)
}

func (api *API) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := tracer.Start(r.Context(), "GetOrdersHandler")
	defer span.End()

	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		observe("get_orders", http.StatusUnauthorized, start)
		return
	}

	orders, err := api.Orders.ListForUser(ctx, user.Email)
	if err != nil {
		span.RecordError(err)
		writeError(w, err)
		observe("get_orders", statusFor(err), start)
		return
	}
	writeJSON(w, http.StatusOK, orders)
	observe("get_orders", http.StatusOK, start)
}
