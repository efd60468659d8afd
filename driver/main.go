package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ad1tya-dev/BiteMe/config"
	"github.com/ad1tya-dev/BiteMe/handlers"
	"github.com/ad1tya-dev/BiteMe/middleware"
	"github.com/ad1tya-dev/BiteMe/middleware/logkafka"
	"github.com/ad1tya-dev/BiteMe/services"
	"github.com/ad1tya-dev/BiteMe/store"
	"github.com/ad1tya-dev/BiteMe/telem"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	shutdownMetrics, err := telem.InitMetrics("biteme-api", cfg.MetricsAddr)
	if err != nil {
		log.Fatalf("Failed to init metrics: %v", err)
	}
	defer shutdownMetrics(context.Background())

	if cfg.OTLPEndpoint != "" {
		shutdownTracing, err := telem.InitTracing("biteme-api", cfg.OTLPEndpoint)
		if err != nil {
			log.Fatalf("Failed to init tracing: %v", err)
		}
		defer shutdownTracing(context.Background())
	}

	logkafka.InitKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer logkafka.CloseKafkaWriter()

	handlers.Init()

	db, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}

	auth := &services.AuthService{Store: db}
	api := &handlers.API{
		Foods:     &services.FoodService{Store: db},
		Cart:      &services.CartService{Store: db},
		Auth:      auth,
		Orders:    &services.OrderService{Store: db},
		StripeKey: cfg.StripeKey,
	}

	mainRouter := mux.NewRouter()
	mainRouter.Use(logkafka.LoggingMiddleware)

	mainRouter.PathPrefix("/images/").Handler(
		http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.ImagesDir))))

	// Public routes
	publicRouter := mainRouter.PathPrefix("/api").Subrouter()
	publicRouter.HandleFunc("/foods", api.GetFoodsHandler).Methods("GET")
	publicRouter.HandleFunc("/foods/{id}", api.GetSingleFoodHandler).Methods("GET")
	publicRouter.HandleFunc("/auth/login", api.LoginHandler).Methods("POST")
	publicRouter.HandleFunc("/cart", api.GetCartHandler).Methods("GET")
	publicRouter.HandleFunc("/cart", api.AddToCartHandler).Methods("POST")
	publicRouter.HandleFunc("/cart/{id}", api.RemoveFromCartHandler).Methods("DELETE")
	publicRouter.HandleFunc("/orders", api.CreateOrderHandler).Methods("POST")
	publicRouter.HandleFunc("/payments", api.ProcessPaymentHandler).Methods("POST")

	// Registration gets its request body validated up front
	registerRouter := mainRouter.PathPrefix("/api/auth/register").Subrouter()
	registerRouter.Use(middleware.ValidateRegisterBody)
	registerRouter.HandleFunc("", api.RegisterHandler).Methods("POST")

	// Routes that need the acting user resolved from the session token
	sessionRouter := mainRouter.PathPrefix("/api").Subrouter()
	sessionRouter.Use(middleware.SetCurrentUser(auth))
	sessionRouter.HandleFunc("/users/me", api.GetCurrentUserHandler).Methods("GET")
	sessionRouter.HandleFunc("/orders", api.GetOrdersHandler).Methods("GET")

	srv := &http.Server{
		Handler:      mainRouter,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("BiteMe API listening on %s", cfg.Addr)
	log.Fatal(srv.ListenAndServe())
}
