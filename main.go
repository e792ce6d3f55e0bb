package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tike-storefront/internal/config"
	api "tike-storefront/internal/http"
	"tike-storefront/internal/http/handlers"
	"tike-storefront/internal/services"
	"tike-storefront/internal/storage"
	"tike-storefront/internal/upstream"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	var store storage.KV
	if client := config.ConnectRedis(env); client != nil {
		defer config.CloseRedis()
		store = storage.NewRedisKV(client)
	} else {
		log.Println("REDIS_ADDR not set; payment timers use the in-memory store")
		store = storage.NewMemoryKV()
	}

	client := upstream.New(env.APIBaseURL, env.APIToken)
	clock := services.RealClock()
	timer := services.NewTimerService(store, clock, env.PaymentDeadline)
	payments := services.NewPaymentService(client, timer, clock, env.PollAttempts, env.PollInterval)

	r := api.NewRouter(env, &handlers.Handlers{
		Env:      env,
		Client:   client,
		Timer:    timer,
		Payments: payments,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Storefront gateway listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
