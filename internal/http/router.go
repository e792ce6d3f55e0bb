package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"tike-storefront/internal/config"
	h "tike-storefront/internal/http/handlers"
	"tike-storefront/internal/http/middleware"
)

func NewRouter(env config.Env, handlers *h.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health)
		api.POST("/session", handlers.CreateSession)

		// Public search surface.
		api.GET("/locations", handlers.GetLocations)
		api.GET("/trips", handlers.SearchTrips)
		api.GET("/trips/:id", handlers.GetTrip)
		api.GET("/bookings/check-ticket/:phone", handlers.CheckTicket)

		// Provider callback; verified by gateway digest, not sessions.
		api.POST("/payments/callback", handlers.PaymentCallback)

		// Session-scoped booking and payment flow.
		session := api.Group("", middleware.Session(env.SessionSecret))
		{
			session.GET("/travelers", handlers.FindTraveler)
			session.POST("/travelers", handlers.CreateTraveler)

			session.POST("/bookings", handlers.CreateBooking)
			session.GET("/bookings/:id", handlers.GetBooking)
			session.GET("/bookings/:id/receipt", handlers.GetReceipt)

			session.GET("/payments/state/:id", handlers.PaymentState)
			session.POST("/payments/process/:id", handlers.SubmitPayment)
		}
	}

	return r
}
