package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"transportbooking/internal/config"
	h "transportbooking/internal/http/handlers"
	"transportbooking/internal/http/middleware"
	"transportbooking/internal/repositories"
)

func NewRouter(env config.Env, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

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

	routeRepo := repositories.RouteRepository{DB: db}
	bookingRepo := repositories.BookingRepository{DB: db}
	userRepo := repositories.UserRepository{DB: db}
	cityRepo := repositories.CityRepository{DB: db}
	typeRepo := repositories.TransportTypeRepository{DB: db}

	bookingHandler := h.BookingHandler{Routes: routeRepo, Bookings: bookingRepo, Users: userRepo}
	routeHandler := h.RouteHandler{Routes: routeRepo, Cities: cityRepo, TransportTypes: typeRepo}
	userHandler := h.UserHandler{Users: userRepo}
	cityHandler := h.CityHandler{Cities: cityRepo}
	typeHandler := h.TransportTypeHandler{Types: typeRepo}
	authHandler := h.AuthHandler{Users: userRepo, JWTSecret: []byte(env.JWTSecret)}

	r.GET("/health", h.Health)
	r.GET("/db-check", h.DBCheck)

	auth := r.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	protected := r.Group("/")
	protected.Use(middleware.RequireAuth([]byte(env.JWTSecret)))
	{
		bookings := protected.Group("/booking-tickets")
		bookings.GET("", bookingHandler.List)
		bookings.GET("/:id", bookingHandler.GetByID)
		bookings.GET("/:id/e-ticket", bookingHandler.ETicket)
		bookings.POST("", bookingHandler.Create)
		bookings.DELETE("/:id", bookingHandler.Cancel)
		bookings.GET("/route/:routeId", bookingHandler.ListByRoute)
		bookings.GET("/route/:routeId/phone/:phone", bookingHandler.GetByRouteAndPhone)
		bookings.GET("/email/:email", bookingHandler.ListByPassengerEmail)

		routes := protected.Group("/routes")
		routes.GET("", routeHandler.List)
		routes.GET("/paginated", routeHandler.ListPaginated)
		routes.GET("/transport/:transportType", routeHandler.ListByTransportType)
		routes.GET("/points", routeHandler.ListByCityPair)
		routes.GET("/departure/:departureCity", routeHandler.ListByDepartureCity)
		routes.GET("/destination/:destinationCity", routeHandler.ListByDestinationCity)
		routes.GET("/exactDate", routeHandler.ListForExactDate)
		routes.GET("/dateRange", routeHandler.ListWithinDateRange)
		routes.GET("/:id", routeHandler.GetByID)
		routes.POST("", routeHandler.Create)
		routes.DELETE("/:id", routeHandler.Delete)

		cities := protected.Group("/cities")
		cities.GET("", cityHandler.List)
		cities.GET("/:id", cityHandler.GetByID)
		cities.POST("", cityHandler.Create)
		cities.PUT("/:id", cityHandler.Update)
		cities.DELETE("/:id", cityHandler.Delete)

		types := protected.Group("/transport-types")
		types.GET("", typeHandler.List)
		types.GET("/:id", typeHandler.GetByID)
		types.POST("", typeHandler.Create)
		types.PUT("/:id", typeHandler.Update)
		types.DELETE("/:id", typeHandler.Delete)

		users := protected.Group("/users")
		users.GET("", userHandler.List)
		users.GET("/user-by-email", userHandler.GetByEmail)
		users.GET("/:id", userHandler.GetByID)
		users.POST("", userHandler.Create)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	return r
}
