package routes

import (
	"grestaurants/configs"
	"grestaurants/controllers"
	"grestaurants/middlewares"
	"grestaurants/repository"
	"grestaurants/services"
	"grestaurants/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// RegisterRoutes wires repositories, services and controllers onto r.
// hub may be nil, in which case review events are not published.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.ReviewHub) {
	r.Use(middlewares.RequestID(), middlewares.Metrics(), middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Repositories
	restRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	var events services.ReviewPublisher
	if hub != nil {
		events = hub
	}
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	restSvc := services.NewRestaurantService(restRepo, userRepo, reviewRepo)
	reviewSvc := services.NewReviewService(reviewRepo, restRepo, userRepo, events)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restSvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret, userRepo)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth, authCtrl.Me)
	}

	// Public
	rest := r.Group("/restaurants")
	{
		rest.GET("", restCtrl.Index)
		rest.GET("/page/:page", restCtrl.Page)
		rest.GET("/search", restCtrl.Search)
		rest.POST("/search", restCtrl.Search)
		rest.GET("/:id", restCtrl.Detail)
		rest.GET("/:id/reviews", reviewCtrl.ListForRestaurant)
	}

	// Logged in; ownership is checked in the services
	owned := r.Group("/restaurants", auth)
	{
		owned.POST("", restCtrl.Create)
		owned.GET("/:id/edit", restCtrl.EditView)
		owned.PUT("/:id", restCtrl.Update)
		owned.DELETE("/:id", restCtrl.Delete)

		owned.POST("/:id/reviews", reviewCtrl.Create)
		owned.GET("/:id/reviews/:revId/edit", reviewCtrl.EditForm)
		owned.PUT("/:id/reviews/:revId", reviewCtrl.Update)
		owned.DELETE("/:id/reviews/:revId", reviewCtrl.Delete)
	}

	if hub != nil {
		r.GET("/ws/restaurants/:id/reviews", hub.HandleWebSocket)
	}
}
