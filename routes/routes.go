package routes

import (
	"net/http"

	"github.com/sanskarrz/Meal-Tracker/config"
	"github.com/sanskarrz/Meal-Tracker/controllers"
	"github.com/sanskarrz/Meal-Tracker/middlewares"
	"github.com/sanskarrz/Meal-Tracker/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	oracle := services.NewOracleService(cfg)
	users := services.NewUserService(db)
	food := services.NewFoodService(db, oracle)
	serving := services.NewServingService(db, oracle)
	stats := services.NewStatsService(db)

	authCtrl := controllers.NewAuthController(users, cfg)
	foodCtrl := controllers.NewFoodController(food, serving)
	statsCtrl := controllers.NewStatsController(stats, users)

	r := gin.Default()

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "Calorie Tracker API"})
	})

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
	}

	// Everything below requires a valid bearer token.
	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware(users, cfg.JWTSecret))
	{
		protected.GET("/auth/me", authCtrl.Me)
		protected.PUT("/auth/update-goal", authCtrl.UpdateGoal)

		foodGroup := protected.Group("/food")
		{
			foodGroup.POST("/search", foodCtrl.Search)
			foodGroup.POST("/analyze-image", foodCtrl.AnalyzeImage)
			foodGroup.POST("/analyze-recipe", foodCtrl.AnalyzeRecipe)
			foodGroup.POST("/manual", foodCtrl.AddManual)
			foodGroup.GET("/today", foodCtrl.Today)
			foodGroup.GET("/history", foodCtrl.History)
			foodGroup.PUT("/:id", foodCtrl.Update)
			foodGroup.DELETE("/:id", foodCtrl.Delete)
		}

		protected.GET("/stats/daily", statsCtrl.Daily)
	}

	return r
}
