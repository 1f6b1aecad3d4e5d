package routes

import (
	"time"

	"wanderlist/handlers"
	"wanderlist/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "x-auth-token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Auth
	auth := router.Group("/api/auth")
	auth.Use(middleware.RateLimitMiddleware(60, time.Minute))
	auth.POST("/register", handlers.Register)
	auth.GET("/verify/:token", handlers.VerifyEmail)
	auth.POST("/resend-verification", handlers.ResendVerification)
	auth.POST("/login", handlers.Login)
	auth.GET("/me", middleware.JWTAuthMiddleware(), handlers.GetMe)
	auth.PUT("/updatedetails", middleware.JWTAuthMiddleware(), handlers.UpdateDetails)

	// Countries (static dataset + rating stats)
	router.GET("/api/countries", handlers.GetCountries)
	router.GET("/api/countries/random", handlers.GetRandomCountry)
	router.GET("/api/countries/:name", handlers.GetCountryByName)

	// Wanderlist
	wanderlist := router.Group("/api/wanderlist")
	wanderlist.Use(middleware.JWTAuthMiddleware())
	wanderlist.GET("", handlers.GetWanderlist)
	wanderlist.POST("", handlers.AddToWanderlist)
	wanderlist.DELETE("/:name", handlers.RemoveFromWanderlist)

	// Reviews. The GET wildcard is shared between the country listing and
	// the likes route because gin allows one param name per segment.
	router.GET("/api/reviews/recent", handlers.GetRecentReviews)
	router.GET("/api/reviews/user", middleware.JWTAuthMiddleware(), handlers.GetMyReviews)
	router.GET("/api/reviews/:id", handlers.GetCountryReviews)
	router.POST("/api/reviews", middleware.JWTAuthMiddleware(), handlers.CreateReview)
	router.PUT("/api/reviews/:id", middleware.JWTAuthMiddleware(), handlers.UpdateReview)
	router.DELETE("/api/reviews/:id", middleware.JWTAuthMiddleware(), handlers.DeleteReview)
	router.PUT("/api/reviews/:id/like", middleware.JWTAuthMiddleware(), handlers.ToggleLike)
	router.GET("/api/reviews/:id/likes", handlers.GetReviewLikes)

	// Ratings
	router.POST("/api/ratings", middleware.JWTAuthMiddleware(), handlers.RateCountry)
	router.GET("/api/ratings/:countryName", handlers.GetCountryRatingStats)
	router.GET("/api/ratings/:countryName/user", middleware.JWTAuthMiddleware(), handlers.GetUserRating)

	// Visited countries + public profiles
	users := router.Group("/api/users")
	users.GET("/visited-details", middleware.JWTAuthMiddleware(), handlers.GetVisitedDetails)
	users.POST("/visited", middleware.JWTAuthMiddleware(), handlers.AddVisitedCountry)
	users.DELETE("/visited/:countryName", middleware.JWTAuthMiddleware(), handlers.RemoveVisitedCountry)
	users.GET("/:username", handlers.GetPublicProfile)

	// Game
	router.POST("/api/game/score", middleware.JWTAuthMiddleware(), handlers.SubmitGameScore)

	// Media. Stored documents reference /uploads/<filename> paths, so the
	// same handler answers on both prefixes.
	router.GET("/api/media/:filename", handlers.GetMedia)
	router.GET("/uploads/:filename", handlers.GetMedia)

	// External content proxies
	router.GET("/api/wiki/images/:country", handlers.GetWikiImages)
	router.GET("/api/wiki/:country", handlers.GetWikiSections)
	router.GET("/api/youtube/video/:countryName", handlers.GetCountryVideo)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{"msg": "Endpoint not found", "path": c.Request.URL.Path})
			return
		}
		c.Next()
	})

	return router
}
