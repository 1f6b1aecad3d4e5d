package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wanderlist/clients"
	"wanderlist/config"
	"wanderlist/countries"
	"wanderlist/database"
	"wanderlist/handlers"
	"wanderlist/mailer"
	"wanderlist/routes"
	"wanderlist/storage"

	"github.com/gin-gonic/gin"
)

const countriesDataPath = "data/countries.json"

func main() {
	log.Println("🚀 Starting Wanderlist API Server...")

	cfg := config.LoadConfig()

	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET must be set")
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("🔌 Connecting to MongoDB...")

	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.ConnectMongo(); err != nil {
			dbErr = err
			log.Printf("❌ MongoDB connection attempt %d failed: %v", i, err)
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}

	if dbErr != nil {
		log.Fatal("❌ Failed to connect to MongoDB:", dbErr)
	}
	defer database.DisconnectMongo()

	if err := database.EnsureIndexes(); err != nil {
		log.Fatal("❌ Failed to create indexes:", err)
	}

	log.Println("✅ MongoDB connected successfully")

	// ===== DEPENDENCIES =====
	mediaStore, err := storage.NewMediaStore(database.DB)
	if err != nil {
		log.Fatal("❌ Failed to initialize media store:", err)
	}
	handlers.SetMediaStore(mediaStore)

	countryData, err := countries.Load(countriesDataPath)
	if err != nil {
		log.Fatal("❌ Failed to load country dataset:", err)
	}
	log.Printf("✅ Loaded %d countries", countryData.Len())
	handlers.SetCountryData(countryData)

	mail := mailer.New(cfg.EmailUser, cfg.EmailPass)
	if !mail.Enabled() {
		log.Println("⚠️ Email credentials not set, verification emails will only be logged")
	}
	handlers.SetMailer(mail)

	handlers.SetWikiClient(clients.NewWikiClient())
	handlers.SetYouTubeClient(clients.NewYouTubeClient(cfg.YouTubeAPIKey))

	// ===== GIN MODE =====
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
		log.Println("⚙️ Running in RELEASE mode")
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("⚙️ Running in DEBUG mode")
	}

	// ===== ROUTER =====
	router := routes.SetupRouter()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "Wanderlist API Running 🌍",
			"service": "healthy",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// ===== SERVER CONFIG =====
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // media streaming needs headroom
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Server error:", err)
		}
	}()

	log.Println("✅ Server is ready and accepting connections")

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("👋 Server stopped gracefully")
}
