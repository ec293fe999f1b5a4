// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pijatjogja/pijatjogja-api/config"
	"github.com/pijatjogja/pijatjogja-api/endpoint"
	"github.com/pijatjogja/pijatjogja-api/middleware"
	"github.com/pijatjogja/pijatjogja-api/model"
	"github.com/pijatjogja/pijatjogja-api/util"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Registration{},
		&model.Therapist{},
		&model.Admin{},
		&model.Session{},
		&model.WhatsAppTemplate{},
		&model.ContactInfo{},
		&model.Content{},
		&model.SecurityLog{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	if err := seedDefaults(cfg, db); err != nil {
		log.Fatalf("Error seeding database: %v", err)
	}

	util.SetSecurityLoggerDB(db)
	util.InitAdminEmailCache(128)

	if geoipPath := os.Getenv("GEOIP_DB_PATH"); geoipPath != "" {
		if err := util.InitGeoIP(geoipPath); err != nil {
			log.Printf("GeoIP database unavailable: %v", err)
		}
		defer util.CloseGeoIP()
	}

	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, session cache and rate limiting degrade gracefully: %v", err)
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := gin.Default()
	router.Use(cors.New(corsConfig()))
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	registerRoutes(router, cfg)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func corsConfig() cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{"http://localhost:3000", "https://pijatjogja.id"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsCfg.AllowOrigins = []string{origins}
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "session-token")
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	return corsCfg
}

func seedDefaults(cfg *config.Config, db *gorm.DB) error {
	if cfg.AdminEmail != "" && cfg.AdminPass != "" {
		salt, err := util.GenerateSalt()
		if err != nil {
			return err
		}
		hashed, err := util.HashPasswordArgon2(cfg.AdminPass, salt)
		if err != nil {
			return err
		}
		if err := model.SeedAdmin(db, model.Admin{
			Name:         "Admin PijatJogja",
			Email:        cfg.AdminEmail,
			Password:     hashed,
			PasswordSalt: salt,
			IsActive:     true,
		}); err != nil {
			return err
		}
	}

	if err := model.SeedWhatsAppTemplates(db); err != nil {
		return err
	}
	return model.SeedContactInfos(db)
}

func registerRoutes(router *gin.Engine, cfg *config.Config) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	loginLimiter := middleware.RateLimiter(middleware.RateLimitConfig{
		Limit:  5,
		Window: 15 * time.Minute,
	})
	registerLimiter := middleware.RateLimiter(middleware.RateLimitConfig{
		Limit:  10,
		Window: time.Hour,
	})

	// Public surface: visitor registration and marketing-page content
	router.POST("/login", loginLimiter, endpoint.Login)
	router.POST("/register", registerLimiter, endpoint.SubmitRegistration)
	router.GET("/contact", endpoint.ListContacts)
	router.GET("/content", endpoint.ListContents)

	admin := router.Group("/", middleware.AdminAuth())
	{
		admin.DELETE("/logout", endpoint.Logout)
		admin.GET("/token/validate", endpoint.ValidateToken)
		admin.POST("/verify-password", endpoint.VerifyPassword)

		admin.GET("/registration", endpoint.ListRegistrations)
		admin.GET("/registration/:id", endpoint.GetRegistrationInfo)
		admin.PATCH("/registration/:id", endpoint.ReviewRegistration)

		admin.GET("/therapist", endpoint.ListTherapists)
		admin.POST("/therapist", endpoint.CreateTherapist)
		admin.PATCH("/therapist/:id", endpoint.UpdateTherapist)
		admin.DELETE("/therapist/:id", endpoint.DeleteTherapist)

		admin.GET("/dashboard", endpoint.GetDashboard)

		admin.GET("/whatsapp-template", endpoint.ListWhatsAppTemplates)
		admin.PUT("/whatsapp-template", endpoint.UpdateWhatsAppTemplates)

		admin.PUT("/contact", endpoint.UpdateContacts)

		admin.POST("/content", endpoint.CreateContent)
		admin.PATCH("/content/:id", endpoint.UpdateContent)
		admin.DELETE("/content/:id", endpoint.DeleteContent)
	}
}
