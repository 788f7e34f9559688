package main

import (
	"eventease/pkg/blobstore"
	"eventease/pkg/database"
	"eventease/pkg/models"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var (
	db    *gorm.DB
	blobs blobstore.Store
)

func main() {
	log.Println("Starting eventease service...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db = database.InitDB()
	seedEventTypes()

	account := os.Getenv("AZURE_STORAGE_ACCOUNT")
	accountKey := os.Getenv("AZURE_STORAGE_KEY")
	container := getEnv("AZURE_STORAGE_CONTAINER", "images")

	if account != "" && accountKey != "" {
		store, err := blobstore.NewAzureStore(account, accountKey, container)
		if err != nil {
			log.Fatalf("Failed to initialize blob storage: %v", err)
		}
		blobs = store
		log.Printf("Using Azure blob storage account %s, container %s", account, container)
	} else {
		blobs = blobstore.NewMemoryStore()
		log.Println("Azure storage not configured, using in-memory blob store")
	}

	server := gin.Default()

	server.GET("/api/v1/venues", getVenues)
	server.GET("/api/v1/venues/:id", getVenue)
	server.POST("/api/v1/venues", createVenue)
	server.PUT("/api/v1/venues/:id", updateVenue)
	server.DELETE("/api/v1/venues/:id", deleteVenue)

	server.GET("/api/v1/events", getEvents)
	server.GET("/api/v1/events/:id", getEvent)
	server.POST("/api/v1/events", createEvent)
	server.PUT("/api/v1/events/:id", updateEvent)
	server.DELETE("/api/v1/events/:id", deleteEvent)

	server.GET("/api/v1/bookings", getBookings)
	server.GET("/api/v1/bookings/:id", getBooking)
	server.POST("/api/v1/bookings", createBooking)
	server.PUT("/api/v1/bookings/:id", updateBooking)
	server.DELETE("/api/v1/bookings/:id", deleteBooking)

	server.GET("/api/v1/event-types", getEventTypes)
	server.GET("/api/v1/images/:blobName", getImage)
	server.GET("/manage/health", healthCheck)

	port := getEnv("PORT", "8080")
	log.Printf("Eventease service starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// seedEventTypes fills the EventTypes lookup table once. Subsequent starts
// leave it untouched.
func seedEventTypes() {
	var count int64
	if err := db.Model(&models.EventType{}).Count(&count).Error; err != nil {
		log.Printf("Failed to check event types: %v", err)
		return
	}
	if count > 0 {
		return
	}

	eventTypes := []models.EventType{
		{Name: "Conference"},
		{Name: "Wedding"},
		{Name: "Birthday"},
		{Name: "Seminar"},
	}
	for _, eventType := range eventTypes {
		if err := db.Create(&eventType).Error; err != nil {
			log.Printf("Failed to seed event type %s: %v", eventType.Name, err)
		}
	}
	log.Println("Event types seeded")
}

func getEventTypes(c *gin.Context) {
	var eventTypes []models.EventType
	if err := db.Order("name").Find(&eventTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, eventTypes)
}

func healthCheck(ctx *gin.Context) {
	sqlDB, err := db.DB()
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database connection failed",
			"error":   err.Error(),
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"details": "Database ping failed",
			"error":   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"details": "Eventease service is active",
	})
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
