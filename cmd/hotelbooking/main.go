package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/cache"
	"hotelbooking/pkg/database"
	"hotelbooking/pkg/throttle"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var (
	db           *gorm.DB
	cacheClient  *cache.Client
	blocklist    *auth.Blocklist
	loginLimiter *throttle.Limiter
	jwtSecret    []byte
)

func main() {
	log.Println("Starting hotel booking service...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	jwtSecret = []byte(getEnv("JWT_SECRET", "dev-secret-change-me"))
	db = database.Init()
	cacheClient = cache.Init()
	blocklist = auth.NewBlocklist()
	loginLimiter = throttle.NewLimiter(5, 15*time.Minute)

	seedDemoData()

	server := gin.Default()
	server.Use(cors.Default())

	registerRoutes(server)

	port := getEnv("PORT", "8080")
	log.Printf("Hotel booking service starting on :%s", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func registerRoutes(server *gin.Engine) {
	authRequired := auth.Middleware(db, jwtSecret, blocklist)
	authOptional := auth.Optional(db, jwtSecret, blocklist)

	server.GET("/api/v1/hotels", getHotels)
	server.GET("/api/v1/hotels/:hotelUid", getHotel)
	server.GET("/api/v1/hotels/:hotelUid/rooms", getHotelRooms)

	server.GET("/api/v1/rooms", getRooms)
	server.GET("/api/v1/rooms/favorites", getFavoriteRooms)
	server.GET("/api/v1/rooms/:roomUid", authOptional, getRoom)

	server.POST("/api/v1/auth/register", register)
	server.POST("/api/v1/auth/login", login)
	server.POST("/api/v1/auth/logout", authRequired, logout)

	server.GET("/api/v1/profile", authRequired, getProfile)
	server.PUT("/api/v1/profile", authRequired, updateProfile)

	server.GET("/api/v1/reservations", authRequired, getReservations)
	server.POST("/api/v1/reservations", authRequired, createReservation)
	server.POST("/api/v1/reservations/:reservationUid/cancel", authRequired, cancelReservation)

	server.GET("/manage/health", healthCheck)
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
	ctx.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// pageParams reads page/size query params with bounds, defaulting size
// to defaultSize.
func pageParams(c *gin.Context, defaultSize int) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if size < 1 || size > 100 {
		size = defaultSize
	}
	return page, size
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
