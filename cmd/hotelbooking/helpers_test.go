package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/cache"
	"hotelbooking/pkg/database"
	"hotelbooking/pkg/models"
	"hotelbooking/pkg/throttle"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest points the package globals at an in-memory database so
// handlers can be invoked directly.
func setupTest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := database.Migrate(testDB); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db = testDB
	cacheClient = &cache.Client{}
	blocklist = auth.NewBlocklist()
	loginLimiter = throttle.NewLimiter(5, time.Minute)
	jwtSecret = []byte("test-secret")
}

func createTestHotel(t *testing.T, name string) models.Hotel {
	hotel := models.Hotel{
		HotelUid: uuid.New().String(),
		Name:     name,
		Address:  "1 Test Street",
		Stars:    4,
	}
	if err := db.Create(&hotel).Error; err != nil {
		t.Fatalf("failed to create hotel: %v", err)
	}
	return hotel
}

func createTestRoom(t *testing.T, hotel models.Hotel, number int, roomType string, price float64) models.Room {
	room := models.Room{
		RoomUid:   uuid.New().String(),
		HotelID:   hotel.ID,
		Number:    number,
		Type:      roomType,
		Price:     price,
		Available: true,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return room
}

func createTestUser(t *testing.T, username, password string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		UserUid:      uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// jsonContext builds a test context with an optional JSON body and an
// authenticated user already resolved, the way the middleware would
// leave it.
func jsonContext(t *testing.T, method, target string, body interface{}, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		c.Request = httptest.NewRequest(method, target, bytes.NewBuffer(raw))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}

	if user != nil {
		c.Set(auth.CtxUserID, user.ID)
		c.Set(auth.CtxUserUid, user.UserUid)
		c.Set(auth.CtxUsername, user.Username)
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(dateLayout)
}
