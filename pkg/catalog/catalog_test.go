package catalog

import (
	"testing"
	"time"

	"hotelbooking/pkg/database"
	"hotelbooking/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createHotel(t *testing.T, db *gorm.DB, name string) models.Hotel {
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

func createRoom(t *testing.T, db *gorm.DB, hotel models.Hotel, number int, roomType string, price float64, available bool) models.Room {
	room := models.Room{
		RoomUid:   uuid.New().String(),
		HotelID:   hotel.ID,
		Number:    number,
		Type:      roomType,
		Price:     price,
		Available: available,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return room
}

func createReservation(t *testing.T, db *gorm.DB, room models.Room, checkIn, checkOut time.Time, status string) {
	user := models.User{
		UserUid:      uuid.New().String(),
		Username:     "guest-" + uuid.New().String()[:8],
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	res := models.Reservation{
		ReservationUid: uuid.New().String(),
		HotelID:        room.HotelID,
		RoomID:         room.ID,
		UserID:         user.ID,
		Guests:         1,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Status:         status,
	}
	if err := db.Create(&res).Error; err != nil {
		t.Fatalf("failed to create reservation: %v", err)
	}
}

func roomUids(rooms []models.Room) []string {
	uids := make([]string, len(rooms))
	for i, r := range rooms {
		uids[i] = r.RoomUid
	}
	return uids
}

func TestSearchRoomsFreeText(t *testing.T) {
	db := setupTestDB(t)
	plaza := createHotel(t, db, "Grand Plaza")
	inn := createHotel(t, db, "Harbor Inn")
	suite := createRoom(t, db, plaza, 1, "Suite", 300, true)
	double := createRoom(t, db, inn, 1, "Double", 90, true)
	createRoom(t, db, inn, 2, "Single", 60, false)

	// Matches room type, case-insensitive.
	rooms, err := SearchRooms(db, Filters{Query: "suite"})
	assert.NoError(t, err)
	assert.Equal(t, []string{suite.RoomUid}, roomUids(rooms))

	// Matches hotel name; unavailable rooms never appear.
	rooms, err = SearchRooms(db, Filters{Query: "harbor"})
	assert.NoError(t, err)
	assert.Equal(t, []string{double.RoomUid}, roomUids(rooms))
}

func TestSearchRoomsPriceAndTypeFilters(t *testing.T) {
	db := setupTestDB(t)
	hotel := createHotel(t, db, "Grand Plaza")
	createRoom(t, db, hotel, 1, "Standard", 80, true)
	deluxe := createRoom(t, db, hotel, 2, "Deluxe", 150, true)
	suite := createRoom(t, db, hotel, 3, "Suite", 300, true)

	rooms, err := SearchRooms(db, Filters{MinPrice: "100", MaxPrice: "200"})
	assert.NoError(t, err)
	assert.Equal(t, []string{deluxe.RoomUid}, roomUids(rooms))

	rooms, err = SearchRooms(db, Filters{RoomType: "sui"})
	assert.NoError(t, err)
	assert.Equal(t, []string{suite.RoomUid}, roomUids(rooms))

	rooms, err = SearchRooms(db, Filters{HotelName: "plaza"})
	assert.NoError(t, err)
	assert.Len(t, rooms, 3)

	// Unparseable prices are ignored, not fatal.
	rooms, err = SearchRooms(db, Filters{MinPrice: "cheap"})
	assert.NoError(t, err)
	assert.Len(t, rooms, 3)
}

func TestSearchRoomsDateWindow(t *testing.T) {
	db := setupTestDB(t)
	hotel := createHotel(t, db, "Grand Plaza")
	booked := createRoom(t, db, hotel, 1, "Standard", 80, true)
	free := createRoom(t, db, hotel, 2, "Standard", 85, true)

	// The date filter counts reservations of every status, even
	// canceled ones: the listing is deliberately conservative.
	createReservation(t, db, booked, date(2025, 6, 1), date(2025, 6, 5), models.StatusCanceled)

	rooms, err := SearchRooms(db, Filters{CheckIn: "2025-06-03", CheckOut: "2025-06-07"})
	assert.NoError(t, err)
	assert.Equal(t, []string{free.RoomUid}, roomUids(rooms))

	// Adjacent window: [5,8) does not overlap [1,5).
	rooms, err = SearchRooms(db, Filters{CheckIn: "2025-06-05", CheckOut: "2025-06-08"})
	assert.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestSearchRoomsMalformedDatesIgnored(t *testing.T) {
	db := setupTestDB(t)
	hotel := createHotel(t, db, "Grand Plaza")
	booked := createRoom(t, db, hotel, 1, "Standard", 80, true)
	createReservation(t, db, booked, date(2025, 6, 1), date(2025, 6, 5), models.StatusActive)

	// A malformed date drops the filter; the rest of the search still
	// runs and the booked room is not excluded.
	rooms, err := SearchRooms(db, Filters{CheckIn: "06/03/2025", CheckOut: "2025-06-07"})
	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestFavorites(t *testing.T) {
	db := setupTestDB(t)
	hotel := createHotel(t, db, "Grand Plaza")
	createRoom(t, db, hotel, 1, "Standard", 150, true)
	createRoom(t, db, hotel, 2, "Deluxe", 210, true)
	r3 := createRoom(t, db, hotel, 3, "Suite", 340, true)
	r4 := createRoom(t, db, hotel, 4, "Suite", 320, true)
	r5 := createRoom(t, db, hotel, 5, "Suite", 280, true)
	r6 := createRoom(t, db, hotel, 6, "Suite", 260, true)
	createRoom(t, db, hotel, 7, "Penthouse", 900, false)

	rooms, err := Favorites(db, 200)
	assert.NoError(t, err)

	// Price above threshold, available only, descending, capped to 4.
	// The 210 room is fifth by price and the 900 one is unavailable.
	assert.Equal(t, []string{r3.RoomUid, r4.RoomUid, r5.RoomUid, r6.RoomUid}, roomUids(rooms))
}

func TestHotelRooms(t *testing.T) {
	db := setupTestDB(t)
	plaza := createHotel(t, db, "Grand Plaza")
	inn := createHotel(t, db, "Harbor Inn")
	r1 := createRoom(t, db, plaza, 2, "Deluxe", 150, true)
	r2 := createRoom(t, db, plaza, 1, "Standard", 80, true)
	createRoom(t, db, plaza, 3, "Suite", 300, false)
	createRoom(t, db, inn, 1, "Single", 60, true)

	rooms, err := HotelRooms(db, plaza.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{r2.RoomUid, r1.RoomUid}, roomUids(rooms))
}
