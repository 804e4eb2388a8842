package catalog

import (
	"strconv"
	"strings"
	"time"

	"hotelbooking/pkg/models"

	"gorm.io/gorm"
)

// FavoritesLimit caps the featured-rooms listing.
const FavoritesLimit = 4

const dateLayout = "2006-01-02"

// Filters carries the raw query-string values from the presentation
// layer. Values that fail to parse are skipped rather than rejected:
// search is a read path and degrades to a wider result set instead of
// failing.
type Filters struct {
	Query     string
	MinPrice  string
	MaxPrice  string
	RoomType  string
	HotelName string
	CheckIn   string
	CheckOut  string
}

// SearchRooms returns available rooms matching the filters.
//
// The date-range filter excludes rooms with any reservation overlapping
// the requested [check_in, check_out) window, regardless of reservation
// status. This is deliberately stricter than the booking engine's
// conflict rule (active/upcoming only): the listing stays conservative
// and never advertises a window the engine could still refuse.
func SearchRooms(db *gorm.DB, f Filters) ([]models.Room, error) {
	q := db.Model(&models.Room{}).
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("rooms.available = ?", true).
		Select("rooms.*").
		Distinct()

	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(rooms.type) LIKE ? OR LOWER(hotels.name) LIKE ?", like, like)
	}
	if v, ok := parsePrice(f.MinPrice); ok {
		q = q.Where("rooms.price >= ?", v)
	}
	if v, ok := parsePrice(f.MaxPrice); ok {
		q = q.Where("rooms.price <= ?", v)
	}
	if s := strings.TrimSpace(f.RoomType); s != "" {
		q = q.Where("LOWER(rooms.type) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(f.HotelName); s != "" {
		q = q.Where("LOWER(hotels.name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	if f.CheckIn != "" && f.CheckOut != "" {
		checkIn, errIn := time.Parse(dateLayout, f.CheckIn)
		checkOut, errOut := time.Parse(dateLayout, f.CheckOut)
		if errIn == nil && errOut == nil {
			reserved := db.Model(&models.Reservation{}).
				Select("room_id").
				Where("check_in < ? AND check_out > ?", checkOut, checkIn)
			q = q.Where("rooms.id NOT IN (?)", reserved)
		}
	}

	var rooms []models.Room
	if err := q.Order("rooms.price").Preload("Hotel").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// Favorites returns the most expensive available rooms above the price
// threshold, capped to FavoritesLimit.
func Favorites(db *gorm.DB, threshold float64) ([]models.Room, error) {
	var rooms []models.Room
	err := db.
		Where("available = ? AND price > ?", true, threshold).
		Order("price DESC").
		Limit(FavoritesLimit).
		Preload("Hotel").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// HotelRooms lists the available rooms of a single hotel, ordered by
// room number.
func HotelRooms(db *gorm.DB, hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := db.
		Where("hotel_id = ? AND available = ?", hotelID, true).
		Order("number").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func parsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
