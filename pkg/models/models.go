package models

import (
	"time"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCanceled  = "canceled"
	StatusUpcoming  = "upcoming"
)

type Hotel struct {
	ID       uint   `gorm:"primaryKey"`
	HotelUid string `gorm:"type:uuid;uniqueIndex;not null"`
	Name     string `gorm:"size:40;uniqueIndex;not null"`
	Address  string `gorm:"size:60;not null"`
	Contact  string `gorm:"size:30"`
	Email    string `gorm:"size:254"`
	Stars    int    `gorm:"not null;check:stars >= 1 AND stars <= 5"`
	About    string
	Image    string

	Rooms  []Room       `gorm:"constraint:OnDelete:CASCADE"`
	Images []HotelImage `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Room struct {
	ID        uint    `gorm:"primaryKey"`
	RoomUid   string  `gorm:"type:uuid;uniqueIndex;not null"`
	HotelID   uint    `gorm:"not null;uniqueIndex:idx_hotel_room_number"`
	Number    int     `gorm:"not null;uniqueIndex:idx_hotel_room_number"`
	Type      string  `gorm:"size:30;not null"`
	Price     float64 `gorm:"not null;check:price >= 0"`
	Available bool    `gorm:"not null;default:true"`
	Image     string

	Hotel  Hotel       `gorm:"foreignKey:HotelID"`
	Images []RoomImage `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RoomImage struct {
	ID     uint   `gorm:"primaryKey"`
	RoomID uint   `gorm:"not null"`
	URL    string `gorm:"not null"`
}

type HotelImage struct {
	ID      uint   `gorm:"primaryKey"`
	HotelID uint   `gorm:"not null"`
	URL     string `gorm:"not null"`
}

// Reservation dates are date-granular, stored as midnight UTC. The
// [CheckIn, CheckOut) interval is half-open: check-out day is free for
// the next guest.
type Reservation struct {
	ID             uint   `gorm:"primaryKey"`
	ReservationUid string `gorm:"type:uuid;uniqueIndex;not null"`
	HotelID        uint   `gorm:"not null"`
	RoomID         uint   `gorm:"not null"`
	UserID         uint   `gorm:"not null"`
	Guests         int    `gorm:"not null;check:guests >= 1 AND guests <= 3"`
	CheckIn        time.Time
	CheckOut       time.Time
	TotalPrice     float64
	Status         string `gorm:"size:20;not null"`

	Hotel Hotel `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
	Room  Room  `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	UserUid      string `gorm:"type:uuid;uniqueIndex;not null"`
	Username     string `gorm:"size:80;not null;uniqueIndex"`
	Email        string `gorm:"size:254"`
	PasswordHash string `gorm:"not null"`

	Profile UserProfile `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserProfile struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"not null;uniqueIndex"`
	Phone   string `gorm:"size:20"`
	Address string `gorm:"size:100"`
}
