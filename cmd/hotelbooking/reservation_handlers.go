package main

import (
	"errors"
	"net/http"
	"time"

	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/models"
	"hotelbooking/pkg/reservation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func getReservations(c *gin.Context) {
	userID := c.GetUint(auth.CtxUserID)

	var reservations []models.Reservation
	err := db.Preload("Hotel").Preload("Room").
		Where("user_id = ?", userID).
		Order("CASE status WHEN 'active' THEN 1 WHEN 'upcoming' THEN 2 WHEN 'completed' THEN 3 WHEN 'canceled' THEN 4 ELSE 5 END").
		Order("check_in DESC").
		Find(&reservations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, len(reservations))
	for i, r := range reservations {
		items[i] = reservationJSON(r)
	}
	c.JSON(http.StatusOK, items)
}

func createReservation(c *gin.Context) {
	userID := c.GetUint(auth.CtxUserID)

	var request struct {
		RoomUid  string `json:"roomUid" binding:"required,uuid"`
		Guests   int    `json:"guests" binding:"required,min=1,max=3"`
		CheckIn  string `json:"checkIn" binding:"required"`
		CheckOut string `json:"checkOut" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	checkIn, err := time.ParseInLocation(dateLayout, request.CheckIn, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format", "field": "checkIn"})
		return
	}
	checkOut, err := time.ParseInLocation(dateLayout, request.CheckOut, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format", "field": "checkOut"})
		return
	}

	var room models.Room
	if err := db.Where("room_uid = ?", request.RoomUid).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	res := models.Reservation{
		ReservationUid: uuid.New().String(),
		HotelID:        room.HotelID,
		RoomID:         room.ID,
		UserID:         userID,
		Guests:         request.Guests,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
	}

	if err := reservation.Save(db, &res, reservation.Today()); err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservationJSON(res))
}

func cancelReservation(c *gin.Context) {
	userID := c.GetUint(auth.CtxUserID)
	reservationUid := c.Param("reservationUid")

	var res models.Reservation
	err := db.Where("reservation_uid = ? AND user_id = ?", reservationUid, userID).
		First(&res).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
		return
	}

	if res.Status == models.StatusCanceled {
		c.JSON(http.StatusOK, gin.H{
			"warning":     "This reservation is already canceled",
			"reservation": reservationJSON(res),
		})
		return
	}

	if err := reservation.Cancel(db, &res); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reservationJSON(res))
}

// writeEngineError translates engine validation kinds into field-level
// HTTP errors. Conflicts are 409, bad input is 400.
func writeEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrMissingRoomSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "roomUid"})
	case errors.Is(err, reservation.ErrInvalidGuests):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "guests"})
	case errors.Is(err, reservation.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "checkOut"})
	case errors.Is(err, reservation.ErrPastCheckIn):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "checkIn"})
	case errors.Is(err, reservation.ErrRoomAlreadyBooked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "field": "roomUid"})
	case errors.Is(err, reservation.ErrRoomUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "field": "roomUid"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reservation"})
	}
}

func reservationJSON(r models.Reservation) gin.H {
	body := gin.H{
		"reservationUid": r.ReservationUid,
		"guests":         r.Guests,
		"checkIn":        r.CheckIn.Format(dateLayout),
		"checkOut":       r.CheckOut.Format(dateLayout),
		"totalPrice":     r.TotalPrice,
		"status":         r.Status,
	}
	if r.Hotel.ID != 0 {
		body["hotelUid"] = r.Hotel.HotelUid
		body["hotelName"] = r.Hotel.Name
	}
	if r.Room.ID != 0 {
		body["roomUid"] = r.Room.RoomUid
		body["roomType"] = r.Room.Type
		body["roomNumber"] = r.Room.Number
	}
	return body
}
