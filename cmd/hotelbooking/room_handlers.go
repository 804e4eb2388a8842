package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hotelbooking/pkg/auth"
	"hotelbooking/pkg/catalog"
	"hotelbooking/pkg/models"

	"github.com/gin-gonic/gin"
)

const (
	roomsPageSize     = 8
	defaultFavorites  = 200.0
	favoritesCacheTTL = 60 * time.Second
)

func getRooms(c *gin.Context) {
	filters := catalog.Filters{
		Query:     c.Query("q"),
		MinPrice:  c.Query("min_price"),
		MaxPrice:  c.Query("max_price"),
		RoomType:  c.Query("room_type"),
		HotelName: c.Query("hotel_name"),
		CheckIn:   c.Query("check_in"),
		CheckOut:  c.Query("check_out"),
	}

	rooms, err := catalog.SearchRooms(db, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page, size := pageParams(c, roomsPageSize)
	start := (page - 1) * size
	if start > len(rooms) {
		start = len(rooms)
	}
	end := start + size
	if end > len(rooms) {
		end = len(rooms)
	}

	items := make([]gin.H, 0, end-start)
	for _, r := range rooms[start:end] {
		items = append(items, roomJSON(r))
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"page":     page,
		"pageSize": size,
		"total":    len(rooms),
	})
}

func getFavoriteRooms(c *gin.Context) {
	threshold := defaultFavorites
	if raw := c.Query("threshold"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			threshold = v
		}
	}

	cacheKey := fmt.Sprintf("favorites:%g", threshold)
	var cached []gin.H
	if cacheClient.GetJSON(c.Request.Context(), cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	rooms, err := catalog.Favorites(db, threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, len(rooms))
	for i, r := range rooms {
		items[i] = roomJSON(r)
	}
	cacheClient.SetJSON(c.Request.Context(), cacheKey, items, favoritesCacheTTL)
	c.JSON(http.StatusOK, items)
}

func getRoom(c *gin.Context) {
	roomUid := c.Param("roomUid")

	var room models.Room
	err := db.Preload("Hotel").Preload("Images").
		Where("room_uid = ?", roomUid).First(&room).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	images := make([]string, len(room.Images))
	for i, img := range room.Images {
		images[i] = img.URL
	}

	body := roomJSON(room)
	body["images"] = images
	body["hotel"] = hotelJSON(room.Hotel)

	// Authenticated callers also see their own history on this room.
	if userID, ok := c.Get(auth.CtxUserID); ok {
		var reservations []models.Reservation
		err := db.Where("room_id = ? AND user_id = ?", room.ID, userID).
			Order("check_in DESC").
			Find(&reservations).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		own := make([]gin.H, len(reservations))
		for i, r := range reservations {
			own[i] = reservationJSON(r)
		}
		body["myReservations"] = own
	}

	c.JSON(http.StatusOK, body)
}

func roomJSON(r models.Room) gin.H {
	body := gin.H{
		"roomUid":   r.RoomUid,
		"number":    r.Number,
		"type":      r.Type,
		"price":     r.Price,
		"available": r.Available,
		"image":     r.Image,
	}
	if r.Hotel.ID != 0 {
		body["hotelUid"] = r.Hotel.HotelUid
		body["hotelName"] = r.Hotel.Name
	}
	return body
}
