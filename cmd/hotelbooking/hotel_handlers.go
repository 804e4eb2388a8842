package main

import (
	"net/http"

	"hotelbooking/pkg/catalog"
	"hotelbooking/pkg/models"

	"github.com/gin-gonic/gin"
)

const hotelsPageSize = 4

func getHotels(c *gin.Context) {
	page, size := pageParams(c, hotelsPageSize)

	var total int64
	if err := db.Model(&models.Hotel{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var hotels []models.Hotel
	err := db.Order("name").
		Limit(size).
		Offset((page - 1) * size).
		Find(&hotels).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, len(hotels))
	for i, h := range hotels {
		items[i] = hotelJSON(h)
	}
	c.JSON(http.StatusOK, gin.H{
		"items":    items,
		"page":     page,
		"pageSize": size,
		"total":    total,
	})
}

func getHotel(c *gin.Context) {
	hotelUid := c.Param("hotelUid")

	var hotel models.Hotel
	err := db.Preload("Images").Where("hotel_uid = ?", hotelUid).First(&hotel).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
		return
	}

	rooms, err := catalog.HotelRooms(db, hotel.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	roomItems := make([]gin.H, len(rooms))
	for i, r := range rooms {
		roomItems[i] = roomJSON(r)
	}
	images := make([]string, len(hotel.Images))
	for i, img := range hotel.Images {
		images[i] = img.URL
	}

	body := hotelJSON(hotel)
	body["about"] = hotel.About
	body["images"] = images
	body["rooms"] = roomItems
	c.JSON(http.StatusOK, body)
}

func getHotelRooms(c *gin.Context) {
	hotelUid := c.Param("hotelUid")

	var hotel models.Hotel
	if err := db.Where("hotel_uid = ?", hotelUid).First(&hotel).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
		return
	}

	rooms, err := catalog.HotelRooms(db, hotel.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, len(rooms))
	for i, r := range rooms {
		items[i] = roomJSON(r)
	}
	c.JSON(http.StatusOK, items)
}

func hotelJSON(h models.Hotel) gin.H {
	return gin.H{
		"hotelUid": h.HotelUid,
		"name":     h.Name,
		"address":  h.Address,
		"contact":  h.Contact,
		"email":    h.Email,
		"stars":    h.Stars,
		"image":    h.Image,
	}
}
