package main

import (
	"log"

	"hotelbooking/pkg/models"

	"github.com/google/uuid"
)

// seedDemoData inserts a small catalog so a fresh instance has something
// to browse. Existing hotels are left alone.
func seedDemoData() {
	hotels := []models.Hotel{
		{
			HotelUid: uuid.New().String(),
			Name:     "Grand Plaza",
			Address:  "12 Riverside Ave",
			Contact:  "+1 555 0101",
			Email:    "desk@grandplaza.example",
			Stars:    5,
			About:    "Riverside flagship with conference floors.",
			Rooms: []models.Room{
				{RoomUid: uuid.New().String(), Number: 101, Type: "Standard", Price: 120, Available: true},
				{RoomUid: uuid.New().String(), Number: 102, Type: "Deluxe", Price: 210, Available: true},
				{RoomUid: uuid.New().String(), Number: 201, Type: "Suite", Price: 340, Available: true},
			},
		},
		{
			HotelUid: uuid.New().String(),
			Name:     "Harbor Inn",
			Address:  "3 Dock Street",
			Contact:  "+1 555 0102",
			Email:    "stay@harborinn.example",
			Stars:    3,
			About:    "Small inn by the old harbor.",
			Rooms: []models.Room{
				{RoomUid: uuid.New().String(), Number: 1, Type: "Single", Price: 60, Available: true},
				{RoomUid: uuid.New().String(), Number: 2, Type: "Double", Price: 95, Available: true},
			},
		},
	}

	for _, h := range hotels {
		var existing models.Hotel
		if err := db.Where("name = ?", h.Name).First(&existing).Error; err != nil {
			if err := db.Create(&h).Error; err != nil {
				log.Printf("Failed to seed hotel %s: %v", h.Name, err)
			}
		}
	}
	log.Println("Hotel demo data seeded")
}
