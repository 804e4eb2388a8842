package reservation

import (
	"errors"
	"fmt"
	"time"

	"hotelbooking/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Validation failures surfaced to the presentation layer as field-level
// errors. None of them is fatal; all require corrected user input.
var (
	ErrMissingRoomSelection = errors.New("a room must be selected")
	ErrInvalidGuests        = errors.New("guests must be between 1 and 3")
	ErrInvalidDateRange     = errors.New("check-out must be after check-in day")
	ErrPastCheckIn          = errors.New("check-in must be today or in the future")
	ErrRoomAlreadyBooked    = errors.New("this room is already booked on these dates")
	ErrRoomUnavailable      = errors.New("this room is currently unavailable")
)

// Date truncates t to midnight UTC. All reservation dates are
// date-granular; comparisons assume this normalization.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current date in UTC. Callers inject it into Validate,
// Derive and Save so the engine itself never reads the clock.
func Today() time.Time {
	return Date(time.Now().UTC())
}

// Nights is the whole-day length of the [checkIn, checkOut) interval.
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Derive computes the lifecycle status and total price of a stay from
// today's date. It never returns the canceled status; cancellation is an
// explicit action, not a derived state.
func Derive(checkIn, checkOut time.Time, pricePerNight float64, today time.Time) (string, float64) {
	total := float64(Nights(checkIn, checkOut)) * pricePerNight

	switch {
	case checkOut.Before(today):
		return models.StatusCompleted, total
	case !checkIn.After(today) && !today.After(checkOut):
		return models.StatusActive, total
	default:
		return models.StatusUpcoming, total
	}
}

// Validate checks a proposed reservation against the date rules and the
// existing bookings for its room. It performs no writes. A reservation
// being canceled always passes: cancellation must be able to persist
// regardless of dates.
//
// Two date ranges conflict when they overlap as half-open intervals:
// new.check_in < existing.check_out AND new.check_out > existing.check_in.
// Only active and upcoming reservations block a room; completed and
// canceled stays never do. The record under validation is excluded from
// the conflict set by identity so updates do not collide with themselves.
func Validate(tx *gorm.DB, r *models.Reservation, today time.Time) error {
	if r.Status == models.StatusCanceled {
		return nil
	}
	if r.RoomID == 0 {
		return ErrMissingRoomSelection
	}
	if r.Guests < 1 || r.Guests > 3 {
		return ErrInvalidGuests
	}
	if !r.CheckOut.After(r.CheckIn) {
		return ErrInvalidDateRange
	}
	if r.CheckIn.Before(today) {
		return ErrPastCheckIn
	}

	conflicts := tx.Model(&models.Reservation{}).
		Where("room_id = ? AND check_in < ? AND check_out > ?", r.RoomID, r.CheckOut, r.CheckIn).
		Where("status IN ?", []string{models.StatusActive, models.StatusUpcoming})
	if r.ID != 0 {
		conflicts = conflicts.Where("id <> ?", r.ID)
	}

	var count int64
	if err := conflicts.Count(&count).Error; err != nil {
		return fmt.Errorf("conflict lookup failed: %w", err)
	}
	if count > 0 {
		return ErrRoomAlreadyBooked
	}
	return nil
}

// Save validates a reservation, recomputes its derived fields and writes
// it together with its room's availability flag in one transaction. If
// validation fails nothing is written. On postgres the room row is locked
// for the duration of the transaction so two concurrent bookings for the
// same room serialize instead of double-booking.
func Save(db *gorm.DB, r *models.Reservation, today time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if r.RoomID == 0 {
			return ErrMissingRoomSelection
		}

		var room models.Room
		if err := lockRoom(tx).First(&room, r.RoomID).Error; err != nil {
			return fmt.Errorf("room lookup failed: %w", err)
		}

		// A room flagged unavailable with no active or upcoming
		// reservation explaining it has been blocked out of band (say,
		// maintenance) and takes no new bookings. When a reservation
		// does hold the room, the overlap rule below decides instead:
		// adjacent, non-overlapping dates are still bookable.
		if r.ID == 0 && r.Status != models.StatusCanceled && !room.Available {
			var holders int64
			err := tx.Model(&models.Reservation{}).
				Where("room_id = ? AND status IN ?", room.ID, []string{models.StatusActive, models.StatusUpcoming}).
				Count(&holders).Error
			if err != nil {
				return fmt.Errorf("availability count failed: %w", err)
			}
			if holders == 0 {
				return ErrRoomUnavailable
			}
		}

		if err := Validate(tx, r, today); err != nil {
			return err
		}

		status, total := Derive(r.CheckIn, r.CheckOut, room.Price, today)
		r.TotalPrice = total
		if r.Status != models.StatusCanceled {
			r.Status = status
		}

		if err := tx.Save(r).Error; err != nil {
			return fmt.Errorf("failed to save reservation: %w", err)
		}
		return syncRoomAvailability(tx, room.ID)
	})
}

// Cancel transitions a reservation to its terminal canceled state and
// releases the room if no other active or upcoming reservation still
// holds it. Canceling an already-canceled reservation is a no-op at the
// status level; callers wanting to warn about it must check first.
func Cancel(db *gorm.DB, r *models.Reservation) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if r.RoomID != 0 {
			var room models.Room
			if err := lockRoom(tx).First(&room, r.RoomID).Error; err != nil {
				return fmt.Errorf("room lookup failed: %w", err)
			}
		}

		r.Status = models.StatusCanceled
		if err := tx.Save(r).Error; err != nil {
			return fmt.Errorf("failed to cancel reservation: %w", err)
		}
		return syncRoomAvailability(tx, r.RoomID)
	})
}

// syncRoomAvailability re-derives the room's availability flag from the
// authoritative reservation set: a room is available exactly when no
// active or upcoming reservation exists for it. Only that column is
// written.
func syncRoomAvailability(tx *gorm.DB, roomID uint) error {
	var holders int64
	err := tx.Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ?", roomID, []string{models.StatusActive, models.StatusUpcoming}).
		Count(&holders).Error
	if err != nil {
		return fmt.Errorf("availability count failed: %w", err)
	}

	err = tx.Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("available", holders == 0).Error
	if err != nil {
		return fmt.Errorf("failed to update room availability: %w", err)
	}
	return nil
}

func lockRoom(tx *gorm.DB) *gorm.DB {
	// sqlite has no FOR UPDATE; its single-writer model covers the tests.
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
