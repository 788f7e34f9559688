package main

import (
	"eventease/pkg/models"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type bookingRequest struct {
	ID           uint      `json:"id"`
	CustomerName string    `json:"customerName" binding:"required,max=100"`
	ContactEmail string    `json:"contactEmail" binding:"omitempty,email"`
	BookingDate  time.Time `json:"bookingDate"`
	IsBooked     *bool     `json:"isBooked"`
	VenueID      uint      `json:"venueId"`
	EventID      uint      `json:"eventId"`
}

// bookingView is a booking joined with its venue and event display fields.
type bookingView struct {
	ID             uint      `json:"id"`
	CustomerName   string    `json:"customerName"`
	ContactEmail   string    `json:"contactEmail"`
	BookingDate    time.Time `json:"bookingDate"`
	IsBooked       bool      `json:"isBooked"`
	Status         string    `json:"status"`
	VenueID        uint      `json:"venueId"`
	EventID        uint      `json:"eventId"`
	EventName      string    `json:"eventName"`
	VenueName      string    `json:"venueName"`
	VenueEventType string    `json:"venueEventType"`
	VenueAvailable bool      `json:"venueAvailable"`
}

func newBookingView(b models.Booking) bookingView {
	status := "Confirmed"
	if !b.IsBooked {
		status = "Cancelled"
	}
	return bookingView{
		ID:             b.ID,
		CustomerName:   b.CustomerName,
		ContactEmail:   b.ContactEmail,
		BookingDate:    b.BookingDate,
		IsBooked:       b.IsBooked,
		Status:         status,
		VenueID:        b.VenueID,
		EventID:        b.EventID,
		EventName:      b.Event.Name,
		VenueName:      b.Venue.Name,
		VenueEventType: b.Venue.EventType,
		VenueAvailable: b.Venue.IsAvailable,
	}
}

// getBookings lists bookings joined with venue and event names. Optional
// query parameters (search, eventType, startDate, endDate, available)
// narrow the result; they compose with logical AND and are applied
// in-memory over the joined rows.
func getBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := db.Preload("Venue").Preload("Event").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]bookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, newBookingView(b))
	}

	if search := c.Query("search"); search != "" {
		needle := strings.ToLower(search)
		views = filterViews(views, func(v bookingView) bool {
			return strings.Contains(strconv.FormatUint(uint64(v.ID), 10), needle) ||
				strings.Contains(strings.ToLower(v.CustomerName), needle) ||
				strings.Contains(strings.ToLower(v.EventName), needle) ||
				strings.Contains(strings.ToLower(v.VenueName), needle)
		})
	}

	if eventType := c.Query("eventType"); eventType != "" {
		want := strings.TrimSpace(eventType)
		views = filterViews(views, func(v bookingView) bool {
			return strings.EqualFold(strings.TrimSpace(v.VenueEventType), want)
		})
	}

	if startDateStr := c.Query("startDate"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate format, expected YYYY-MM-DD"})
			return
		}
		views = filterViews(views, func(v bookingView) bool {
			return !dateOnly(v.BookingDate).Before(startDate)
		})
	}

	if endDateStr := c.Query("endDate"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate format, expected YYYY-MM-DD"})
			return
		}
		views = filterViews(views, func(v bookingView) bool {
			return !dateOnly(v.BookingDate).After(endDate)
		})
	}

	if availableStr := c.Query("available"); availableStr != "" {
		available, err := strconv.ParseBool(availableStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid available flag"})
			return
		}
		views = filterViews(views, func(v bookingView) bool {
			return v.VenueAvailable == available
		})
	}

	eventTypes, err := venueEventTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      views,
		"eventTypes": eventTypes,
	})
}

func getBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var booking models.Booking
	if err := db.Preload("Venue").Preload("Event").First(&booking, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	c.JSON(http.StatusOK, newBookingView(booking))
}

func createBooking(c *gin.Context) {
	var request bookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if request.VenueID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid venue."})
		return
	}
	if request.EventID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid event."})
		return
	}

	if request.BookingDate.IsZero() {
		request.BookingDate = time.Now()
	}
	isBooked := true
	if request.IsBooked != nil {
		isBooked = *request.IsBooked
	}

	conflict, err := bookingConflictExists(request.VenueID, request.BookingDate, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if conflict {
		c.JSON(http.StatusConflict, gin.H{
			"error": "This venue is already booked for the selected date and time.",
			"field": "bookingDate",
		})
		return
	}

	booking := models.Booking{
		CustomerName: request.CustomerName,
		ContactEmail: request.ContactEmail,
		BookingDate:  request.BookingDate,
		IsBooked:     isBooked,
		VenueID:      request.VenueID,
		EventID:      request.EventID,
	}
	if err := db.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

func updateBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var request bookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if request.ID != uint(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if request.VenueID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid venue."})
		return
	}
	if request.EventID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a valid event."})
		return
	}

	var booking models.Booking
	if err := db.First(&booking, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if request.BookingDate.IsZero() {
		request.BookingDate = time.Now()
	}
	isBooked := true
	if request.IsBooked != nil {
		isBooked = *request.IsBooked
	}

	conflict, err := bookingConflictExists(request.VenueID, request.BookingDate, booking.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if conflict {
		c.JSON(http.StatusConflict, gin.H{
			"error": "This venue is already booked for the selected date and time.",
			"field": "bookingDate",
		})
		return
	}

	booking.CustomerName = request.CustomerName
	booking.ContactEmail = request.ContactEmail
	booking.BookingDate = request.BookingDate
	booking.IsBooked = isBooked
	booking.VenueID = request.VenueID
	booking.EventID = request.EventID

	if err := db.Save(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

func deleteBooking(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	var booking models.Booking
	if err := db.First(&booking, id).Error; err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if err := db.Delete(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete booking"})
		return
	}
	c.Status(http.StatusNoContent)
}

// bookingConflictExists reports whether an active booking already occupies
// the venue at the exact timestamp. excludeID skips the booking being
// edited so a record can keep its own slot.
func bookingConflictExists(venueID uint, bookingDate time.Time, excludeID uint) (bool, error) {
	query := db.Model(&models.Booking{}).
		Where("venue_id = ? AND booking_date = ? AND is_booked = ?", venueID, bookingDate, true)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// venueEventTypes returns the distinct, trimmed, sorted set of non-empty
// venue event type values, used as the search filter vocabulary.
func venueEventTypes() ([]string, error) {
	var raw []string
	err := db.Model(&models.Venue{}).Where("event_type <> ''").Pluck("event_type", &raw).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	types := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}
	sort.Strings(types)
	return types, nil
}

func filterViews(views []bookingView, keep func(bookingView) bool) []bookingView {
	filtered := make([]bookingView, 0, len(views))
	for _, v := range views {
		if keep(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
