package main

import (
	"eventease/pkg/models"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type eventForm struct {
	Name        string `form:"name" binding:"required,max=100"`
	Description string `form:"description"`
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
}

func getEvents(c *gin.Context) {
	var events []models.Event
	if err := db.Order("name").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

func getEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var event models.Event
	if err := db.First(&event, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func createEvent(c *gin.Context) {
	var form eventForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	startDate, err := parseFormDate(form.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate format, expected YYYY-MM-DD"})
		return
	}
	endDate, err := parseFormDate(form.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate format, expected YYYY-MM-DD"})
		return
	}

	event := models.Event{
		Name:        form.Name,
		Description: form.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	imageKey, ok := uploadFormImage(c)
	if !ok {
		return
	}
	event.ImageKey = imageKey

	if err := db.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func updateEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var existing models.Event
	if err := db.First(&existing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var form eventForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	startDate, err := parseFormDate(form.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate format, expected YYYY-MM-DD"})
		return
	}
	endDate, err := parseFormDate(form.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate format, expected YYYY-MM-DD"})
		return
	}

	imageKey := existing.ImageKey
	newKey, ok := uploadFormImage(c)
	if !ok {
		return
	}
	if newKey != "" {
		if imageKey != "" {
			// Superseded image. A failed delete is not distinguished
			// from success.
			blobs.Delete(c.Request.Context(), imageKey)
		}
		imageKey = newKey
	}

	event := models.Event{
		ID:          existing.ID,
		Name:        form.Name,
		Description: form.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		ImageKey:    imageKey,
		CreatedAt:   existing.CreatedAt,
	}

	if err := db.Save(&event).Error; err != nil {
		var check models.Event
		if db.First(&check, id).Error != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func deleteEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	hasBookings, err := eventHasBookings(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if hasBookings {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete this event because it has existing bookings."})
		return
	}

	var event models.Event
	if err := db.First(&event, id).Error; err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if event.ImageKey != "" {
		if err := blobs.Delete(c.Request.Context(), event.ImageKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
			return
		}
	}

	if err := db.Delete(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
		return
	}
	c.Status(http.StatusNoContent)
}

func eventHasBookings(eventID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Booking{}).Where("event_id = ?", eventID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func parseFormDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
