package main

import (
	"eventease/pkg/models"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type venueForm struct {
	Name        string `form:"name" binding:"required,max=100"`
	Location    string `form:"location" binding:"required,max=200"`
	Capacity    int    `form:"capacity" binding:"required,gt=0"`
	IsAvailable *bool  `form:"isAvailable"`
	EventType   string `form:"eventType"`
}

func getVenues(c *gin.Context) {
	var venues []models.Venue
	if err := db.Order("name").Find(&venues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, venues)
}

func getVenue(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	var venue models.Venue
	if err := db.First(&venue, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}
	c.JSON(http.StatusOK, venue)
}

func createVenue(c *gin.Context) {
	var form venueForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	venue := models.Venue{
		Name:        form.Name,
		Location:    form.Location,
		Capacity:    form.Capacity,
		IsAvailable: true,
		EventType:   form.EventType,
	}
	if form.IsAvailable != nil {
		venue.IsAvailable = *form.IsAvailable
	}

	// The image goes to blob storage first. If that fails nothing is
	// persisted.
	imageKey, ok := uploadFormImage(c)
	if !ok {
		return
	}
	venue.ImageKey = imageKey

	if err := db.Create(&venue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create venue"})
		return
	}
	c.JSON(http.StatusOK, venue)
}

func updateVenue(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	var existing models.Venue
	if err := db.First(&existing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	var form venueForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
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

	venue := models.Venue{
		ID:          existing.ID,
		Name:        form.Name,
		Location:    form.Location,
		Capacity:    form.Capacity,
		ImageKey:    imageKey,
		IsAvailable: existing.IsAvailable,
		EventType:   form.EventType,
		CreatedAt:   existing.CreatedAt,
	}
	if form.IsAvailable != nil {
		venue.IsAvailable = *form.IsAvailable
	}

	if err := db.Save(&venue).Error; err != nil {
		var check models.Venue
		if db.First(&check, id).Error != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update venue"})
		return
	}
	c.JSON(http.StatusOK, venue)
}

func deleteVenue(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	hasBookings, err := venueHasBookings(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if hasBookings {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete this venue because it has existing bookings."})
		return
	}

	var venue models.Venue
	if err := db.First(&venue, id).Error; err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	if venue.ImageKey != "" {
		if err := blobs.Delete(c.Request.Context(), venue.ImageKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
			return
		}
	}

	if err := db.Delete(&venue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete venue"})
		return
	}
	c.Status(http.StatusNoContent)
}

func venueHasBookings(venueID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Booking{}).Where("venue_id = ?", venueID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
