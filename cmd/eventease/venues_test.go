package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventease/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type failingBlobStore struct{}

func (failingBlobStore) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	return "", errors.New("upload failed")
}

func (failingBlobStore) Delete(ctx context.Context, key string) error {
	return errors.New("delete failed")
}

func (failingBlobStore) SignedURL(key string, ttl time.Duration) (string, error) {
	return "", errors.New("sign failed")
}

func TestCreateVenue(t *testing.T) {
	setupTest()

	body, contentType := multipartBody(t, map[string]string{
		"name":     "Grand Hall",
		"location": "12 Harbour Road",
		"capacity": "200",
	}, "", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/venues", body)
	c.Request.Header.Set("Content-Type", contentType)

	createVenue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response models.Venue
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Greater(t, response.ID, uint(0))
	assert.Equal(t, "Grand Hall", response.Name)
	assert.Equal(t, 200, response.Capacity)
	assert.True(t, response.IsAvailable)

	// Round trip through the detail handler.
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/venues/1", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "1"}}

	getVenue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var fetched models.Venue
	json.Unmarshal(w.Body.Bytes(), &fetched)
	assert.Equal(t, response.ID, fetched.ID)
	assert.Equal(t, "Grand Hall", fetched.Name)
	assert.Equal(t, 200, fetched.Capacity)
}

func TestCreateVenueWithImage(t *testing.T) {
	mem := setupTest()

	body, contentType := multipartBody(t, map[string]string{
		"name":     "Grand Hall",
		"location": "12 Harbour Road",
		"capacity": "200",
	}, "hall.jpg", []byte("fake image bytes"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/venues", body)
	c.Request.Header.Set("Content-Type", contentType)

	createVenue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response models.Venue
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotEmpty(t, response.ImageKey)
	assert.True(t, mem.Exists(response.ImageKey))

	var stored models.Venue
	assert.NoError(t, db.First(&stored, response.ID).Error)
	assert.Equal(t, response.ImageKey, stored.ImageKey)
}

func TestCreateVenueValidation(t *testing.T) {
	setupTest()

	body, contentType := multipartBody(t, map[string]string{
		"location": "12 Harbour Road",
		"capacity": "200",
	}, "", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/venues", body)
	c.Request.Header.Set("Content-Type", contentType)

	createVenue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Venue{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateVenueZeroCapacity(t *testing.T) {
	setupTest()

	body, contentType := multipartBody(t, map[string]string{
		"name":     "Grand Hall",
		"location": "12 Harbour Road",
		"capacity": "0",
	}, "", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/venues", body)
	c.Request.Header.Set("Content-Type", contentType)

	createVenue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateVenueUploadFailureDoesNotPersist(t *testing.T) {
	setupTest()
	blobs = failingBlobStore{}

	body, contentType := multipartBody(t, map[string]string{
		"name":     "Grand Hall",
		"location": "12 Harbour Road",
		"capacity": "200",
	}, "hall.jpg", []byte("fake image bytes"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/venues", body)
	c.Request.Header.Set("Content-Type", contentType)

	createVenue(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var count int64
	db.Model(&models.Venue{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUpdateVenueReplacesImage(t *testing.T) {
	mem := setupTest()

	oldKey, err := mem.Upload(context.Background(), []byte("old image"), "old.jpg")
	assert.NoError(t, err)
	venue := models.Venue{Name: "Grand Hall", Location: "12 Harbour Road", Capacity: 200, ImageKey: oldKey, IsAvailable: true}
	db.Create(&venue)

	body, contentType := multipartBody(t, map[string]string{
		"name":     "Grand Hall",
		"location": "12 Harbour Road",
		"capacity": "250",
	}, "new.jpg", []byte("new image"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PUT", "/api/v1/venues/1", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "1"}}

	updateVenue(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Venue
	db.First(&stored, venue.ID)
	assert.Equal(t, 250, stored.Capacity)
	assert.NotEqual(t, oldKey, stored.ImageKey)
	assert.False(t, mem.Exists(oldKey))
	assert.True(t, mem.Exists(stored.ImageKey))
}

func TestUpdateVenueKeepsImageWithoutNewFile(t *testing.T) {
	mem := setupTest()

	oldKey, err := mem.Upload(context.Background(), []byte("old image"), "old.jpg")
	assert.NoError(t, err)
	venue := models.Venue{Name: "Grand Hall", Location: "12 Harbour Road", Capacity: 200, ImageKey: oldKey, IsAvailable: true}
	db.Create(&venue)

	body, contentType := multipartBody(t, map[string]string{
		"name":        "Grand Hall",
		"location":    "14 Harbour Road",
		"capacity":    "200",
		"isAvailable": "false",
	}, "", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PUT", "/api/v1/venues/1", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "1"}}

	updateVenue(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Venue
	db.First(&stored, venue.ID)
	assert.Equal(t, "14 Harbour Road", stored.Location)
	assert.Equal(t, oldKey, stored.ImageKey)
	assert.False(t, stored.IsAvailable)
	assert.True(t, mem.Exists(oldKey))
}

func TestUpdateVenueNotFound(t *testing.T) {
	setupTest()

	body, contentType := multipartBody(t, map[string]string{
		"name":     "Grand Hall",
		"location": "12 Harbour Road",
		"capacity": "200",
	}, "", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PUT", "/api/v1/venues/99", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "99"}}

	updateVenue(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteVenueWithBookingsRefused(t *testing.T) {
	setupTest()

	venue := models.Venue{Name: "Grand Hall", Location: "12 Harbour Road", Capacity: 200, IsAvailable: true}
	db.Create(&venue)
	event := models.Event{Name: "Tech Conference"}
	db.Create(&event)
	booking := models.Booking{
		CustomerName: "Alice Smith",
		BookingDate:  time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
		IsBooked:     true,
		VenueID:      venue.ID,
		EventID:      event.ID,
	}
	db.Create(&booking)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/v1/venues/1", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "1"}}

	deleteVenue(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response["error"], "existing bookings")

	var count int64
	db.Model(&models.Venue{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteVenueRemovesImage(t *testing.T) {
	mem := setupTest()

	key, err := mem.Upload(context.Background(), []byte("image"), "hall.jpg")
	assert.NoError(t, err)
	venue := models.Venue{Name: "Grand Hall", Location: "12 Harbour Road", Capacity: 200, ImageKey: key, IsAvailable: true}
	db.Create(&venue)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/v1/venues/1", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "1"}}

	deleteVenue(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, mem.Exists(key))

	var count int64
	db.Model(&models.Venue{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteVenueMissingIsSilent(t *testing.T) {
	setupTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/v1/venues/99", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "99"}}

	deleteVenue(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetVenueNotFound(t *testing.T) {
	setupTest()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/venues/99", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "99"}}

	getVenue(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
