package main

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// getImage redirects to a one-hour signed URL for the stored image.
func getImage(c *gin.Context) {
	blobName := c.Param("blobName")

	url, err := blobs.SignedURL(blobName, time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign image URL"})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// uploadFormImage uploads the optional "image" form file and returns its new
// blob key. An empty key means no file was attached. When ok is false the
// error response has already been written.
func uploadFormImage(c *gin.Context) (key string, ok bool) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", true
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return "", false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return "", false
	}
	if len(data) == 0 {
		return "", true
	}

	key, err = blobs.Upload(c.Request.Context(), data, file.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return "", false
	}
	return key, true
}
