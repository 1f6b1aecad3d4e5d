package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"wanderlist/storage"

	"github.com/gin-gonic/gin"
)

var servableContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"video/mp4":  true,
	"video/webm": true,
}

// GetMedia streams a stored blob back by filename with its stored content
// type. Range requests are not supported.
func GetMedia(c *gin.Context) {
	filename := c.Param("filename")

	file, err := mediaStore.Stat(filename)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "No file found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if !servableContentTypes[file.Metadata.ContentType] {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Not an image or video"})
		return
	}

	stream, err := mediaStore.Open(filename)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "No file found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	defer stream.Close()

	c.Header("Content-Type", file.Metadata.ContentType)
	c.Header("Content-Length", strconv.FormatInt(file.Length, 10))
	c.Header("Content-Disposition", "inline")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, stream); err != nil {
		log.Printf("[GetMedia] Stream interrupted for %s: %v", filename, err)
	}
}
