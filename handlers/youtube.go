package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"wanderlist/clients"
	"wanderlist/database"
	"wanderlist/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetCountryVideo serves a country's travel video from the 30-day cache,
// falling back to a YouTube search on a miss.
func GetCountryVideo(c *gin.Context) {
	countryName := c.Param("countryName")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cached models.CountryVideo
	err := database.CountryVideos.FindOne(ctx, bson.M{"countryName": countryName}).Decode(&cached)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"videoId":    cached.VideoID,
			"videoTitle": cached.VideoTitle,
			"cached":     true,
		})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	videoID, videoTitle, err := youtubeClient.SearchTravelVideo(ctx, countryName)
	if errors.Is(err, clients.ErrNoAPIKey) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "YouTube API key not configured", "fallback": true})
		return
	}
	if errors.Is(err, clients.ErrNoVideos) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No videos found", "fallback": true})
		return
	}
	if err != nil {
		log.Printf("[GetCountryVideo] YouTube API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch video", "fallback": true})
		return
	}

	video := models.CountryVideo{
		ID:          primitive.NewObjectID(),
		CountryName: countryName,
		VideoID:     videoID,
		VideoTitle:  videoTitle,
		CachedAt:    time.Now(),
	}
	if _, err := database.CountryVideos.InsertOne(ctx, video); err != nil {
		// A concurrent request may have cached the same country first.
		log.Printf("[GetCountryVideo] Failed to cache video for %s: %v", countryName, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"videoId":    videoID,
		"videoTitle": videoTitle,
		"cached":     false,
	})
}
