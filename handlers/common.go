package handlers

import (
	"net/http"

	"wanderlist/clients"
	"wanderlist/countries"
	"wanderlist/mailer"
	"wanderlist/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dependencies shared across all handler files, set once from main.
var mediaStore *storage.MediaStore
var mail *mailer.Mailer
var countryData *countries.Dataset
var wikiClient *clients.WikiClient
var youtubeClient *clients.YouTubeClient

// SetMediaStore injects the GridFS-backed media store.
func SetMediaStore(s *storage.MediaStore) {
	mediaStore = s
}

// SetMailer injects the verification mailer.
func SetMailer(m *mailer.Mailer) {
	mail = m
}

// SetCountryData injects the bundled country dataset.
func SetCountryData(d *countries.Dataset) {
	countryData = d
}

// SetWikiClient injects the Wikipedia/Wikivoyage client.
func SetWikiClient(w *clients.WikiClient) {
	wikiClient = w
}

// SetYouTubeClient injects the YouTube search client.
func SetYouTubeClient(y *clients.YouTubeClient) {
	youtubeClient = y
}

// currentUserID reads the authenticated user's ObjectID out of the gin
// context. Responds 401 and returns false when it is missing or malformed.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}
