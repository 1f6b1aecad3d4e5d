package handlers

import (
	"errors"
	"log"
	"net/http"

	"wanderlist/clients"

	"github.com/gin-gonic/gin"
)

// GetWikiSections proxies the summarized Wikipedia sections for a country.
func GetWikiSections(c *gin.Context) {
	sections, err := wikiClient.CountrySections(c.Request.Context(), c.Param("country"))
	if errors.Is(err, clients.ErrPageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Wiki page not found"})
		return
	}
	if err != nil {
		log.Printf("[GetWikiSections] Wiki fetch error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, sections)
}

// GetWikiImages proxies Wikivoyage travel photos for a country. A fetch
// failure returns an empty list rather than an error.
func GetWikiImages(c *gin.Context) {
	images, err := wikiClient.Images(c.Request.Context(), c.Param("country"))
	if err != nil {
		log.Printf("[GetWikiImages] Wiki image fetch error: %v", err)
		images = []clients.WikiImage{}
	}
	c.JSON(http.StatusOK, images)
}
