package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"wanderlist/countries"
	"wanderlist/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type countryWithRatings struct {
	countries.Country
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// reviewStatsByCountry groups review ratings per country. Aggregation
// failures degrade to zeroed stats instead of failing the request.
func reviewStatsByCountry(ctx context.Context) map[string]countryWithRatings {
	stats := make(map[string]countryWithRatings)

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$countryName"},
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "reviewCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := database.Reviews.Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("[GetCountries] Review aggregation failed, using empty stats: %v", err)
		return stats
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name          string  `bson:"_id"`
		AverageRating float64 `bson:"averageRating"`
		ReviewCount   int     `bson:"reviewCount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		log.Printf("[GetCountries] Review stats decode failed: %v", err)
		return stats
	}

	for _, row := range rows {
		stats[row.Name] = countryWithRatings{
			AverageRating: row.AverageRating,
			ReviewCount:   row.ReviewCount,
		}
	}
	return stats
}

// GetCountries returns the static dataset merged with aggregated review
// stats per country.
func GetCountries(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats := reviewStatsByCountry(ctx)

	all := countryData.All()
	merged := make([]countryWithRatings, 0, len(all))
	for _, country := range all {
		entry := countryWithRatings{Country: country}
		if s, ok := stats[country.Name.Common]; ok {
			entry.AverageRating = s.AverageRating
			entry.ReviewCount = s.ReviewCount
		}
		merged = append(merged, entry)
	}

	c.JSON(http.StatusOK, merged)
}

func GetRandomCountry(c *gin.Context) {
	country, ok := countryData.Random()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"msg": "No countries available"})
		return
	}
	c.JSON(http.StatusOK, country)
}

// GetCountryByName returns a one-element array to match the restcountries
// API shape the clients expect.
func GetCountryByName(c *gin.Context) {
	country, ok := countryData.Find(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Country not found"})
		return
	}
	c.JSON(http.StatusOK, []countries.Country{country})
}
