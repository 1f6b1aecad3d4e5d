package handlers

import (
	"context"
	"math"
	"net/http"
	"time"

	"wanderlist/database"
	"wanderlist/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RateCountryRequest struct {
	CountryName string `json:"countryName" binding:"required"`
	Rating      int    `json:"rating"`
}

// GetCountryRatingStats aggregates the average and count for one country.
func GetCountryRatingStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "countryName", Value: c.Param("countryName")}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$countryName"},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := database.Ratings.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	defer cursor.Close(ctx)

	var stats []struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if err := cursor.All(ctx, &stats); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if len(stats) == 0 {
		c.JSON(http.StatusOK, gin.H{"average": 0, "count": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"average": math.Round(stats[0].Average*10) / 10,
		"count":   stats[0].Count,
	})
}

// GetUserRating returns the caller's rating for a country, 0 when unrated.
func GetUserRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var rating models.Rating
	err := database.Ratings.FindOne(ctx, bson.M{
		"userId":      userID,
		"countryName": c.Param("countryName"),
	}).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusOK, gin.H{"rating": 0})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": rating.Rating})
}

// RateCountry upserts the caller's rating for a country. The unique
// (userId, countryName) index guarantees at most one document per pair.
func RateCountry(c *gin.Context) {
	var req RateCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please provide a valid rating (1-5)"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var rating models.Rating
	err := database.Ratings.FindOneAndUpdate(ctx,
		bson.M{"userId": userID, "countryName": req.CountryName},
		bson.M{
			"$set":         bson.M{"rating": req.Rating},
			"$setOnInsert": bson.M{"createdAt": time.Now().Unix()},
		},
		opts,
	).Decode(&rating)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, rating)
}
