package handlers

import (
	"context"
	"net/http"
	"time"

	"wanderlist/database"
	"wanderlist/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AddCountryRequest struct {
	Name   string `json:"name" binding:"required"`
	Flag   string `json:"flag"`
	Region string `json:"region"`
}

func GetWanderlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wanderlist models.Wanderlist
	err := database.Wanderlists.FindOne(ctx, bson.M{"userId": userID}).Decode(&wanderlist)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusOK, []models.WanderlistCountry{})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, wanderlist.Countries)
}

// AddToWanderlist prepends a country to the list. The push is guarded by a
// filter on countries.name so a concurrent duplicate add cannot slip through.
func AddToWanderlist(c *gin.Context) {
	var req AddCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Country name is required"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entry := models.WanderlistCountry{
		Name:    req.Name,
		Flag:    req.Flag,
		Region:  req.Region,
		AddedAt: time.Now().Unix(),
	}

	result, err := database.Wanderlists.UpdateOne(ctx,
		bson.M{"userId": userID, "countries.name": bson.M{"$ne": req.Name}},
		bson.M{"$push": bson.M{"countries": bson.M{
			"$each":     []models.WanderlistCountry{entry},
			"$position": 0,
		}}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if result.MatchedCount == 0 {
		// Either the country is already present, or the list is missing
		// (legacy accounts created before registration seeded one).
		count, err := database.Wanderlists.CountDocuments(ctx, bson.M{"userId": userID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Country already in wanderlist"})
			return
		}

		wanderlist := models.Wanderlist{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Countries: []models.WanderlistCountry{entry},
		}
		if _, err := database.Wanderlists.InsertOne(ctx, wanderlist); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
	}

	respondWithCountries(c, ctx, userID)
}

func RemoveFromWanderlist(c *gin.Context) {
	name := c.Param("name")

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.Wanderlists.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"countries": bson.M{"name": name}}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Wanderlist not found"})
		return
	}

	respondWithCountries(c, ctx, userID)
}

func respondWithCountries(c *gin.Context, ctx context.Context, userID primitive.ObjectID) {
	var wanderlist models.Wanderlist
	if err := database.Wanderlists.FindOne(ctx, bson.M{"userId": userID}).Decode(&wanderlist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, wanderlist.Countries)
}
