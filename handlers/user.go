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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// visitedCountries reads the caller's visited list after a mutation.
func visitedCountries(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	var user models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, err
	}
	if user.VisitedCountries == nil {
		return []string{}, nil
	}
	return user.VisitedCountries, nil
}

func AddVisitedCountry(c *gin.Context) {
	var req struct {
		CountryName string `json:"countryName" binding:"required"`
	}
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

	result, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"visitedCountries": req.CountryName}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}

	visited, err := visitedCountries(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, visited)
}

func RemoveVisitedCountry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"visitedCountries": c.Param("countryName")}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}

	visited, err := visitedCountries(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, visited)
}

// GetVisitedDetails resolves the caller's visited country names against the
// bundled dataset.
func GetVisitedDetails(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, countryData.FilterByNames(user.VisitedCountries))
}

// GetPublicProfile returns a user's profile, reviews and wanderlist by
// username. Password hash and verification state never leave the server.
func GetPublicProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"username": c.Param("username")}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Reviews.Find(ctx, bson.M{"userId": user.ID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	wanderlist := []models.WanderlistCountry{}
	var doc models.Wanderlist
	err = database.Wanderlists.FindOne(ctx, bson.M{"userId": user.ID}).Decode(&doc)
	if err == nil {
		wanderlist = doc.Countries
	} else if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"reviews":    reviews,
		"wanderlist": wanderlist,
	})
}
