package handlers

import (
	"context"
	"net/http"
	"time"

	"wanderlist/database"
	"wanderlist/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SubmitGameScore records a flag-game result. $max makes the update a no-op
// unless the new score beats the stored high score.
func SubmitGameScore(c *gin.Context) {
	var req struct {
		Score int `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Score is required"})
		return
	}

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

	if req.Score > user.FlagGameHighScore {
		_, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
			bson.M{"$max": bson.M{"flagGameHighScore": req.Score}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "New High Score!", "highScore": req.Score})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Score saved", "highScore": user.FlagGameHighScore})
}
