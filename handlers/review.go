package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"wanderlist/database"
	"wanderlist/models"
	"wanderlist/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxReviewMedia = 5

// attachAuthors fills in the User summary on each review from a single
// users query, the way the favorites join works in one pass.
func attachAuthors(ctx context.Context, reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.UserID)
	}

	cursor, err := database.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var authors []models.UserSummary
	if err := cursor.All(ctx, &authors); err != nil {
		return err
	}

	authorMap := make(map[primitive.ObjectID]models.UserSummary, len(authors))
	for _, a := range authors {
		authorMap[a.ID] = a
	}

	for i := range reviews {
		if a, ok := authorMap[reviews[i].UserID]; ok {
			author := a
			reviews[i].User = &author
		}
	}
	return nil
}

func findReviews(ctx context.Context, filter bson.M, limit int64) ([]models.Review, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := database.Reviews.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	if err := attachAuthors(ctx, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetRecentReviews returns the three newest reviews across all countries.
func GetRecentReviews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reviews, err := findReviews(ctx, bson.M{}, 3)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func GetMyReviews(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reviews, err := findReviews(ctx, bson.M{"userId": userID}, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// GetCountryReviews lists reviews for one country. The :id wildcard carries
// the country name on this route.
func GetCountryReviews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reviews, err := findReviews(ctx, bson.M{"countryName": c.Param("id")}, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// saveReviewMedia streams up to maxReviewMedia multipart files into the
// media store and returns their path references.
func saveReviewMedia(c *gin.Context) ([]string, bool) {
	media := []string{}

	form := c.Request.MultipartForm
	if form == nil {
		return media, true
	}

	files := form.File["media"]
	if len(files) > maxReviewMedia {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Too many files"})
		return nil, false
	}

	for _, fh := range files {
		path, err := mediaStore.Save(fh)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrFileTooLarge) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"msg": err.Error()})
			return nil, false
		}
		media = append(media, path)
	}
	return media, true
}

func CreateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(storage.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Failed to parse form data"})
		return
	}

	countryName := c.PostForm("countryName")
	if countryName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Country name is required"})
		return
	}
	rating, _ := strconv.Atoi(c.PostForm("rating"))

	media, ok := saveReviewMedia(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	review := models.Review{
		ID:          primitive.NewObjectID(),
		CountryName: countryName,
		UserID:      userID,
		Username:    c.GetString("username"),
		Rating:      rating,
		Comment:     c.PostForm("comment"),
		Media:       media,
		Likes:       0,
		LikedBy:     []primitive.ObjectID{},
		CreatedAt:   time.Now().Unix(),
	}

	if _, err := database.Reviews.InsertOne(ctx, review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	// Posting a review marks the country as visited.
	_, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"visitedCountries": countryName}})
	if err != nil {
		log.Printf("[CreateReview] Failed to mark %s visited: %v", countryName, err)
	}

	reviews := []models.Review{review}
	if err := attachAuthors(ctx, reviews); err != nil {
		log.Printf("[CreateReview] Failed to attach author: %v", err)
	}

	c.JSON(http.StatusOK, reviews[0])
}

func UpdateReview(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(storage.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Failed to parse form data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var review models.Review
	err = database.Reviews.FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	// Ensure user owns review
	if review.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
		return
	}

	update := bson.M{}
	if rating, err := strconv.Atoi(c.PostForm("rating")); err == nil && rating > 0 {
		update["rating"] = rating
	}
	if comment := c.PostForm("comment"); comment != "" {
		update["comment"] = comment
	}

	media, ok := saveReviewMedia(c)
	if !ok {
		return
	}

	updateDoc := bson.M{}
	if len(update) > 0 {
		updateDoc["$set"] = update
	}
	if len(media) > 0 {
		updateDoc["$push"] = bson.M{"media": bson.M{"$each": media}}
	}

	if len(updateDoc) > 0 {
		if _, err := database.Reviews.UpdateOne(ctx, bson.M{"_id": reviewID}, updateDoc); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
	}

	if err := database.Reviews.FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	reviews := []models.Review{review}
	if err := attachAuthors(ctx, reviews); err != nil {
		log.Printf("[UpdateReview] Failed to attach author: %v", err)
	}

	c.JSON(http.StatusOK, reviews[0])
}

func DeleteReview(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var review models.Review
	err = database.Reviews.FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if review.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
		return
	}

	if _, err := database.Reviews.DeleteOne(ctx, bson.M{"_id": reviewID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Review removed"})
}

// ToggleLike likes the review when the caller has not liked it yet and
// unlikes it otherwise. Both branches are single guarded updates, so two
// concurrent toggles cannot double-count, and the counter is floored at 0.
func ToggleLike(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.Reviews.UpdateOne(ctx,
		bson.M{"_id": reviewID, "likedBy": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likedBy": userID}, "$inc": bson.M{"likes": 1}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if result.MatchedCount == 0 {
		// Already liked, or the review does not exist.
		result, err = database.Reviews.UpdateOne(ctx,
			bson.M{"_id": reviewID, "likedBy": userID},
			bson.M{"$pull": bson.M{"likedBy": userID}, "$inc": bson.M{"likes": -1}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
			return
		}
	}

	// Floor the counter in case legacy documents drifted negative.
	_, err = database.Reviews.UpdateOne(ctx,
		bson.M{"_id": reviewID, "likes": bson.M{"$lt": 0}},
		bson.M{"$set": bson.M{"likes": 0}},
	)
	if err != nil {
		log.Printf("[ToggleLike] Failed to clamp likes: %v", err)
	}

	var review models.Review
	if err := database.Reviews.FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	reviews := []models.Review{review}
	if err := attachAuthors(ctx, reviews); err != nil {
		log.Printf("[ToggleLike] Failed to attach author: %v", err)
	}

	c.JSON(http.StatusOK, reviews[0])
}

// GetReviewLikes returns summaries of the users who liked a review.
func GetReviewLikes(c *gin.Context) {
	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var review models.Review
	err = database.Reviews.FindOne(ctx, bson.M{"_id": reviewID}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if len(review.LikedBy) == 0 {
		c.JSON(http.StatusOK, []models.UserSummary{})
		return
	}

	cursor, err := database.Users.Find(ctx, bson.M{"_id": bson.M{"$in": review.LikedBy}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	defer cursor.Close(ctx)

	likers := []models.UserSummary{}
	if err := cursor.All(ctx, &likers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, likers)
}
