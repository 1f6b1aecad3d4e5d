package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"regexp"
	"time"

	"wanderlist/database"
	"wanderlist/middleware"
	"wanderlist/models"
	"wanderlist/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var hasLetterRe = regexp.MustCompile(`[a-zA-Z]`)
var hasNumberRe = regexp.MustCompile(`\d`)

// ValidatePassword enforces the registration password policy: at least 8
// characters containing both letters and numbers.
func ValidatePassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}
	if !hasLetterRe.MatchString(password) || !hasNumberRe.MatchString(password) {
		return "Password must contain both letters and numbers"
	}
	return ""
}

// generateVerificationToken returns a 20-byte hex token.
func generateVerificationToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func issueToken(userID primitive.ObjectID, username string) (string, error) {
	claims := &middleware.Claims{
		UserID:   userID.Hex(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// sendVerificationAsync fires the verification email without blocking the
// request. The outcome is logged only; registration already reported success.
func sendVerificationAsync(email, token string) {
	go func() {
		if err := mail.SendVerification(email, token); err != nil {
			log.Printf("Background email failed for %s: %v", email, err)
			return
		}
		log.Printf("Background email sent to %s", email)
	}()
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please enter all fields"})
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please enter all fields"})
		return
	}
	if !emailRe.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid email format"})
		return
	}
	if msg := ValidatePassword(req.Password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": msg})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.Users.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "User already exists"})
		return
	}

	count, err = database.Users.CountDocuments(ctx, bson.M{"username": req.Username})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Username taken"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	verificationToken, err := generateVerificationToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	user := models.User{
		ID:                primitive.NewObjectID(),
		Username:          req.Username,
		Email:             req.Email,
		Password:          string(hashedPassword),
		VisitedCountries:  []string{},
		IsVerified:        false,
		VerificationToken: verificationToken,
		CreatedAt:         time.Now().Unix(),
	}

	if _, err := database.Users.InsertOne(ctx, user); err != nil {
		// The unique indexes backstop the duplicate checks above.
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	log.Printf("User created: %s", user.ID.Hex())

	// Create empty wanderlist for user
	wanderlist := models.Wanderlist{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Countries: []models.WanderlistCountry{},
	}
	if _, err := database.Wanderlists.InsertOne(ctx, wanderlist); err != nil {
		log.Printf("Failed to create wanderlist for %s: %v", user.ID.Hex(), err)
	}

	sendVerificationAsync(req.Email, verificationToken)

	c.JSON(http.StatusOK, gin.H{"msg": "Registration successful! Please check your email to verify your account."})
}

func VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.Users.UpdateOne(ctx,
		bson.M{"verificationToken": token},
		bson.M{
			"$set":   bson.M{"isVerified": true},
			"$unset": bson.M{"verificationToken": ""},
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Email verified successfully"})
}

func ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please enter all fields"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Account already verified"})
		return
	}

	// Token can be missing when verification was interrupted; mint a new one.
	if user.VerificationToken == "" {
		token, err := generateVerificationToken()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
		_, err = database.Users.UpdateOne(ctx, bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"verificationToken": token}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
		user.VerificationToken = token
	}

	sendVerificationAsync(req.Email, user.VerificationToken)

	c.JSON(http.StatusOK, gin.H{"msg": "Verification email resent! Check your inbox."})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please enter all fields"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Please verify your email before logging in."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid Credentials"})
		return
	}

	tokenString, err := issueToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user": gin.H{
			"id":       user.ID.Hex(),
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func GetMe(c *gin.Context) {
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

	c.JSON(http.StatusOK, user)
}

// UpdateDetails updates profile fields and optionally replaces the profile
// picture with an uploaded image streamed into the media store.
func UpdateDetails(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Request.ParseMultipartForm(storage.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Failed to parse form data"})
		return
	}

	update := bson.M{}
	if fullName := c.PostForm("fullName"); fullName != "" {
		update["fullName"] = fullName
	}
	if bio := c.PostForm("bio"); bio != "" {
		update["bio"] = bio
	}

	if fh, err := c.FormFile("profilePicture"); err == nil {
		path, err := mediaStore.Save(fh)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrFileTooLarge) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"msg": err.Error()})
			return
		}
		update["profilePicture"] = path
	}

	if len(update) > 0 {
		result, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
	}

	var user models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
