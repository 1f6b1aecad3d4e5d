package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username          string             `bson:"username" json:"username"`
	Email             string             `bson:"email" json:"email"`
	Password          string             `bson:"password" json:"-"`
	FullName          string             `bson:"fullName" json:"fullName"`
	Bio               string             `bson:"bio" json:"bio"`
	ProfilePicture    string             `bson:"profilePicture" json:"profilePicture"`
	FlagGameHighScore int                `bson:"flagGameHighScore" json:"flagGameHighScore"`
	VisitedCountries  []string           `bson:"visitedCountries" json:"visitedCountries"`
	IsVerified        bool               `bson:"isVerified" json:"isVerified"`
	VerificationToken string             `bson:"verificationToken,omitempty" json:"-"`
	CreatedAt         int64              `bson:"createdAt" json:"createdAt"`
}

// UserSummary is the author shape embedded in review responses.
type UserSummary struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Username       string             `bson:"username" json:"username"`
	FullName       string             `bson:"fullName" json:"fullName"`
	ProfilePicture string             `bson:"profilePicture" json:"profilePicture"`
}
