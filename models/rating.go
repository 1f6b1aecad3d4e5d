package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Rating is one user's 1-5 score for a country. The (userId, countryName)
// pair is unique, enforced by a compound index.
type Rating struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	CountryName string             `bson:"countryName" json:"countryName"`
	Rating      int                `bson:"rating" json:"rating"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
}
