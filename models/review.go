package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Review struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CountryName string               `bson:"countryName" json:"countryName"`
	UserID      primitive.ObjectID   `bson:"userId" json:"userId"`
	Username    string               `bson:"username" json:"username"`
	Rating      int                  `bson:"rating,omitempty" json:"rating"`
	Comment     string               `bson:"comment,omitempty" json:"comment"`
	Media       []string             `bson:"media" json:"media"`
	Likes       int                  `bson:"likes" json:"likes"`
	LikedBy     []primitive.ObjectID `bson:"likedBy" json:"likedBy"`
	CreatedAt   int64                `bson:"createdAt" json:"createdAt"`
	User        *UserSummary         `bson:"-" json:"user,omitempty"` // populated in responses only
}
