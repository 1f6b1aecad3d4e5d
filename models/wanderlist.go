package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Wanderlist holds a user's saved countries. One document per user;
// duplicate country names are rejected at write time.
type Wanderlist struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"userId" json:"userId"`
	Countries []WanderlistCountry `bson:"countries" json:"countries"`
}

type WanderlistCountry struct {
	Name    string `bson:"name" json:"name"`
	Flag    string `bson:"flag" json:"flag"`
	Region  string `bson:"region" json:"region"`
	AddedAt int64  `bson:"addedAt" json:"addedAt"`
}
