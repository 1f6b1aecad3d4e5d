package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CountryVideo caches one YouTube lookup per country. A TTL index on
// cachedAt evicts rows after 30 days.
type CountryVideo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CountryName string             `bson:"countryName" json:"countryName"`
	VideoID     string             `bson:"videoId" json:"videoId"`
	VideoTitle  string             `bson:"videoTitle" json:"videoTitle"`
	CachedAt    time.Time          `bson:"cachedAt" json:"cachedAt"`
}
