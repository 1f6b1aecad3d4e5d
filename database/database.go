package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database
var Users *mongo.Collection
var Wanderlists *mongo.Collection
var Reviews *mongo.Collection
var Ratings *mongo.Collection
var CountryVideos *mongo.Collection

func ConnectMongo() error {
	// Read MongoDB URI from environment variable
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Println("MONGO_URI not set, using default localhost")
		uri = "mongodb://127.0.0.1:27017"
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "wanderlist"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	// Ping MongoDB
	if err := Client.Ping(ctx, nil); err != nil {
		return err
	}

	DB = Client.Database(dbName)
	Users = DB.Collection("users")
	Wanderlists = DB.Collection("wanderlists")
	Reviews = DB.Collection("reviews")
	Ratings = DB.Collection("ratings")
	CountryVideos = DB.Collection("country_videos")

	log.Println("Connected to MongoDB successfully")
	return nil
}

// EnsureIndexes creates the indexes the write paths rely on: unique
// username/email, one rating per (user, country), one wanderlist per user,
// and the 30-day TTL on cached videos.
func EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := Users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = Wanderlists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = Ratings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "countryName", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = Reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "countryName", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = CountryVideos.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "countryName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "cachedAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(2592000), // 30 days
		},
	})
	return err
}

func DisconnectMongo() error {
	if Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		return err
	}

	log.Println("Disconnected from MongoDB")
	return nil
}
