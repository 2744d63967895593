package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"roomly/config"
	"roomly/database"
	"roomly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a handful of rooms and demo accounts for local development.
func main() {
	config.LoadConfig()
	database.InitDB()
	client := database.MongoClient
	db := client.Database("roomly")
	roomColl := db.Collection("rooms")
	userColl := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Clear existing rooms and users.
	if _, err := roomColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear rooms collection: %v", err)
	}
	if _, err := userColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear users collection: %v", err)
	}

	rooms := []models.Room{
		{ID: "room-1", Name: "Boardroom", Capacity: 12, Location: "2nd floor"},
		{ID: "room-2", Name: "Huddle A", Capacity: 4, Location: "2nd floor"},
		{ID: "room-3", Name: "Huddle B", Capacity: 4, Location: "3rd floor"},
		{ID: "room-4", Name: "Auditorium", Capacity: 60, Location: "ground floor"},
	}
	for _, room := range rooms {
		room.CreatedAt = time.Now()
		if _, err := roomColl.InsertOne(ctx, room); err != nil {
			log.Fatalf("Failed to insert room %s: %v", room.Name, err)
		}
	}

	demoUsers := []struct {
		username string
		email    string
	}{
		{"alice", "alice@example.com"},
		{"bob", "bob@example.com"},
		{"carol", "carol@example.com"},
	}
	for _, du := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		usr := models.User{
			ID:           uuid.New().String(),
			Username:     du.username,
			Email:        du.email,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if _, err := userColl.InsertOne(ctx, usr); err != nil {
			log.Fatalf("Failed to insert user %s: %v", du.username, err)
		}
	}

	fmt.Printf("Seeded %d rooms and %d users.\n", len(rooms), len(demoUsers))
}
