package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"veritas-ai/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// UpsertProfile records a sign-in: profile fields refresh on every login,
// created_at only on first sight.
func (r *UserRepository) UpsertProfile(ctx context.Context, u *models.User) error {
	now := time.Now()

	filter := bson.M{"_id": u.UID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": now,
			"role":       "user",
		},
		"$set": bson.M{
			"display_name":  u.DisplayName,
			"email":         u.Email,
			"photo_url":     u.PhotoURL,
			"last_login_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByUID returns the stored profile.
func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
