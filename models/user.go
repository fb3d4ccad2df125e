package models

import "time"

// User is a signed-in account, keyed by the identity provider's stable
// subject id.
// Collection: users
type User struct {
	UID         string    `bson:"_id" json:"uid"`
	DisplayName string    `bson:"display_name" json:"displayName"`
	Email       string    `bson:"email" json:"email"`
	PhotoURL    string    `bson:"photo_url" json:"photoURL"`
	Role        string    `bson:"role" json:"role"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	LastLoginAt time.Time `bson:"last_login_at" json:"lastLoginAt"`
}
