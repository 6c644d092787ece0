package models

import "time"

// User is the credential and profile record stored per user id.
// The user id doubles as the primary key of the user's ledger document.
type User struct {
	UserID    string    `bson:"_id" json:"userid"`
	Password  string    `bson:"password" json:"-"`
	Email     string    `bson:"email" json:"email"`
	FullName  string    `bson:"full_name" json:"full_name"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
