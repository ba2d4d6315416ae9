package model

// User represents an admin account used for logging into the content dashboard.
//
// Users are created only by the seedadmin command — there is no registration
// endpoint, and the API never updates or deletes them. The sole runtime use is
// the username lookup during login.
//
// WHY Password `json:"-"`?
// The field holds the bcrypt hash, and `-` tells encoding/json to NEVER serialize
// it. Even though no handler currently returns a User, the tag makes leaking the
// hash impossible rather than merely unlikely.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash, never serialized
	Role     string `json:"role"`
}
