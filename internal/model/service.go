// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// Service represents a service offering shown on the public site.
//
// The `json:"..."` tags mirror the database column names (snake_case) because the
// previous backend returned raw rows to the frontend — keeping the same field names
// means the frontend needs no changes.
//
// WHY VideoURL *string (a pointer)?
// The video_url column is nullable. A plain string can't distinguish "no video"
// from "empty URL", so we use a pointer: nil means NULL in the database, and
// `omitempty` drops the field from JSON when it's absent.
type Service struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"` // icon identifier rendered by the frontend
	VideoURL    *string `json:"video_url,omitempty"`
}

// ServicePatch carries the fields of a partial update (PUT /services/{id}).
//
// EVERY FIELD IS A POINTER:
// JSON has three states for a field — absent, null, and present — but a Go string
// only has one zero value. Pointers let us tell "the client didn't send title"
// (nil → keep the stored value) apart from "the client sent an empty title".
// The repository passes these straight into COALESCE(?, column) so absent fields
// are left untouched by the UPDATE.
type ServicePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	VideoURL    *string `json:"video_url"`
}
