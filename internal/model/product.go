package model

// Product represents a product entry on the public site.
//
// NOTE ON Features:
// Features is a single comma-joined string ("Fast,Reliable,Affordable"), not a
// normalized list. The frontend splits on "," for display and joins again on save.
// We preserve that convention exactly — changing it to a real list would break both
// existing rows and the deployed frontend.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Image       string  `json:"image"` // image URL
	VideoURL    *string `json:"video_url,omitempty"`
	Features    string  `json:"features"`
}

// ProductPatch carries the fields of a partial update (PUT /products/{id}).
// See ServicePatch for why every field is a pointer.
type ProductPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	VideoURL    *string `json:"video_url"`
	Features    *string `json:"features"`
}
