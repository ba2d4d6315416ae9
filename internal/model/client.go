package model

// Client represents a client logo displayed in the "trusted by" strip.
type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"` // logo image URL
}

// ClientPatch carries the fields of a partial update (PUT /clients/{id}).
// See ServicePatch for why every field is a pointer.
type ClientPatch struct {
	Name *string `json:"name"`
	Logo *string `json:"logo"`
}
