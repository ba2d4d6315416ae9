package model

// ContactMessage is a contact-form submission. It is never persisted — the
// contact relay validates it and forwards it by email.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"` // optional
	Subject string `json:"subject"`
	Message string `json:"message"`
}
