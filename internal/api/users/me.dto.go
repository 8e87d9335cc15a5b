package users

import "time"

type MeResponse struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	// Capabilities drive which admin screens are shown.
	Capabilities []string `json:"capabilities"`
	// Local is false for accounts of the hosted sign-in provider.
	Local     bool       `json:"local"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
