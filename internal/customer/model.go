// Package customer manages shopper accounts and their Philippine delivery
// addresses.
package customer

import (
	"fmt"
	"time"
)

type Customer struct {
	ID string `json:"id"`
	// Code is the human-facing account number, e.g. "CUST000042".
	Code         string    `json:"customer_code"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Mobile       string    `json:"mobile,omitempty"`
	Region       string    `json:"region,omitempty"`
	Province     string    `json:"province,omitempty"`
	CityMun      string    `json:"city_municipality,omitempty"`
	Barangay     string    `json:"barangay,omitempty"`
	Street       string    `json:"street,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FormatCode renders a sequence number as a customer code.
func FormatCode(seq int64) string {
	return fmt.Sprintf("CUST%06d", seq)
}
