// Package user holds the user aggregate.
package user

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Address is a postal address, stored as a JSON document.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	Line3    string `json:"line3,omitempty"`
	Town     string `json:"town"`
	County   string `json:"county,omitempty"`
	Postcode string `json:"postcode"`
}

// User represents a registered user. Password holds the bcrypt hash,
// never the plain text.
type User struct {
	ID          uuid.UUID
	Email       string
	Password    string
	Name        string
	Address     Address
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// New validates the fields and returns a new User. hashedPassword must
// already be a bcrypt hash.
func New(email, hashedPassword, name string, address Address, phoneNumber string) (*User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.New("invalid email address")
	}
	if hashedPassword == "" {
		return nil, errors.New("password is required")
	}
	if name == "" {
		return nil, errors.New("name is required")
	}
	return &User{
		ID:          uuid.New(),
		Email:       email,
		Password:    hashedPassword,
		Name:        name,
		Address:     address,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now(),
	}, nil
}
