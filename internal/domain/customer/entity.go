package customer

import (
	"regexp"
	"time"
)

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func New(id, name, email, phone string) (*Customer, error) {
	if id == "" || name == "" || email == "" {
		return nil, ErrMissingField
	}
	if !ValidPhone(phone) {
		return nil, ErrInvalidPhone
	}

	return &Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Accepted phone shapes: optional leading + followed by 7-15 digits, or
// DDD-DDD-DDDD. Anything else is rejected; this is an allow-list, not a
// general phone parser.
var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$|^\d{3}-\d{3}-\d{4}$`)

// ValidPhone reports whether phone is absent or matches an accepted shape.
func ValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}
