package domain

import "sgip/internal/authz"

// User is a staff account. Secret holds a bcrypt hash, never plaintext;
// read paths strip it before the record leaves the service.
type User struct {
	ID               string     `json:"id"`
	Username         string     `json:"username"`
	Secret           string     `json:"password,omitempty"`
	Email            string     `json:"email"`
	Role             authz.Role `json:"role"`
	FullName         string     `json:"fullName"`
	ParishName       string     `json:"parishName"`
	IsActive         bool       `json:"isActive"`
	Token            string     `json:"token,omitempty"`
	MustChangeSecret bool       `json:"mustChangeSecret,omitempty"`
}

// Redacted returns a copy safe to hand out of the service.
func (u User) Redacted() User {
	u.Secret = ""
	return u
}
