package models

import (
	"strings"
	"time"
)

// User is the session user as reported by the auth check endpoint.
type User struct {
	Prenom            string `json:"prenom,omitempty"`
	Nom               string `json:"nom,omitempty"`
	Email             string `json:"email"`
	IsProfileComplete bool   `json:"isProfileComplete,omitempty"`
	DateNaissance     string `json:"date_naissance,omitempty"`
}

// AuthStatus is the body of GET /auth/check.
type AuthStatus struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// DisplayName derives the name to greet the user with: first+last name when
// both are present, else whichever exists, else the local part of the email.
func (u User) DisplayName() string {
	switch {
	case u.Prenom != "" && u.Nom != "":
		return u.Prenom + " " + u.Nom
	case u.Prenom != "":
		return u.Prenom
	case u.Nom != "":
		return u.Nom
	default:
		name, _, _ := strings.Cut(u.Email, "@")
		return name
	}
}

// Age computes the user's age in full years at the given moment. Returns
// false when the birth date is absent or unparseable.
func (u User) Age(now time.Time) (int, bool) {
	if u.DateNaissance == "" {
		return 0, false
	}
	birth, err := time.Parse("2006-01-02", u.DateNaissance)
	if err != nil {
		return 0, false
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}
