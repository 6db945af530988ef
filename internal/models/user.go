package models

import "time"

const (
	LoginTypePassword = "password"
	LoginTypeOAuth    = "oauth"
)

type User struct {
	ID                  int64     `json:"id"`
	Email               string    `json:"email"`
	Nickname            string    `json:"nickname"`
	LoginType           string    `json:"login_type"`
	VerifiedSchoolEmail bool      `json:"verified_school_email"`
	SchoolEmail         string    `json:"school_email,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	LastLoggedIn        time.Time `json:"last_logged_in"`
}
