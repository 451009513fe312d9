// Package models defines the domain records exchanged with the Nexus API.
// Wire field names are snake_case; the Go structs are the camelCase view.
package models

import (
	"strings"
	"time"
)

// User is a person record owned by the backend. The client holds read-mostly
// copies, replaced wholesale on fetch. Optional fields are pointers so partial
// server payloads round-trip without inventing empty values.
type User struct {
	Id              int64      `json:"id"`
	Username        *string    `json:"username,omitempty"`
	FirstName       *string    `json:"first_name,omitempty"`
	LastName        *string    `json:"last_name,omitempty"`
	Email           *string    `json:"email,omitempty"`
	PhoneNumber     *string    `json:"phone_number,omitempty"`
	Location        *string    `json:"location,omitempty"`
	University      *string    `json:"university,omitempty"`
	Major           *string    `json:"major,omitempty"`
	HighSchool      *string    `json:"high_school,omitempty"`
	JobTitle        *string    `json:"job_title,omitempty"`
	Company         *string    `json:"company,omitempty"`
	FieldOfInterest *string    `json:"field_of_interest,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	Ethnicity       *string    `json:"ethnicity,omitempty"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
	LinkedinURL     *string    `json:"linkedin_url,omitempty"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// FullName joins first and last name, trimmed, tolerating either being absent.
func (u *User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(Str(u.FirstName)) + " " + strings.TrimSpace(Str(u.LastName)))
}

// UserPatch is the editable subset of profile fields for PUT /users/{id}.
// Only non-nil fields are sent.
type UserPatch struct {
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Email           *string `json:"email,omitempty"`
	PhoneNumber     *string `json:"phone_number,omitempty"`
	Location        *string `json:"location,omitempty"`
	University      *string `json:"university,omitempty"`
	Major           *string `json:"major,omitempty"`
	HighSchool      *string `json:"high_school,omitempty"`
	JobTitle        *string `json:"job_title,omitempty"`
	Company         *string `json:"company,omitempty"`
	FieldOfInterest *string `json:"field_of_interest,omitempty"`
	LinkedinURL     *string `json:"linkedin_url,omitempty"`
}

// Str dereferences an optional string, returning "" for nil.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// StrPtr returns a pointer to s, for building patch payloads.
func StrPtr(s string) *string {
	return &s
}
