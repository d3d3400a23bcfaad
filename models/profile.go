package models

import "time"

// Profile roles. Role changes are an operator concern; the API never mutates them
// except for the admin-email bootstrap at first registration.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Profile represents an account. The ID equals the identity id carried in tokens.
// Passwords are stored as bcrypt hashes only; social accounts have no password.
type Profile struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	Email          string    `gorm:"size:255;index" json:"email"`
	PasswordHash   string    `gorm:"size:255" json:"-"`
	Provider       string    `gorm:"size:32" json:"provider,omitempty"`
	ProviderID     string    `gorm:"size:255;index:idx_provider_identity" json:"-"`
	DisplayName    string    `gorm:"size:64" json:"display_name"`
	Name           string    `gorm:"size:64" json:"name"`
	Role           string    `gorm:"size:16;default:'user'" json:"role"`
	AvatarURL      string    `gorm:"size:512" json:"avatar_url"`
	Gender         string    `gorm:"size:16" json:"gender,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Phone          string    `gorm:"size:32" json:"phone,omitempty"`
	Country        string    `gorm:"size:64" json:"country,omitempty"`
	JobDescription string    `gorm:"size:255" json:"job_description,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// ShownName resolves the display precedence: display name, then legal name,
// then the unknown-author fallback.
func (p *Profile) ShownName() string {
	if p == nil {
		return "unknown"
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Name != "" {
		return p.Name
	}
	return "unknown"
}
