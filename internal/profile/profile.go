package profile

import (
	"net/mail"
	"strings"
	"time"
)

type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FullName  string    `json:"fullName"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	AvatarURL *string   `json:"avatarUrl"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update carries the fields a PUT or PATCH may change. Nil means unchanged.
type Update struct {
	FullName *string `json:"fullName,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Company  *string `json:"company,omitempty"`
}

func (u Update) validate() map[string]string {
	errs := map[string]string{}
	if u.Email != nil && *u.Email != "" {
		if _, err := mail.ParseAddress(*u.Email); err != nil {
			errs["email"] = "must be a valid email address"
		}
	}
	if u.FullName != nil && len(*u.FullName) > 200 {
		errs["fullName"] = "must be at most 200 characters"
	}
	return errs
}

func (u Update) apply(p *Profile) {
	if u.FullName != nil {
		p.FullName = strings.TrimSpace(*u.FullName)
	}
	if u.Nickname != nil {
		p.Nickname = strings.TrimSpace(*u.Nickname)
	}
	if u.Email != nil {
		p.Email = strings.TrimSpace(*u.Email)
	}
	if u.Phone != nil {
		p.Phone = strings.TrimSpace(*u.Phone)
	}
	if u.Company != nil {
		p.Company = strings.TrimSpace(*u.Company)
	}
}

// ApprovedEmail is an address allowed to sign up.
type ApprovedEmail struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	ApprovedBy string    `json:"approvedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
