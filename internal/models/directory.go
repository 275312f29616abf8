package models

import "time"

// UserProfile is the employee-side directory entry for a user identity.
type UserProfile struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      *string   `json:"name,omitempty" db:"name"`
	Location  *string   `json:"location,omitempty" db:"location"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Team groups employees for assignment purposes.
type Team struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TeamMember links a user profile to a team.
type TeamMember struct {
	TeamID string `json:"team_id" db:"team_id"`
	UserID string `json:"user_id" db:"user_id"`
}

// CustomerOrg is a customer organization.
type CustomerOrg struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CustomerUser is the customer-side directory entry, optionally bound to
// an organization.
type CustomerUser struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Name      *string   `json:"name,omitempty" db:"name"`
	OrgID     *string   `json:"org_id,omitempty" db:"org_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
