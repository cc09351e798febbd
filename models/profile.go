package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile mirrors a Supabase auth user. The id is the auth user id, so it is
// never generated here.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:150;index" json:"email"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
