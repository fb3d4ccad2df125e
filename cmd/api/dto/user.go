package dto

// UserProfileDTO is the /api/v1/users/profile response schema.
type UserProfileDTO struct {
	UID         string `json:"uid" example:"user_1234"`
	DisplayName string `json:"display_name" example:"Jamie Rivera"`
	Email       string `json:"email" example:"user@example.com"`
	PhotoURL    string `json:"photo_url" example:"https://example.com/avatar.png"`
	Role        string `json:"role" example:"user"`
	CreatedAt   string `json:"created_at" example:"2026-01-01T12:00:00Z"`
	LastLoginAt string `json:"last_login_at" example:"2026-01-01T12:00:00Z"`
}
