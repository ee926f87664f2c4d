// File: internal/api/user_response.go
package api

import "time"

// swagger:model api.UserResponse
type UserResponse struct {
	ID        string    `json:"id" example:"662a1b9f8e4b2d0001a3c4f1"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-05-01T15:04:05Z"`
}

// swagger:model api.ListUsersResponse
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}
