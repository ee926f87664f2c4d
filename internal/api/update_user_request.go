// File: internal/api/update_user_request.go
package api

// UpdateUserRequest 所有欄位皆為選填，nil 代表未提供
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name     *string `json:"name" example:"Alice"`
	Email    *string `json:"email" example:"alice@example.com"`
	Password *string `json:"password" example:"Secret123!"`
}
