// Package dto はuserフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "todo_backend/internal/feature/user/domain/entity"

// UserResponse is the fixed projection of a user exposed by the API.
// Slug and timestamps are never exposed.
type UserResponse struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Status *string `json:"status"`
}

// NewUserResponse はエンティティを公開プロジェクションに変換します。
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Status: u.Status}
}
