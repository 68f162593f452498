// Package dto はtodoフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
)

// TodoResponse is the fixed projection of a todo exposed by the API.
// The owner id and timestamps are never exposed.
type TodoResponse struct {
	ID        uint   `json:"id"`
	Activity  string `json:"activity"`
	Date      string `json:"date"`
	Important bool   `json:"important"`
	Completed bool   `json:"completed"`
}

// NewTodoResponse はエンティティを公開プロジェクションに変換します。
// 日付はYYYY-MM-DD形式の文字列で返します。
func NewTodoResponse(t *entity.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Activity:  t.Activity,
		Date:      usecase.FormatDate(t.Date),
		Important: t.Important,
		Completed: t.Completed,
	}
}
