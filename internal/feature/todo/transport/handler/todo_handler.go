// Package handler はtodoフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/transport/http/dto"
	"todo_backend/internal/feature/todo/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/shared/httpapi"
)

// TodoUsecase はTodo操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type TodoUsecase interface {
	Create(ctx context.Context, ownerID uint, activity, date string, important, completed bool) (*entity.Todo, error)
	List(ctx context.Context, ownerID uint) ([]entity.Todo, error)
	Get(ctx context.Context, ownerID, id uint) (*entity.Todo, error)
	Update(ctx context.Context, ownerID, id uint, activity, date *string, important, completed *bool) (*entity.Todo, error)
	Delete(ctx context.Context, ownerID, id uint) error
}

// TodoHandler はTodo操作のHTTPリクエストを処理します。
// すべての操作は認可ミドルウェアが格納した呼び出し元IDでスコープされます。
type TodoHandler struct {
	todos TodoUsecase
}

// NewTodoHandler はTodoHandlerの新しいインスタンスを生成します。
func NewTodoHandler(todos TodoUsecase) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// List は呼び出し元が所有するTodo一覧を返すAPIです。
func (h *TodoHandler) List(c *gin.Context) {
	claims, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpapi.Error("Token is invalid."))
		return
	}

	todos, err := h.todos.List(c.Request.Context(), claims.UserID)
	if err != nil {
		slog.Error("failed to list todos", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusInternalServerError, httpapi.Error("Something went wrong."))
		return
	}

	out := make([]dto.TodoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, dto.NewTodoResponse(&todos[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Create は新しいTodoを作成するAPIです。
// - activityとdate（YYYY-MM-DD）はフォームフィールドとして必須
// - importantとcompletedは任意。送信された場合、文字列"false"のみが偽と
//   みなされ、それ以外の値はすべて真として扱われます
func (h *TodoHandler) Create(c *gin.Context) {
	claims, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpapi.Error("Token is invalid."))
		return
	}

	activity, hasActivity := c.GetPostForm("activity")
	date, hasDate := c.GetPostForm("date")
	if !hasActivity && !hasDate {
		c.JSON(http.StatusBadRequest, httpapi.Error("Activity and Date is required"))
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), claims.UserID, activity, date,
		formTruthy(c, "important"), formTruthy(c, "completed"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrActivityRequired):
			c.JSON(http.StatusBadRequest, httpapi.Error("Activity is required"))
		case errors.Is(err, usecase.ErrDateRequired):
			c.JSON(http.StatusBadRequest, httpapi.Error("Date is required"))
		case errors.Is(err, usecase.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, httpapi.Error("Date is invalid."))
		default:
			slog.Error("failed to create todo", "error", err, "user_id", claims.UserID)
			c.JSON(http.StatusInternalServerError, httpapi.Error("Something went wrong."))
		}
		return
	}
	c.JSON(http.StatusCreated, dto.NewTodoResponse(todo))
}

// Get は呼び出し元が所有する1件のTodoを返すAPIです。
// 他ユーザーのTodoは存在しない場合と同じ404になります。
func (h *TodoHandler) Get(c *gin.Context) {
	claims, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpapi.Error("Token is invalid."))
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.todos.Get(c.Request.Context(), claims.UserID, id)
	if err != nil {
		h.renderLookupError(c, err, claims.UserID)
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoResponse(todo))
}

// Update はTodoの部分更新を処理します。送信されたフィールドのみ上書きします。
// importantとcompletedは大文字小文字を区別せず"true"のときのみ真になります。
func (h *TodoHandler) Update(c *gin.Context) {
	claims, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpapi.Error("Token is invalid."))
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	var activity, date *string
	if v, ok := c.GetPostForm("activity"); ok {
		activity = &v
	}
	if v, ok := c.GetPostForm("date"); ok {
		date = &v
	}
	var important, completed *bool
	if v, ok := c.GetPostForm("important"); ok {
		b := strings.EqualFold(v, "true")
		important = &b
	}
	if v, ok := c.GetPostForm("completed"); ok {
		b := strings.EqualFold(v, "true")
		completed = &b
	}

	todo, err := h.todos.Update(c.Request.Context(), claims.UserID, id, activity, date, important, completed)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, httpapi.Error("Date is invalid."))
			return
		}
		h.renderLookupError(c, err, claims.UserID)
		return
	}
	c.JSON(http.StatusOK, dto.NewTodoResponse(todo))
}

// Delete は呼び出し元が所有する1件のTodoを削除するAPIです。
func (h *TodoHandler) Delete(c *gin.Context) {
	claims, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpapi.Error("Token is invalid."))
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.todos.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		h.renderLookupError(c, err, claims.UserID)
		return
	}
	c.Status(http.StatusNoContent)
}

// todoID はパスパラメータからTodo IDを取り出します。
// 数値でない場合は存在しないリソースとして404を返します。
func todoID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, httpapi.Error(httpapi.MsgNotFound))
		return 0, false
	}
	return uint(id), true
}

// formTruthy は作成時のフラグ解釈を実装します。
// フィールド未送信は偽、送信済みなら文字列"false"のみが偽です。
func formTruthy(c *gin.Context, key string) bool {
	v, ok := c.GetPostForm(key)
	return ok && v != "false"
}

// renderLookupError は参照系エラーを404/500に振り分けます。
func (h *TodoHandler) renderLookupError(c *gin.Context, err error, userID uint) {
	if errors.Is(err, usecase.ErrTodoNotFound) {
		c.JSON(http.StatusNotFound, httpapi.Error(httpapi.MsgNotFound))
		return
	}
	slog.Error("todo operation failed", "error", err, "user_id", userID)
	c.JSON(http.StatusInternalServerError, httpapi.Error("Something went wrong."))
}
