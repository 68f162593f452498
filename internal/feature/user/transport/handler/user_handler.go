// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/feature/user/domain/entity"
	"todo_backend/internal/feature/user/transport/http/dto"
	"todo_backend/internal/feature/user/usecase"
	jwtmw "todo_backend/internal/platform/jwt"
	"todo_backend/internal/shared/httpapi"
)

// tokenMessage is the advisory text returned alongside every issued token.
const tokenMessage = "This token you can use to access other url, token will expire in 3 hours."

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	// FindOrCreate resolves a name to its user, creating the record on first
	// registration. The bool is true only when a new user was created.
	FindOrCreate(ctx context.Context, name string, status *string) (*entity.User, bool, error)
	// Profile returns the user record for the given id.
	Profile(ctx context.Context, id uint) (*entity.User, error)
	// UpdateProfile applies a partial update; nil fields stay untouched.
	UpdateProfile(ctx context.Context, id uint, name, status *string) (*entity.User, error)
	// Delete removes the account and every todo it owns.
	Delete(ctx context.Context, id uint) error
	// ListNames returns all registered display names.
	ListNames(ctx context.Context) ([]string, error)
}

// TokenIssuer は署名付きトークンの発行インターフェースです。
type TokenIssuer interface {
	GenerateToken(userID uint, username string) (string, error)
}

// UserHandler はユーザー操作のHTTPリクエストを処理します。
type UserHandler struct {
	users  UserUsecase
	tokens TokenIssuer
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase, tokens TokenIssuer) *UserHandler {
	return &UserHandler{users: users, tokens: tokens}
}

// Names は全ユーザーの表示名一覧を返すAPIです。認証は不要です。
func (h *UserHandler) Names(c *gin.Context) {
	names, err := h.users.ListNames(c.Request.Context())
	if err != nil {
		slog.Error("failed to list names", "error", err)
		c.JSON(http.StatusInternalServerError, httpapi.Error("Something went wrong."))
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, dto.NamesResponse{Names: names})
}

// Register は登録・再ログイン兼用のAPIエンドポイントを処理します。
// - nameは必須（フォームフィールド）、statusは任意
// - 既存ユーザーなら200、新規作成なら201でトークンを発行
func (h *UserHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	var status *string
	if v, ok := c.GetPostForm("status"); ok {
		status = &v
	}

	user, created, err := h.users.FindOrCreate(c.Request.Context(), name, status)
	if err != nil {
		if errors.Is(err, usecase.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, httpapi.Error("Name is required."))
			return
		}
		slog.Error("registration failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, httpapi.Error("Something went wrong."))
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Name)
	if err != nil {
		slog.Error("failed to issue token", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, httpapi.Error("Something went wrong."))
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	slog.Info("user authenticated", "user_id", user.ID, "created", created, "remote_addr", c.ClientIP())
	c.JSON(code, dto.TokenResponse{Token: dto.TokenPayload{Token: token, Message: tokenMessage}})
}

// Me は呼び出し元自身のプロフィールを返すAPIです。
func (h *UserHandler) Me(c *gin.Context) {
	claims, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpapi.Error("Token is invalid."))
		return
	}

	user, err := h.users.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.renderLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Update は呼び出し元プロフィールの部分更新を処理します。
// 送信されたフィールドのみ上書きし、nameを変えるとslugも再計算されます。
func (h *UserHandler) Update(c *gin.Context) {
	claims, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpapi.Error("Token is invalid."))
		return
	}

	var name, status *string
	if v, ok := c.GetPostForm("name"); ok {
		name = &v
	}
	if v, ok := c.GetPostForm("status"); ok {
		status = &v
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), claims.UserID, name, status)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoFields):
			c.JSON(http.StatusBadRequest, httpapi.Error("Your data is invalid."))
		case errors.Is(err, usecase.ErrNameRequired):
			c.JSON(http.StatusBadRequest, httpapi.Error("Name is required."))
		case errors.Is(err, usecase.ErrSlugTaken):
			c.JSON(http.StatusBadRequest, httpapi.Error("Name is already taken."))
		default:
			h.renderLookupError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// DeleteMe は呼び出し元アカウントを削除するAPIです。所有するTodoも同時に削除されます。
func (h *UserHandler) DeleteMe(c *gin.Context) {
	claims, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpapi.Error("Token is invalid."))
		return
	}

	if err := h.users.Delete(c.Request.Context(), claims.UserID); err != nil {
		h.renderLookupError(c, err)
		return
	}
	slog.Info("user deleted", "user_id", claims.UserID)
	c.Status(http.StatusNoContent)
}

// RefreshToken は有効なトークンを持つ呼び出し元に新しいトークンを再発行します。
func (h *UserHandler) RefreshToken(c *gin.Context) {
	claims, ok := jwtmw.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, httpapi.Error("Token is invalid."))
		return
	}

	// 名前変更後のトークンが古い名前を運び続けないよう、現在のレコードから発行する
	user, err := h.users.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(user.ID, user.Name)
	if err != nil {
		slog.Error("failed to reissue token", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, httpapi.Error("Something went wrong."))
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{Token: dto.TokenPayload{Token: token, Message: tokenMessage}})
}

// renderLookupError は参照系エラーを404/500に振り分けます。
func (h *UserHandler) renderLookupError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, httpapi.Error(httpapi.MsgNotFound))
		return
	}
	slog.Error("user operation failed", "error", err)
	c.JSON(http.StatusInternalServerError, httpapi.Error("Something went wrong."))
}
