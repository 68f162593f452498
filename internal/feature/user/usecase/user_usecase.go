package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo_backend/internal/feature/user/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create persists a new user. If another user already holds the same slug,
	// it returns ErrSlugTaken.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by id, returning ErrUserNotFound on a miss.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindBySlug retrieves a user by their normalized name, returning
	// ErrUserNotFound on a miss.
	FindBySlug(ctx context.Context, slug string) (*entity.User, error)

	// UpdateFields applies the given column updates to a user inside one
	// transaction and returns the updated record.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) (*entity.User, error)

	// Delete removes a user and all todos they own.
	Delete(ctx context.Context, id uint) error

	// ListNames returns the display names of every registered user.
	ListNames(ctx context.Context) ([]string, error)
}

// UserUsecase は登録・プロフィール操作のビジネスロジックを実装します。
type UserUsecase struct {
	users UserRepository
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// FindOrCreate resolves a display name to its user record, creating the record
// on first registration. The returned bool is true only when a new user was
// created. When the user already exists the submitted status is ignored; the
// stored record wins.
func (u *UserUsecase) FindOrCreate(ctx context.Context, name string, status *string) (*entity.User, bool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, false, ErrNameRequired
	}
	slug := Slugify(name)

	user, err := u.users.FindBySlug(ctx, slug)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	user = &entity.User{Name: name, Status: status, Slug: slug}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			// 同時登録でもう片方が勝った場合はその行が正になる
			winner, ferr := u.users.FindBySlug(ctx, slug)
			if ferr != nil {
				return nil, false, fmt.Errorf("failed to resolve concurrent registration: %w", ferr)
			}
			return winner, false, nil
		}
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return user, true, nil
}

// Profile returns the user record for the given id.
func (u *UserUsecase) Profile(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// UpdateProfile applies a partial update: only non-nil fields overwrite stored
// values. Changing the name recomputes the slug.
func (u *UserUsecase) UpdateProfile(ctx context.Context, id uint, name, status *string) (*entity.User, error) {
	if name == nil && status == nil {
		return nil, ErrNoFields
	}

	fields := map[string]any{}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, ErrNameRequired
		}
		fields["name"] = *name
		fields["slug"] = Slugify(*name)
	}
	if status != nil {
		fields["status"] = *status
	}

	return u.users.UpdateFields(ctx, id, fields)
}

// Delete removes the user's account together with every todo they own.
func (u *UserUsecase) Delete(ctx context.Context, id uint) error {
	return u.users.Delete(ctx, id)
}

// ListNames returns all registered display names.
func (u *UserUsecase) ListNames(ctx context.Context) ([]string, error) {
	return u.users.ListNames(ctx)
}
