package usecase

import (
	"context"
	"time"

	"todo_backend/internal/feature/todo/domain/entity"
)

// dateLayout is the wire format for todo dates.
const dateLayout = "2006-01-02"

// TodoRepository はTodoエンティティの永続化層を抽象化します。
// すべての参照・更新系メソッドはオーナーIDでスコープされます。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type TodoRepository interface {
	// Create persists a new todo. The store assigns the id.
	Create(ctx context.Context, todo *entity.Todo) error

	// ListByOwner returns every todo owned by the given user.
	ListByOwner(ctx context.Context, ownerID uint) ([]entity.Todo, error)

	// FindByOwnerAndID returns one todo scoped to its owner, or ErrTodoNotFound.
	FindByOwnerAndID(ctx context.Context, ownerID, id uint) (*entity.Todo, error)

	// UpdateFields applies the given column updates inside one transaction,
	// scoped to the owner, and returns the updated record.
	UpdateFields(ctx context.Context, ownerID, id uint, fields map[string]any) (*entity.Todo, error)

	// DeleteByOwnerAndID removes one todo scoped to its owner.
	DeleteByOwnerAndID(ctx context.Context, ownerID, id uint) error
}

// TodoUsecase はTodo CRUDのビジネスロジックを実装します。
type TodoUsecase struct {
	todos TodoRepository
}

// NewTodoUsecase はTodoUsecaseの新しいインスタンスを生成します。
func NewTodoUsecase(todos TodoRepository) *TodoUsecase {
	return &TodoUsecase{todos: todos}
}

// ParseDate parses a YYYY-MM-DD string into its calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// FormatDate renders a stored date back into its YYYY-MM-DD wire form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Create validates and persists a new todo for the given owner.
func (u *TodoUsecase) Create(ctx context.Context, ownerID uint, activity, date string, important, completed bool) (*entity.Todo, error) {
	if activity == "" {
		return nil, ErrActivityRequired
	}
	if date == "" {
		return nil, ErrDateRequired
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	todo := &entity.Todo{
		Activity:  activity,
		Date:      d,
		Important: important,
		Completed: completed,
		OwnerID:   ownerID,
	}
	if err := u.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// List returns every todo owned by the caller.
func (u *TodoUsecase) List(ctx context.Context, ownerID uint) ([]entity.Todo, error) {
	return u.todos.ListByOwner(ctx, ownerID)
}

// Get returns one of the caller's todos.
func (u *TodoUsecase) Get(ctx context.Context, ownerID, id uint) (*entity.Todo, error) {
	return u.todos.FindByOwnerAndID(ctx, ownerID, id)
}

// Update applies a partial update: only non-nil fields overwrite stored values.
func (u *TodoUsecase) Update(ctx context.Context, ownerID, id uint, activity, date *string, important, completed *bool) (*entity.Todo, error) {
	fields := map[string]any{}
	if activity != nil {
		fields["activity"] = *activity
	}
	if date != nil {
		d, err := ParseDate(*date)
		if err != nil {
			return nil, err
		}
		fields["date"] = d
	}
	if important != nil {
		fields["important"] = *important
	}
	if completed != nil {
		fields["completed"] = *completed
	}
	if len(fields) == 0 {
		// 変更なしでも現状のレコードを返す
		return u.todos.FindByOwnerAndID(ctx, ownerID, id)
	}

	return u.todos.UpdateFields(ctx, ownerID, id, fields)
}

// Delete removes one of the caller's todos.
func (u *TodoUsecase) Delete(ctx context.Context, ownerID, id uint) error {
	return u.todos.DeleteByOwnerAndID(ctx, ownerID, id)
}
