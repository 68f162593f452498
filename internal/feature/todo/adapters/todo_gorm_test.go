package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
	userentity "todo_backend/internal/feature/user/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database with two users for testing.
func setupTestDB(t *testing.T) (*gorm.DB, *userentity.User, *userentity.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&userentity.User{}, &entity.Todo{})
	require.NoError(t, err, "failed to migrate tables")

	alice := &userentity.User{Name: "Alice", Slug: "alice"}
	bob := &userentity.User{Name: "Bob", Slug: "bob"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	return db, alice, bob
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestTodoGorm_Create(t *testing.T) {
	db, alice, _ := setupTestDB(t)
	repo := NewTodoRepository(db)

	todo := &entity.Todo{
		Activity: "buy milk",
		Date:     mustDate(t, "2024-03-05"),
		OwnerID:  alice.ID,
	}

	err := repo.Create(context.Background(), todo)

	require.NoError(t, err)
	assert.NotZero(t, todo.ID, "ID is not set")
	assert.False(t, todo.Important, "important defaults to false")
	assert.False(t, todo.Completed, "completed defaults to false")
}

func TestTodoGorm_DateRoundTrip(t *testing.T) {
	db, alice, _ := setupTestDB(t)
	repo := NewTodoRepository(db)

	todo := &entity.Todo{Activity: "buy milk", Date: mustDate(t, "2024-03-05"), OwnerID: alice.ID}
	require.NoError(t, repo.Create(context.Background(), todo))

	found, err := repo.FindByOwnerAndID(context.Background(), alice.ID, todo.ID)

	require.NoError(t, err)
	// 2024年3月5日として取り出せること
	assert.Equal(t, 2024, found.Date.Year())
	assert.Equal(t, time.March, found.Date.Month())
	assert.Equal(t, 5, found.Date.Day())
	assert.Equal(t, "2024-03-05", usecase.FormatDate(found.Date))
}

func TestTodoGorm_OwnerScoping(t *testing.T) {
	db, alice, bob := setupTestDB(t)
	repo := NewTodoRepository(db)

	todo := &entity.Todo{Activity: "secret plan", Date: mustDate(t, "2024-01-01"), OwnerID: alice.ID}
	require.NoError(t, repo.Create(context.Background(), todo))

	// 他ユーザーからは参照・更新・削除とも存在しないのと同じ
	_, err := repo.FindByOwnerAndID(context.Background(), bob.ID, todo.ID)
	assert.ErrorIs(t, err, usecase.ErrTodoNotFound)

	_, err = repo.UpdateFields(context.Background(), bob.ID, todo.ID, map[string]any{"completed": true})
	assert.ErrorIs(t, err, usecase.ErrTodoNotFound)

	err = repo.DeleteByOwnerAndID(context.Background(), bob.ID, todo.ID)
	assert.ErrorIs(t, err, usecase.ErrTodoNotFound)

	// 所有者からは見える
	found, err := repo.FindByOwnerAndID(context.Background(), alice.ID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "secret plan", found.Activity)
	assert.False(t, found.Completed, "cross-owner update must not have applied")
}

func TestTodoGorm_ListByOwner(t *testing.T) {
	db, alice, bob := setupTestDB(t)
	repo := NewTodoRepository(db)

	for _, activity := range []string{"one", "two"} {
		require.NoError(t, repo.Create(context.Background(), &entity.Todo{
			Activity: activity, Date: mustDate(t, "2024-01-01"), OwnerID: alice.ID,
		}))
	}
	require.NoError(t, repo.Create(context.Background(), &entity.Todo{
		Activity: "bob's", Date: mustDate(t, "2024-01-01"), OwnerID: bob.ID,
	}))

	todos, err := repo.ListByOwner(context.Background(), alice.ID)

	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "one", todos[0].Activity)
	assert.Equal(t, "two", todos[1].Activity)
}

func TestTodoGorm_UpdateFields(t *testing.T) {
	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		db, alice, _ := setupTestDB(t)
		repo := NewTodoRepository(db)

		todo := &entity.Todo{Activity: "buy milk", Date: mustDate(t, "2024-01-01"), OwnerID: alice.ID}
		require.NoError(t, repo.Create(context.Background(), todo))

		updated, err := repo.UpdateFields(context.Background(), alice.ID, todo.ID, map[string]any{"completed": true})

		require.NoError(t, err)
		assert.Equal(t, "buy milk", updated.Activity)
		assert.True(t, updated.Completed)
		assert.False(t, updated.Important)
	})

	t.Run("unknown id returns ErrTodoNotFound", func(t *testing.T) {
		db, alice, _ := setupTestDB(t)
		repo := NewTodoRepository(db)

		_, err := repo.UpdateFields(context.Background(), alice.ID, 999, map[string]any{"completed": true})

		assert.ErrorIs(t, err, usecase.ErrTodoNotFound)
	})
}

func TestTodoGorm_DeleteByOwnerAndID(t *testing.T) {
	db, alice, _ := setupTestDB(t)
	repo := NewTodoRepository(db)

	todo := &entity.Todo{Activity: "buy milk", Date: mustDate(t, "2024-01-01"), OwnerID: alice.ID}
	require.NoError(t, repo.Create(context.Background(), todo))

	require.NoError(t, repo.DeleteByOwnerAndID(context.Background(), alice.ID, todo.ID))

	_, err := repo.FindByOwnerAndID(context.Background(), alice.ID, todo.ID)
	assert.ErrorIs(t, err, usecase.ErrTodoNotFound)

	// 既に消えているものを消そうとしてもNotFound
	err = repo.DeleteByOwnerAndID(context.Background(), alice.ID, todo.ID)
	assert.ErrorIs(t, err, usecase.ErrTodoNotFound)
}
