// Package adapters はtodoフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todo_backend/internal/feature/todo/domain/entity"
	"todo_backend/internal/feature/todo/usecase"
)

// todoGorm はTodoRepositoryインターフェースのGORM実装です。
// すべてのクエリをowner_idでスコープするため、他ユーザーのTodoは存在しないのと区別がつきません。
type todoGorm struct {
	db *gorm.DB
}

// todoGormがTodoRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.TodoRepository = (*todoGorm)(nil)

// NewTodoRepository は指定されたgorm.DB接続でtodoGormの新しいインスタンスを生成します。
func NewTodoRepository(db *gorm.DB) *todoGorm {
	return &todoGorm{db: db}
}

// Create はTodoをデータベースに追加します。
// Owner関連の自動保存はしない（OwnerIDは必ず検証済みトークン由来のため）。
func (r *todoGorm) Create(ctx context.Context, t *entity.Todo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

// ListByOwner は指定ユーザーが所有するすべてのTodoをID順に返します。
func (r *todoGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Todo, error) {
	var todos []entity.Todo
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// FindByOwnerAndID はオーナーでスコープして1件のTodoを取得します。
func (r *todoGorm) FindByOwnerAndID(ctx context.Context, ownerID, id uint) (*entity.Todo, error) {
	var t entity.Todo
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

// UpdateFields は1トランザクション内で参照と更新を行い、更新後のレコードを返します。
func (r *todoGorm) UpdateFields(ctx context.Context, ownerID, id uint, fields map[string]any) (*entity.Todo, error) {
	var t entity.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ? AND id = ?", ownerID, id).First(&t).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrTodoNotFound
			}
			return err
		}
		return tx.Model(&t).Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteByOwnerAndID はオーナーでスコープして1件のTodoを削除します。
// 該当行がない場合（他ユーザーのTodoを含む）はusecase.ErrTodoNotFoundを返します。
func (r *todoGorm) DeleteByOwnerAndID(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&entity.Todo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTodoNotFound
	}
	return nil
}
