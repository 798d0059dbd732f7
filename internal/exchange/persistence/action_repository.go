package persistence

import (
	"context"
	"essensys-server/internal/exchange/domain"
	"essensys-server/internal/exchange/persistence/internal"
	"essensys-server/internal/exchange/usecases"
	"essensys-server/internal/infra/sql"
	"fmt"
)

func NewORMActionQueue(orm sql.ORM) (*ORMActionQueue, error) {
	err := orm.AutoMigrate(&internal.Action{})
	if err != nil {
		return nil, fmt.Errorf("auto migrating action: %w", err)
	}

	return &ORMActionQueue{orm: orm}, nil
}

var _ usecases.ActionQueue = (*ORMActionQueue)(nil)

// ORMActionQueue keeps the action queue in a database so pending actions survive a
// restart. FIFO order follows the insertion sequence.
type ORMActionQueue struct {
	orm sql.ORM
}

func (q *ORMActionQueue) Enqueue(ctx context.Context, action domain.Action) error {
	entity := internal.FromDomainAction(action)
	err := q.orm.WithContext(ctx).Create(&entity).Error()
	if err != nil {
		return fmt.Errorf("database insert: %w", err)
	}

	return nil
}

func (q *ORMActionQueue) List(ctx context.Context) ([]domain.Action, error) {
	var entities internal.ActionSet
	err := q.orm.
		WithContext(ctx).
		Order("sequence ASC").
		Find(&entities).
		Error()

	if err != nil {
		return nil, fmt.Errorf("database query: %w", err)
	}

	return entities.ToDomain(), nil
}

func (q *ORMActionQueue) Remove(ctx context.Context, guid string) error {
	result := q.orm.
		WithContext(ctx).
		Where("guid = ?", guid).
		Delete(&internal.Action{})

	if err := result.Error(); err != nil {
		return fmt.Errorf("database delete: %w", err)
	}
	if result.RowsAffected() == 0 {
		return usecases.ErrActionNotFound
	}

	return nil
}
