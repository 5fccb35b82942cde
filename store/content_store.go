package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"showcase/api/models"
)

// ContentStore persists one translatable CMS entity type together with its
// translation rows.
type ContentStore[T any] struct {
	db       *gorm.DB
	preloads []string
	omit     []string
}

// NewContentStore preloads Translations plus any extra associations on reads.
func NewContentStore[T any](db *gorm.DB, preloads ...string) *ContentStore[T] {
	return &ContentStore[T]{db: db, preloads: append([]string{"Translations"}, preloads...)}
}

// OmitOnSave keeps the named associations out of Create and Save, for
// relations that are only ever read through this store.
func (s *ContentStore[T]) OmitOnSave(associations ...string) *ContentStore[T] {
	s.omit = append(s.omit, associations...)
	return s
}

func (s *ContentStore[T]) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, p := range s.preloads {
		q = q.Preload(p)
	}
	return q
}

func (s *ContentStore[T]) writer(ctx context.Context, session *gorm.Session) *gorm.DB {
	q := s.db.WithContext(ctx)
	if session != nil {
		q = q.Session(session)
	}
	if len(s.omit) > 0 {
		q = q.Omit(s.omit...)
	}
	return q
}

// List returns one page ordered by id and the total row count.
func (s *ContentStore[T]) List(ctx context.Context, opts models.ListOptions) ([]T, int, error) {
	opts = opts.Normalize()

	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count %T: %w", *new(T), err)
	}

	var items []T
	err := s.query(ctx).Order("id ASC").Offset(opts.Skip).Limit(opts.Take).Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %T: %w", *new(T), err)
	}
	return items, int(total), nil
}

// Get returns nil, nil when no row has the id.
func (s *ContentStore[T]) Get(ctx context.Context, id uint) (*T, error) {
	return s.first(ctx, map[string]interface{}{"id": id})
}

// FindBy returns the first row matching all conditions, or nil, nil.
func (s *ContentStore[T]) FindBy(ctx context.Context, conds map[string]interface{}) (*T, error) {
	return s.first(ctx, conds)
}

func (s *ContentStore[T]) first(ctx context.Context, conds map[string]interface{}) (*T, error) {
	var entity T
	err := s.query(ctx).Where(conds).Order("id ASC").First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %T: %w", entity, err)
	}
	return &entity, nil
}

// Ordered returns every row matching conds in display order.
func (s *ContentStore[T]) Ordered(ctx context.Context, conds map[string]interface{}) ([]T, error) {
	var items []T
	q := s.query(ctx)
	if len(conds) > 0 {
		q = q.Where(conds)
	}
	if err := q.Order("position ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T: %w", *new(T), err)
	}
	return items, nil
}

// Create inserts the entity and its translations.
func (s *ContentStore[T]) Create(ctx context.Context, entity *T) error {
	if err := s.writer(ctx, nil).Create(entity).Error; err != nil {
		return wrapWriteError(err, "create", entity)
	}
	return nil
}

// Save updates the entity and upserts its translations by primary key.
func (s *ContentStore[T]) Save(ctx context.Context, entity *T) error {
	err := s.writer(ctx, &gorm.Session{FullSaveAssociations: true}).Save(entity).Error
	if err != nil {
		return wrapWriteError(err, "save", entity)
	}
	return nil
}

// Delete removes the entity and its translations. A missing id yields ErrNotFound.
func (s *ContentStore[T]) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entity T
		if err := tx.First(&entity, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%T %d: %w", entity, id, ErrNotFound)
			}
			return fmt.Errorf("failed to load %T %d: %w", entity, id, err)
		}
		if err := tx.Select("Translations").Delete(&entity).Error; err != nil {
			return fmt.Errorf("failed to delete %T %d: %w", entity, id, err)
		}
		return nil
	})
}

func wrapWriteError(err error, op string, entity interface{}) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("failed to %s %T: %w", op, entity, ErrConflict)
	}
	return fmt.Errorf("failed to %s %T: %w", op, entity, err)
}
