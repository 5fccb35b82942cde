package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"showcase/api/logger"
	"showcase/api/models"
	"showcase/api/store"
)

// ContentService wraps a ContentStore with input validation and the
// not-found conventions of the admin API.
type ContentService[T any] struct {
	store    *store.ContentStore[T]
	validate *validator.Validate
	log      *logger.Logger
	name     string
}

func newContentService[T any](s *store.ContentStore[T], name string, v *validator.Validate, log *logger.Logger) *ContentService[T] {
	return &ContentService[T]{store: s, validate: v, log: log, name: name}
}

func (s *ContentService[T]) List(ctx context.Context, opts models.ListOptions) ([]T, int, error) {
	return s.store.List(ctx, opts)
}

// Get returns nil when no entity has the id.
func (s *ContentService[T]) Get(ctx context.Context, id uint) (*T, error) {
	return s.store.Get(ctx, id)
}

// Enabled lists enabled entities in display order, narrowed by extra.
func (s *ContentService[T]) Enabled(ctx context.Context, extra map[string]interface{}) ([]T, error) {
	conds := map[string]interface{}{"enabled": true}
	for k, v := range extra {
		conds[k] = v
	}
	return s.store.Ordered(ctx, conds)
}

// All lists every entity in display order.
func (s *ContentService[T]) All(ctx context.Context) ([]T, error) {
	return s.store.Ordered(ctx, nil)
}

// Lookup finds an enabled entity by id, or by the unique column key when id
// is nil. Neither given, or no match, yields nil.
func (s *ContentService[T]) Lookup(ctx context.Context, id *uint, key string, value *string) (*T, error) {
	conds := map[string]interface{}{"enabled": true}
	switch {
	case id != nil:
		conds["id"] = *id
	case value != nil:
		conds[key] = *value
	default:
		return nil, nil
	}
	return s.store.FindBy(ctx, conds)
}

func (s *ContentService[T]) create(ctx context.Context, input interface{}, entity *T) (*T, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, entity); err != nil {
		return nil, err
	}
	s.log.Info("content created", "type", s.name)
	return entity, nil
}

func (s *ContentService[T]) update(ctx context.Context, input interface{}, id uint, apply func(*T)) (*T, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}
	entity, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, fmt.Errorf("%s %d: %w", s.name, id, store.ErrNotFound)
	}
	apply(entity)
	if err := s.store.Save(ctx, entity); err != nil {
		return nil, err
	}
	// reload so relations reflect the new foreign keys
	return s.store.Get(ctx, id)
}

// Delete removes the entity with its translations. A missing id is reported
// in the response rather than as an error.
func (s *ContentService[T]) Delete(ctx context.Context, id uint) (*models.DeletionResponse, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			msg := fmt.Sprintf("No %s with id %d", s.name, id)
			return &models.DeletionResponse{Result: models.NotDeleted, Message: &msg}, nil
		}
		return nil, err
	}
	s.log.Info("content deleted", "type", s.name, "id", id)
	return &models.DeletionResponse{Result: models.Deleted}, nil
}

type localized interface {
	Language() string
}

type translationPtr[T any] interface {
	*T
	localized
	SetLanguage(code string)
}

// mergeTranslations updates the translation for each input language in place
// and appends new ones for languages not seen before.
func mergeTranslations[T any, PT translationPtr[T], I localized](existing []T, inputs []I, apply func(PT, I)) []T {
	out := existing
	for _, in := range inputs {
		lang := strings.TrimSpace(in.Language())
		i := slices.IndexFunc(out, func(t T) bool {
			return strings.EqualFold(PT(&t).Language(), lang)
		})
		if i < 0 {
			out = append(out, *new(T))
			i = len(out) - 1
			PT(&out[i]).SetLanguage(lang)
		}
		apply(PT(&out[i]), in)
	}
	return out
}

// PickTranslation returns the translation for lang, else the one for
// fallback, else the first. It returns nil only for an empty slice.
func PickTranslation[T localized](translations []T, lang, fallback string) *T {
	if len(translations) == 0 {
		return nil
	}
	for _, want := range []string{lang, fallback} {
		if want == "" {
			continue
		}
		for i := range translations {
			if strings.EqualFold(translations[i].Language(), want) {
				return &translations[i]
			}
		}
	}
	return &translations[0]
}

func setIf[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

func valueOr[V any](p *V, def V) V {
	if p == nil {
		return def
	}
	return *p
}
