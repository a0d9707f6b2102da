package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecodrive/apperror"
	"ecodrive/repository"
)

// crud implements list/get/create/update/delete for one entity. Entity services embed it
// and supply the hooks that carry their business rules.
type crud[E any, C any, R any] struct {
	db     *gorm.DB
	log    *zap.Logger
	entity string

	toResponse func(*E) R
	// build validates a create input and returns the entity to insert.
	build func(ctx context.Context, tx *gorm.DB, in C) (*E, error)
	// apply validates an update input and mutates e in place.
	apply func(ctx context.Context, tx *gorm.DB, e *E, in C) error
	// remove deletes e and its dependents; nil means a plain delete.
	remove func(ctx context.Context, tx *gorm.DB, e *E) error
	// written runs after a create or update commits.
	written func(ctx context.Context, e *E)
}

func (c *crud[E, C, R]) List(ctx context.Context, page, size int) (repository.Page[R], error) {
	p, err := repository.New[E](c.db).FindPage(ctx, page, size)
	if err != nil {
		return repository.Page[R]{}, c.fail("list", err)
	}
	return repository.MapPage(p, c.toResponse), nil
}

func (c *crud[E, C, R]) Get(ctx context.Context, id uint) (R, error) {
	e, err := c.find(ctx, c.db, id)
	if err != nil {
		var zero R
		return zero, c.fail("get", err)
	}
	return c.toResponse(e), nil
}

func (c *crud[E, C, R]) Create(ctx context.Context, in C) (R, error) {
	var created *E
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := c.build(ctx, tx, in)
		if err != nil {
			return err
		}
		if err := repository.New[E](tx).Create(ctx, e); err != nil {
			return apperror.FromStore(err)
		}
		created = e
		return nil
	})
	if err != nil {
		var zero R
		return zero, c.fail("create", err)
	}

	resp := c.toResponse(created)
	c.log.Info(c.entity+" created", zap.Any("id", idOf(resp)))
	if c.written != nil {
		c.written(ctx, created)
	}
	return resp, nil
}

func (c *crud[E, C, R]) Update(ctx context.Context, id uint, in C) (R, error) {
	var updated *E
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := c.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := c.apply(ctx, tx, e, in); err != nil {
			return err
		}
		if err := repository.New[E](tx).Save(ctx, e); err != nil {
			return apperror.FromStore(err)
		}
		updated = e
		return nil
	})
	if err != nil {
		var zero R
		return zero, c.fail("update", err)
	}

	c.log.Info(c.entity+" updated", zap.Uint("id", id))
	if c.written != nil {
		c.written(ctx, updated)
	}
	return c.toResponse(updated), nil
}

func (c *crud[E, C, R]) Delete(ctx context.Context, id uint) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, err := c.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if c.remove != nil {
			return c.remove(ctx, tx, e)
		}
		return apperror.FromStore(repository.New[E](tx).Delete(ctx, e))
	})
	if err != nil {
		return c.fail("delete", err)
	}
	c.log.Info(c.entity+" deleted", zap.Uint("id", id))
	return nil
}

func (c *crud[E, C, R]) find(ctx context.Context, db *gorm.DB, id uint) (*E, error) {
	e, err := repository.New[E](db).FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(c.entity, id)
	}
	if err != nil {
		return nil, apperror.FromStore(err)
	}
	return e, nil
}

// list maps finder results, turning an empty result into NotFound with msg.
func (c *crud[E, C, R]) list(items []E, err error, op, msg string) ([]R, error) {
	if err != nil {
		return nil, c.fail(op, err)
	}
	if len(items) == 0 {
		return nil, apperror.NotFoundf("%s", msg)
	}
	out := make([]R, len(items))
	for i := range items {
		out[i] = c.toResponse(&items[i])
	}
	return out, nil
}

// fail converts err to an application error, logging the ones clients never see.
func (c *crud[E, C, R]) fail(op string, err error) error {
	return failure(c.log, c.entity, op, err)
}

func failure(log *zap.Logger, entity, op string, err error) error {
	appErr := apperror.As(apperror.FromStore(err))
	switch appErr.Kind {
	case apperror.KindInternal:
		log.Error(entity+" "+op+" failed", zap.Error(err))
	case apperror.KindConflict:
		log.Warn(entity+" "+op+" conflict", zap.String("details", appErr.Details), zap.Error(appErr.Err))
	}
	return appErr
}

type identified interface {
	ResourceID() uint
}

func idOf(v interface{}) interface{} {
	if r, ok := v.(identified); ok {
		return r.ResourceID()
	}
	return nil
}

func requiredString(field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", apperror.Invalidf("O campo '%s' é obrigatório", field)
	}
	return *v, nil
}

func required[T any](field string, v *T) (T, error) {
	if v == nil {
		var zero T
		return zero, apperror.Invalidf("O campo '%s' é obrigatório", field)
	}
	return *v, nil
}

// notBlank rejects an update value that is present but blank.
func notBlank(field string, v *string) error {
	if v != nil && strings.TrimSpace(*v) == "" {
		return apperror.Invalidf("O campo '%s' não pode ser vazio", field)
	}
	return nil
}

func positive(field string, v float64) error {
	if v <= 0 {
		return apperror.Invalidf("O campo '%s' deve ser maior que zero", field)
	}
	return nil
}

// mustExist resolves a referenced row by id inside tx.
func mustExist[T any](ctx context.Context, tx *gorm.DB, entity string, id uint) error {
	ok, err := repository.New[T](tx).ExistsByID(ctx, id)
	if err != nil {
		return apperror.FromStore(err)
	}
	if !ok {
		return apperror.NotFound(entity, id)
	}
	return nil
}

// noDependents fails with Conflict when rows of T still reference the parent through column.
func noDependents[T any](ctx context.Context, tx *gorm.DB, column string, parentID uint, parent, dependents string) error {
	n, err := repository.New[T](tx).Count(ctx, column+" = ?", parentID)
	if err != nil {
		return apperror.FromStore(err)
	}
	if n > 0 {
		return apperror.Conflict(fmt.Sprintf("%s %d possui %d %s vinculado(s)", parent, parentID, n, dependents), nil)
	}
	return nil
}
