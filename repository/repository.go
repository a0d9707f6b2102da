package repository

import (
	"context"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is one slice of an ordered result set. Number is zero based.
type Page[T any] struct {
	Items         []T
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NormalizePage clamps a negative page to 0 and a size outside (0, MaxPageSize] to the
// default or the cap. page*size never overflows int.
func NormalizePage(page, size int) (int, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 0 {
		page = 0
	}
	if last := math.MaxInt/size - 1; page > last {
		page = last
	}
	return page, size
}

// MapPage converts the items of a page keeping its metadata.
func MapPage[T any, R any](p Page[T], fn func(*T) R) Page[R] {
	out := Page[R]{
		Items:         make([]R, len(p.Items)),
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
	for i := range p.Items {
		out.Items[i] = fn(&p.Items[i])
	}
	return out
}

// Repository is a gorm backed store for one model type.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx returns a repository bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

func (r *Repository[T]) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

var byPrimaryKey = clause.OrderByColumn{Column: clause.PrimaryColumn}

// FindByID returns gorm.ErrRecordNotFound when no row has the id.
func (r *Repository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *Repository[T]) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return r.Exists(ctx, clause.Eq{Column: clause.PrimaryColumn, Value: id})
}

// Exists reports whether any row matches the condition.
func (r *Repository[T]) Exists(ctx context.Context, query interface{}, args ...interface{}) (bool, error) {
	n, err := r.Count(ctx, query, args...)
	return n > 0, err
}

func (r *Repository[T]) Count(ctx context.Context, query interface{}, args ...interface{}) (int64, error) {
	var n int64
	err := r.query(ctx).Where(query, args...).Count(&n).Error
	return n, err
}

// FindPage returns rows ordered by primary key ascending.
func (r *Repository[T]) FindPage(ctx context.Context, page, size int) (Page[T], error) {
	page, size = NormalizePage(page, size)

	var total int64
	if err := r.query(ctx).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	p := Page[T]{
		Items:         []T{},
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
	if int64(page)*int64(size) >= total {
		return p, nil
	}

	items := make([]T, 0, size)
	if err := r.db.WithContext(ctx).
		Order(byPrimaryKey).
		Offset(page * size).
		Limit(size).
		Find(&items).Error; err != nil {
		return Page[T]{}, err
	}

	p.Items = items
	return p, nil
}

// FindWhere returns every row matching the condition ordered by primary key.
func (r *Repository[T]) FindWhere(ctx context.Context, query interface{}, args ...interface{}) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Where(query, args...).Order(byPrimaryKey).Find(&items).Error
	return items, err
}

// FindAll returns every row ordered by primary key.
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Order(byPrimaryKey).Find(&items).Error
	return items, err
}

// FindContaining matches column against value case-insensitively as a substring.
func (r *Repository[T]) FindContaining(ctx context.Context, column, value string) ([]T, error) {
	return r.FindWhere(ctx, Contains(clause.Column{Name: column}, value))
}

// likeEscape must read the same as a string literal in mysql, postgres and sqlite, which
// rules out a backslash.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// Contains is a case-insensitive substring match of column against value. Wildcards in
// value match themselves.
func Contains(column clause.Column, value string) clause.Expr {
	return clause.Expr{
		SQL:  "LOWER(?) LIKE ? ESCAPE '" + likeEscape + "'",
		Vars: []interface{}{column, ContainsPattern(value)},
	}
}

// ContainsPattern builds a lower-case LIKE pattern matching value anywhere, for use
// with Contains' escape character.
func ContainsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(value))) + "%"
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Save writes every column of entity.
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *Repository[T]) Delete(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Delete(entity).Error
}

// DeleteWhere removes every row matching the condition and returns how many went.
func (r *Repository[T]) DeleteWhere(ctx context.Context, query interface{}, args ...interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Where(query, args...).Delete(new(T))
	return res.RowsAffected, res.Error
}

// UpdateWhere sets column values on every row matching the condition.
func (r *Repository[T]) UpdateWhere(ctx context.Context, values map[string]interface{}, query interface{}, args ...interface{}) (int64, error) {
	res := r.query(ctx).Where(query, args...).Updates(values)
	return res.RowsAffected, res.Error
}
