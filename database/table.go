package database

import (
	"context"
	"errors"

	"github.com/paleotommytechy/portfolio/errs"
	"gorm.io/gorm"
)

// Mapping converts between a remote row and the local record the site renders.
type Mapping[R, T any] struct {
	ToLocal  func(R) T
	ToRemote func(T) R
}

// Row is a gorm model bound to a named table.
type Row interface {
	TableName() string
}

// Table is one remote content table.
type Table[R Row, T any] struct {
	db      *gorm.DB
	name    string
	mapping Mapping[R, T]
}

func NewTable[R Row, T any](db *gorm.DB, mapping Mapping[R, T]) *Table[R, T] {
	var row R
	return &Table[R, T]{db: db, name: row.TableName(), mapping: mapping}
}

// Name is the remote table name.
func (t *Table[R, T]) Name() string {
	return t.name
}

// FindAll returns every row in whatever order the backend produces.
func (t *Table[R, T]) FindAll(ctx context.Context) ([]T, error) {
	var rows []R
	if err := t.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errs.NewDatabaseError("list", t.name, err)
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		items = append(items, t.mapping.ToLocal(row))
	}
	return items, nil
}

// FindByID returns an errs.NewNotFound error when no row has the id.
func (t *Table[R, T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var row R
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound(t.name)
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", t.name, err)
	}

	item := t.mapping.ToLocal(row)
	return &item, nil
}

// Add inserts the record and returns the stored row. Any id on the input is
// ignored; the backend assigns it.
func (t *Table[R, T]) Add(ctx context.Context, item T) (*T, error) {
	row := t.mapping.ToRemote(item)
	if err := t.db.WithContext(ctx).Omit("id").Create(&row).Error; err != nil {
		return nil, errs.NewDatabaseError("insert into", t.name, err)
	}

	created := t.mapping.ToLocal(row)
	return &created, nil
}

// Update replaces every editable column of the row with the id and returns
// the row as stored. It returns an errs.NewNotFound error when no row matched.
func (t *Table[R, T]) Update(ctx context.Context, id int64, item T) (*T, error) {
	row := t.mapping.ToRemote(item)
	result := t.db.WithContext(ctx).
		Model(new(R)).
		Where("id = ?", id).
		Select("*").
		Omit("id").
		Updates(&row)
	if result.Error != nil {
		return nil, errs.NewDatabaseError("update", t.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound(t.name)
	}
	return t.FindByID(ctx, id)
}

// Delete removes the row with the id. Deleting a missing row is not an error.
func (t *Table[R, T]) Delete(ctx context.Context, id int64) error {
	if err := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(R)).Error; err != nil {
		return errs.NewDatabaseError("delete from", t.name, err)
	}
	return nil
}
