package repositoryImp

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"evergraze/entities"
	"evergraze/pkg/apperr"
	"evergraze/pkg/record/repository"
)

type recordRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RecordRepository { return &recordRepo{db} }

func schemaOf(k entities.Kind) (entities.Schema, error) {
	s, ok := entities.SchemaOf(k)
	if !ok {
		return entities.Schema{}, apperr.Validation("unknown record kind %d", k)
	}
	return s, nil
}

func (r *recordRepo) Create(ctx context.Context, k entities.Kind, values map[string]string) (uint, error) {
	s, err := schemaOf(k)
	if err != nil {
		return 0, err
	}
	cols := s.ColumnNames()
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = values[c]
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		s.Table, strings.Join(cols, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	var id uint
	if err := r.db.WithContext(ctx).Raw(q, args...).Scan(&id).Error; err != nil {
		return 0, fmt.Errorf("insert %s: %w", s.Table, err)
	}
	return id, nil
}

func (r *recordRepo) Recent(ctx context.Context, k entities.Kind, limit int) ([]entities.Record, error) {
	return r.find(ctx, k, func(q *gorm.DB) *gorm.DB { return q.Order("id DESC").Limit(limit) })
}

func (r *recordRepo) All(ctx context.Context, k entities.Kind) ([]entities.Record, error) {
	return r.find(ctx, k, func(q *gorm.DB) *gorm.DB { return q.Order("id ASC") })
}

func (r *recordRepo) ByAnimal(ctx context.Context, k entities.Kind, animalID string) ([]entities.Record, error) {
	return r.find(ctx, k, func(q *gorm.DB) *gorm.DB { return q.Where("animal_id = ?", animalID).Order("id ASC") })
}

func (r *recordRepo) FindByID(ctx context.Context, k entities.Kind, id uint) (*entities.Record, error) {
	out, err := r.find(ctx, k, func(q *gorm.DB) *gorm.DB { return q.Where("id = ?", id).Limit(1) })
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, apperr.NotFound("%s %d", k, id)
	}
	return &out[0], nil
}

func (r *recordRepo) UpdateByID(ctx context.Context, k entities.Kind, id uint, values map[string]string) error {
	s, err := schemaOf(k)
	if err != nil {
		return err
	}
	upd := make(map[string]any, len(values))
	for c, v := range values {
		if _, ok := s.Column(c); !ok {
			return apperr.Validation("unknown field %q for %s", c, k)
		}
		upd[c] = v
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Table(s.Table).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("%s %d", k, id)
		}
		if len(upd) == 0 {
			return nil
		}
		return tx.Table(s.Table).Where("id = ?", id).Updates(upd).Error
	})
}

// DeleteByID removes the row if it exists; deleting a missing id is not an error.
func (r *recordRepo) DeleteByID(ctx context.Context, k entities.Kind, id uint) error {
	s, err := schemaOf(k)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Exec("DELETE FROM "+s.Table+" WHERE id = ?", id).Error
}

func (r *recordRepo) find(ctx context.Context, k entities.Kind, scope func(*gorm.DB) *gorm.DB) ([]entities.Record, error) {
	s, err := schemaOf(k)
	if err != nil {
		return nil, err
	}
	cols := s.ColumnNames()
	q := r.db.WithContext(ctx).Table(s.Table).Select(append([]string{"id"}, cols...))
	rows, err := scope(q).Rows()
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", s.Table, err)
	}
	defer rows.Close()

	out := []entities.Record{}
	for rows.Next() {
		var id uint
		vals := make([]sql.NullString, len(cols))
		dest := make([]any, 0, len(cols)+1)
		dest = append(dest, &id)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.Table, err)
		}
		rec := entities.Record{ID: id, Kind: k, Values: make(map[string]string, len(cols))}
		for i, c := range cols {
			rec.Values[c] = vals[i].String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
