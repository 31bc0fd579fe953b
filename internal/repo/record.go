package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"orangepass/internal/model"
)

// RecordRepository определяет контракт доступа к Record для слоя сервиса.
type RecordRepository interface {
	// List возвращает записи по готовому WHERE-фрагменту с аргументами
	// и необязательной сортировкой.
	List(ctx context.Context, where string, args []any, orderBy string) ([]model.Record, error)

	// GetByID ищет запись по id; (nil, nil) если не найдена.
	GetByID(ctx context.Context, id string) (*model.Record, error)

	// Create вставляет новую запись.
	Create(ctx context.Context, rec *model.Record) error

	// Update перезаписывает поля записи пользователя; возвращает число
	// затронутых строк (0 — чужая либо отсутствующая запись).
	Update(ctx context.Context, userID, id string, updates map[string]any) (int64, error)

	// Delete физически удаляет запись пользователя; возвращает число
	// затронутых строк.
	Delete(ctx context.Context, userID, id string) (int64, error)

	// UpdatedMap возвращает метки updated для перечисленных id пользователя
	// одним запросом; отсутствующие id в карту не попадают.
	UpdatedMap(ctx context.Context, userID string, ids []string) (map[string]time.Time, error)
}

type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepository создаёт реализацию репозитория для Record.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) List(ctx context.Context, where string, args []any, orderBy string) ([]model.Record, error) {
	q := r.db.WithContext(ctx).Model(&model.Record{})
	if where != "" {
		q = q.Where(where, args...)
	}
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	var recs []model.Record
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recordRepo) GetByID(ctx context.Context, id string) (*model.Record, error) {
	var rec model.Record
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepo) Create(ctx context.Context, rec *model.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recordRepo) Update(ctx context.Context, userID, id string, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Record{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *recordRepo) Delete(ctx context.Context, userID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Record{})
	return res.RowsAffected, res.Error
}

func (r *recordRepo) UpdatedMap(ctx context.Context, userID string, ids []string) (map[string]time.Time, error) {
	if len(ids) == 0 {
		return map[string]time.Time{}, nil
	}
	type row struct {
		ID      string
		Updated time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Record{}).
		Select("id", "updated").
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]time.Time, len(rows))
	for _, rw := range rows {
		out[rw.ID] = rw.Updated
	}
	return out, nil
}
