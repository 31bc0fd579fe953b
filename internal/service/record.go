package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orangepass/internal/filter"
	"orangepass/internal/model"
	"orangepass/internal/repo"
)

// ErrNotFound — запись не существует либо принадлежит другому пользователю.
var ErrNotFound = errors.New("record not found")

// ErrBadFilter — выражение фильтра не разобралось.
var ErrBadFilter = errors.New("bad filter expression")

// RecordService инкапсулирует бизнес-логику коллекции qrcodes.
// Все операции выполняются от имени аутентифицированного пользователя:
// фильтры клиента дополнительно ограничиваются его user_id.
type RecordService struct {
	repo   repo.RecordRepository
	logger *zap.SugaredLogger
}

func NewRecordService(r repo.RecordRepository, logger *zap.SugaredLogger) *RecordService {
	return &RecordService{repo: r, logger: logger}
}

// List возвращает записи пользователя, при необходимости сузив выборку
// выражением фильтра и отсортировав по sort.
func (s *RecordService) List(ctx context.Context, userID, filterExpr, sort string) ([]model.Record, error) {
	where := "user_id = ?"
	args := []any{userID}

	if filterExpr != "" {
		expr, err := filter.Parse(filterExpr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadFilter, err)
		}
		fsql, fargs, err := expr.SQL()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadFilter, err)
		}
		where += " AND (" + fsql + ")"
		args = append(args, fargs...)
	}

	orderBy, err := filter.ParseSort(sort)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadFilter, err)
	}

	return s.repo.List(ctx, where, args, orderBy)
}

// Create сохраняет новую запись пользователя. Пустой id генерируется на
// сервере, чужой user_id в теле молча заменяется на аутентифицированный.
func (s *RecordService) Create(ctx context.Context, userID string, rec *model.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	rec.UserID = userID
	if rec.Updated.IsZero() {
		rec.Updated = time.Now().UTC()
	}
	if rec.Created.IsZero() {
		rec.Created = rec.Updated
	}
	return s.repo.Create(ctx, rec)
}

// Update перезаписывает поля записи пользователя.
func (s *RecordService) Update(ctx context.Context, userID, id string, rec *model.Record) error {
	updates := map[string]any{
		"qr_index":       rec.QRIndex,
		"code":           rec.Code,
		"metadata":       rec.Metadata,
		"metadata_type":  rec.MetadataType,
		"account_name":   rec.AccountName,
		"account_number": rec.AccountNumber,
		"type":           rec.Type,
		"updated":        rec.Updated,
	}
	rows, err := s.repo.Update(ctx, userID, id, updates)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete физически удаляет запись пользователя.
func (s *RecordService) Delete(ctx context.Context, userID, id string) error {
	rows, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatedMap возвращает метки updated по батчу id пользователя.
func (s *RecordService) UpdatedMap(ctx context.Context, userID string, ids []string) (map[string]time.Time, error) {
	return s.repo.UpdatedMap(ctx, userID, ids)
}
