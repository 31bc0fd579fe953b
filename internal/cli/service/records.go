package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"orangepass/internal/cli/model"
	"orangepass/internal/cli/repo"
)

// RecordService — локальные операции над QR-записями пользователя.
// Каждая мутация ставит свежую updated и снимает is_synced;
// выталкивание на сервер — забота Syncer.
type RecordService struct {
	repo repo.RecordRepository

	// now переопределяется в тестах
	now func() time.Time
}

// NewRecordService создаёт сервис поверх переданного репозитория.
func NewRecordService(r repo.RecordRepository) *RecordService {
	return &RecordService{repo: r, now: time.Now}
}

// CreateInput — параметры создания записи.
type CreateInput struct {
	UserID        string
	Code          string
	Metadata      string
	MetadataType  model.MetadataType
	AccountName   string
	AccountNumber string
	Type          model.RecordType
}

// Create добавляет запись в конец списка пользователя и возвращает её id.
func (s *RecordService) Create(in CreateInput) (string, error) {
	if in.Metadata == "" {
		return "", fmt.Errorf("metadata is required")
	}
	if !model.ValidType(in.Type) {
		return "", fmt.Errorf("invalid record type %q", in.Type)
	}
	if in.MetadataType == "" {
		in.MetadataType = model.MetadataQR
	}
	if !model.ValidMetadataType(in.MetadataType) {
		return "", fmt.Errorf("invalid metadata type %q", in.MetadataType)
	}
	idx, err := s.repo.NextIndex(in.UserID)
	if err != nil {
		return "", err
	}
	ts := model.FormatTime(s.now())
	rec := model.Record{
		ID:            uuid.NewString(),
		QRIndex:       idx,
		UserID:        in.UserID,
		Code:          in.Code,
		Metadata:      in.Metadata,
		MetadataType:  in.MetadataType,
		AccountName:   in.AccountName,
		AccountNumber: in.AccountNumber,
		Type:          in.Type,
		Created:       ts,
		Updated:       ts,
		IsSynced:      false,
	}
	if err := s.repo.UpsertBatch([]model.Record{rec}); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// EditInput — изменяемые поля записи; nil означает «не трогать».
type EditInput struct {
	Metadata      *string
	MetadataType  *model.MetadataType
	AccountName   *string
	AccountNumber *string
}

// Edit применяет изменения к записи и помечает её несинхронизированной.
func (s *RecordService) Edit(id string, in EditInput) error {
	rec, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("record %q not found", id)
	}
	if in.Metadata != nil {
		rec.Metadata = *in.Metadata
	}
	if in.MetadataType != nil {
		if !model.ValidMetadataType(*in.MetadataType) {
			return fmt.Errorf("invalid metadata type %q", *in.MetadataType)
		}
		rec.MetadataType = *in.MetadataType
	}
	if in.AccountName != nil {
		rec.AccountName = *in.AccountName
	}
	if in.AccountNumber != nil {
		rec.AccountNumber = *in.AccountNumber
	}
	rec.Updated = model.FormatTime(s.now())
	rec.IsSynced = false
	return s.repo.UpsertBatch([]model.Record{*rec})
}

// Delete помечает запись tombstone и переиндексирует оставшиеся записи
// пользователя, чтобы qr_index остался плотным 0..N-1.
func (s *RecordService) Delete(id string) error {
	rec, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("record %q not found", id)
	}
	if err := s.repo.SoftDelete(id); err != nil {
		return err
	}
	rest, err := s.repo.GetAllForUser(rec.UserID)
	if err != nil {
		return err
	}
	return s.repo.Reorder(rest)
}

// ReorderByIDs переставляет записи пользователя в порядке переданных id.
// Список обязан быть перестановкой всех живых записей пользователя.
func (s *RecordService) ReorderByIDs(userID string, ids []string) error {
	current, err := s.repo.GetAllForUser(userID)
	if err != nil {
		return err
	}
	if len(ids) != len(current) {
		return fmt.Errorf("reorder: got %d ids, user has %d records", len(ids), len(current))
	}
	byID := make(map[string]model.Record, len(current))
	for _, rec := range current {
		byID[rec.ID] = rec
	}
	ordered := make([]model.Record, 0, len(ids))
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			return fmt.Errorf("reorder: unknown record %q", id)
		}
		delete(byID, id)
		ordered = append(ordered, rec)
	}
	return s.repo.Reorder(ordered)
}

// Get возвращает запись по id (nil — не найдена).
func (s *RecordService) Get(id string) (*model.Record, error) {
	return s.repo.GetByID(id)
}

// List возвращает живые записи пользователя в порядке отображения.
func (s *RecordService) List(userID string) ([]model.Record, error) {
	return s.repo.GetAllForUser(userID)
}

// Search ищет подстроку по отображаемым полям записей пользователя.
func (s *RecordService) Search(userID, term string) ([]model.Record, error) {
	return s.repo.Search(userID, term)
}

// FilterByType возвращает записи пользователя одной категории.
func (s *RecordService) FilterByType(userID string, t model.RecordType) ([]model.Record, error) {
	return s.repo.FilterByType(userID, t)
}
