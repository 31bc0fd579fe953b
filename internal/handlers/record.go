package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"orangepass/internal/middleware"
	"orangepass/internal/model"
	"orangepass/internal/service"
)

// RecordHandler обрабатывает collection-style CRUD коллекции qrcodes.
type RecordHandler struct {
	RecordService *service.RecordService
	Logger        *zap.SugaredLogger
}

// NewRecordHandler создаёт хендлер записей
func NewRecordHandler(recordService *service.RecordService, logger *zap.SugaredLogger) *RecordHandler {
	return &RecordHandler{RecordService: recordService, Logger: logger}
}

// RecordDTO — проводной формат записи; метки времени строковые, в формате
// timeLayout (фиксированная ширина дробной части, как хранит клиент).
type RecordDTO struct {
	ID            string `json:"id"`
	QRIndex       int    `json:"qr_index"`
	UserID        string `json:"user_id"`
	Code          string `json:"code"`
	Metadata      string `json:"metadata"`
	MetadataType  string `json:"metadata_type"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Type          string `json:"type"`
	Created       string `json:"created"`
	Updated       string `json:"updated"`
}

// timeLayout повторяет канонический формат клиента: фиксированная ширина
// наносекунд, чтобы строковый порядок совпадал с хронологическим.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func toDTO(rec model.Record) RecordDTO {
	return RecordDTO{
		ID:            rec.ID,
		QRIndex:       rec.QRIndex,
		UserID:        rec.UserID,
		Code:          rec.Code,
		Metadata:      rec.Metadata,
		MetadataType:  rec.MetadataType,
		AccountName:   rec.AccountName,
		AccountNumber: rec.AccountNumber,
		Type:          rec.Type,
		Created:       rec.Created.UTC().Format(timeLayout),
		Updated:       rec.Updated.UTC().Format(timeLayout),
	}
}

func fromDTO(d RecordDTO) (model.Record, error) {
	rec := model.Record{
		ID:            d.ID,
		QRIndex:       d.QRIndex,
		UserID:        d.UserID,
		Code:          d.Code,
		Metadata:      d.Metadata,
		MetadataType:  d.MetadataType,
		AccountName:   d.AccountName,
		AccountNumber: d.AccountNumber,
		Type:          d.Type,
	}
	var err error
	if d.Created != "" {
		rec.Created, err = time.Parse(time.RFC3339Nano, d.Created)
		if err != nil {
			return rec, err
		}
	}
	if d.Updated != "" {
		rec.Updated, err = time.Parse(time.RFC3339Nano, d.Updated)
		if err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func (h *RecordHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return uid, true
}

// List выдаёт записи пользователя по фильтру и сортировке из query string.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	recs, err := h.RecordService.List(r.Context(), uid, r.URL.Query().Get("filter"), r.URL.Query().Get("sort"))
	if errors.Is(err, service.ErrBadFilter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Logger.Errorw("List: service error", "user_id", uid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]RecordDTO, 0, len(recs))
	for _, rec := range recs {
		items = append(items, toDTO(rec))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
}

// Create сохраняет новую запись пользователя.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	rec, err := fromDTO(dto)
	if err != nil {
		http.Error(w, "invalid timestamp", http.StatusBadRequest)
		return
	}

	if err := h.RecordService.Create(r.Context(), uid, &rec); err != nil {
		h.Logger.Errorw("Create: service error", "user_id", uid, "record_id", rec.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(rec))
}

// Update перезаписывает запись пользователя по id из пути.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	rec, err := fromDTO(dto)
	if err != nil {
		http.Error(w, "invalid timestamp", http.StatusBadRequest)
		return
	}

	err = h.RecordService.Update(r.Context(), uid, id, &rec)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("Update: service error", "user_id", uid, "record_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rec.ID = id
	rec.UserID = uid
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(toDTO(rec))
}

// Delete физически удаляет запись пользователя.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	err := h.RecordService.Delete(r.Context(), uid, id)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("Delete: service error", "user_id", uid, "record_id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updatedMapRequest struct {
	IDs []string `json:"ids"`
}

// UpdatedMap отдаёт метки updated по батчу id одним запросом.
func (h *RecordHandler) UpdatedMap(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req updatedMapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	um, err := h.RecordService.UpdatedMap(r.Context(), uid, req.IDs)
	if err != nil {
		h.Logger.Errorw("UpdatedMap: service error", "user_id", uid, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make(map[string]string, len(um))
	for id, t := range um {
		out[id] = t.UTC().Format(timeLayout)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"updated": out})
}
