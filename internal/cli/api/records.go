package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"orangepass/internal/cli/model"
	fsrepo "orangepass/internal/cli/repo/fs"
	"orangepass/internal/config"
)

// RecordDTO — проводной формат записи коллекции qrcodes.
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

func toDTO(rec model.Record) RecordDTO {
	return RecordDTO{
		ID:            rec.ID,
		QRIndex:       rec.QRIndex,
		UserID:        rec.UserID,
		Code:          rec.Code,
		Metadata:      rec.Metadata,
		MetadataType:  string(rec.MetadataType),
		AccountName:   rec.AccountName,
		AccountNumber: rec.AccountNumber,
		Type:          string(rec.Type),
		Created:       rec.Created,
		Updated:       rec.Updated,
	}
}

func fromDTO(d RecordDTO) model.Record {
	return model.Record{
		ID:            d.ID,
		QRIndex:       d.QRIndex,
		UserID:        d.UserID,
		Code:          d.Code,
		Metadata:      d.Metadata,
		MetadataType:  model.MetadataType(d.MetadataType),
		AccountName:   d.AccountName,
		AccountNumber: d.AccountNumber,
		Type:          model.RecordType(d.Type),
		Created:       d.Created,
		Updated:       d.Updated,
	}
}

// RecordsClient — клиент collection-style CRUD API сервера записей.
type RecordsClient struct {
	serverURL string
	token     string
}

// NewRecordsClient собирает клиента; auth-токен берётся из файлового хранилища,
// его отсутствие не ошибка (гостевые вызовы отвергнет сервер).
func NewRecordsClient(cfg *config.Config) *RecordsClient {
	token, _ := (fsrepo.AuthFSStore{}).Load()
	return &RecordsClient{serverURL: strings.TrimRight(cfg.ServerURL, "/"), token: token}
}

func (c *RecordsClient) collectionURL() string {
	return c.serverURL + "/api/collections/qrcodes/records"
}

func (c *RecordsClient) checkStatus(resp *http.Response, body []byte, want int) error {
	if resp.StatusCode == want {
		return nil
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// CreateRecord создаёт запись на сервере.
func (c *RecordsClient) CreateRecord(ctx context.Context, rec model.Record) error {
	resp, body, err := PostJSON(ctx, c.collectionURL(), toDTO(rec), c.token)
	if err != nil {
		return err
	}
	return c.checkStatus(resp, body, http.StatusCreated)
}

// UpdateRecord перезаписывает запись на сервере по id.
func (c *RecordsClient) UpdateRecord(ctx context.Context, rec model.Record) error {
	resp, body, err := DoJSON(ctx, http.MethodPatch, c.collectionURL()+"/"+rec.ID, toDTO(rec), c.token)
	if err != nil {
		return err
	}
	return c.checkStatus(resp, body, http.StatusOK)
}

// DeleteRecord физически удаляет запись на сервере.
func (c *RecordsClient) DeleteRecord(ctx context.Context, id string) error {
	resp, body, err := DoJSON(ctx, http.MethodDelete, c.collectionURL()+"/"+id, nil, c.token)
	if err != nil {
		return err
	}
	return c.checkStatus(resp, body, http.StatusNoContent)
}

type updatedMapRequest struct {
	IDs []string `json:"ids"`
}

type updatedMapResponse struct {
	Updated map[string]string `json:"updated"`
}

// UpdatedMap возвращает серверные метки updated для перечисленных id одним
// батч-запросом; отсутствующие на сервере id в ответ не попадают.
func (c *RecordsClient) UpdatedMap(ctx context.Context, ids []string) (map[string]string, error) {
	resp, body, err := PostJSON(ctx, c.collectionURL()+"/updated-map", updatedMapRequest{IDs: ids}, c.token)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(resp, body, http.StatusOK); err != nil {
		return nil, err
	}
	var um updatedMapResponse
	if err := json.Unmarshal(body, &um); err != nil {
		return nil, fmt.Errorf("decode updated-map: %w", err)
	}
	return um.Updated, nil
}

type listResponse struct {
	Items []RecordDTO `json:"items"`
}

// BuildSinceFilter собирает выражение фильтра для pull: записи пользователя
// новее watermark, за вычетом локально удалённых id.
func BuildSinceFilter(userID, sinceUpdated string, excludeIDs []string) string {
	parts := []string{fmt.Sprintf("user_id = '%s'", userID)}
	if sinceUpdated != "" {
		parts = append(parts, fmt.Sprintf("updated > '%s'", sinceUpdated))
	}
	for _, id := range excludeIDs {
		parts = append(parts, fmt.Sprintf("id != '%s'", id))
	}
	return strings.Join(parts, " && ")
}

// ListSince запрашивает записи пользователя новее sinceUpdated, исключая
// excludeIDs, отсортированные по updated по возрастанию.
func (c *RecordsClient) ListSince(ctx context.Context, userID, sinceUpdated string, excludeIDs []string) ([]model.Record, error) {
	q := url.Values{}
	q.Set("filter", BuildSinceFilter(userID, sinceUpdated, excludeIDs))
	q.Set("sort", "updated")
	resp, body, err := DoJSON(ctx, http.MethodGet, c.collectionURL()+"?"+q.Encode(), nil, c.token)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(resp, body, http.StatusOK); err != nil {
		return nil, err
	}
	var lr listResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	recs := make([]model.Record, 0, len(lr.Items))
	for _, d := range lr.Items {
		recs = append(recs, fromDTO(d))
	}
	return recs, nil
}
