package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"orangepass/internal/cli/model"
	"orangepass/internal/cli/repo"
)

// RecordRepositorySQLite — репозиторий QR-записей поверх локальной БД SQLite.
type RecordRepositorySQLite struct {
	db     *sql.DB
	logger *zap.SugaredLogger

	// now переопределяется в тестах для детерминированных меток времени
	now func() time.Time
}

var _ repo.RecordRepository = (*RecordRepositorySQLite)(nil)

// Open открывает (и создаёт при необходимости) файл БД по указанному пути
// и возвращает репозиторий.
func Open(dbPath string, logger *zap.SugaredLogger) (*RecordRepositorySQLite, error) {
	if dbPath == "" {
		return nil, errors.New("empty client db path")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &RecordRepositorySQLite{db: db, logger: logger, now: time.Now}, nil
}

// Close закрывает соединение с БД.
func (r *RecordRepositorySQLite) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Migrate гарантирует наличие таблицы qrcodes и индексов.
func (r *RecordRepositorySQLite) Migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS qrcodes (
  id TEXT PRIMARY KEY,
  qr_index INTEGER NOT NULL,
  user_id TEXT NOT NULL DEFAULT '',
  code TEXT NOT NULL,
  metadata TEXT NOT NULL,
  metadata_type TEXT NOT NULL DEFAULT 'qr',
  account_name TEXT NOT NULL DEFAULT '',
  account_number TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL,
  created TEXT NOT NULL,
  updated TEXT NOT NULL,
  is_deleted INTEGER NOT NULL DEFAULT 0,
  is_synced INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_qrcodes_user_deleted ON qrcodes(user_id, is_deleted);
CREATE INDEX IF NOT EXISTS idx_qrcodes_user_index ON qrcodes(user_id, qr_index);
CREATE INDEX IF NOT EXISTS idx_qrcodes_user_synced ON qrcodes(user_id, is_synced);
`
	_, err := r.db.Exec(ddl)
	return err
}

// Timestamp возвращает текущую метку времени в каноническом виде.
func (r *RecordRepositorySQLite) Timestamp() string {
	return model.FormatTime(r.now())
}

const recordColumns = `id, qr_index, user_id, code, metadata, metadata_type,
  account_name, account_number, type, created, updated, is_deleted, is_synced`

func scanRecord(scan func(dest ...any) error) (model.Record, error) {
	var rec model.Record
	var delInt, syncInt int
	err := scan(&rec.ID, &rec.QRIndex, &rec.UserID, &rec.Code, &rec.Metadata,
		&rec.MetadataType, &rec.AccountName, &rec.AccountNumber, &rec.Type,
		&rec.Created, &rec.Updated, &delInt, &syncInt)
	if err != nil {
		return model.Record{}, err
	}
	rec.IsDeleted = delInt != 0
	rec.IsSynced = syncInt != 0
	return rec, nil
}

func (r *RecordRepositorySQLite) queryRecords(query string, args ...any) ([]model.Record, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []model.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// GetByID возвращает запись по id. Tombstone-записи не видны;
// отсутствие записи — (nil, nil), не ошибка.
func (r *RecordRepositorySQLite) GetByID(id string) (*model.Record, error) {
	return r.getByID(id, false)
}

// GetByIDIncludingDeleted возвращает запись по id, включая tombstone.
func (r *RecordRepositorySQLite) GetByIDIncludingDeleted(id string) (*model.Record, error) {
	return r.getByID(id, true)
}

func (r *RecordRepositorySQLite) getByID(id string, includeDeleted bool) (*model.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM qrcodes WHERE id = ?`
	if !includeDeleted {
		q += ` AND is_deleted = 0`
	}
	rec, err := scanRecord(r.db.QueryRow(q, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Errorw("qrDB: point lookup failed", "id", id, "error", err)
		return nil, err
	}
	return &rec, nil
}

// GetAllForUser возвращает живые записи пользователя по qr_index по возрастанию.
func (r *RecordRepositorySQLite) GetAllForUser(userID string) ([]model.Record, error) {
	return r.queryRecords(`SELECT `+recordColumns+` FROM qrcodes
      WHERE user_id = ? AND is_deleted = 0 ORDER BY qr_index ASC`, userID)
}

// UpsertBatch применяет батч в одной транзакции: вставка при отсутствии,
// перезапись целиком — только когда входящая updated строго новее сохранённой.
func (r *RecordRepositorySQLite) UpsertBatch(records []model.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, rec := range records {
		var stored string
		err := tx.QueryRow(`SELECT updated FROM qrcodes WHERE id = ?`, rec.ID).Scan(&stored)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.Exec(`INSERT INTO qrcodes(`+recordColumns+`)
              VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				rec.ID, rec.QRIndex, rec.UserID, rec.Code, rec.Metadata, rec.MetadataType,
				rec.AccountName, rec.AccountNumber, rec.Type, rec.Created, rec.Updated,
				boolToInt(rec.IsDeleted), boolToInt(rec.IsSynced)); err != nil {
				return fmt.Errorf("insert %s: %w", rec.ID, err)
			}
		case err != nil:
			return fmt.Errorf("lookup %s: %w", rec.ID, err)
		default:
			// старые записи никогда не затирают новые
			if !model.UpdatedAfter(rec.Updated, stored) {
				continue
			}
			if _, err := tx.Exec(`UPDATE qrcodes SET qr_index = ?, user_id = ?, code = ?,
              metadata = ?, metadata_type = ?, account_name = ?, account_number = ?,
              type = ?, created = ?, updated = ?, is_deleted = ?, is_synced = ?
              WHERE id = ?`,
				rec.QRIndex, rec.UserID, rec.Code, rec.Metadata, rec.MetadataType,
				rec.AccountName, rec.AccountNumber, rec.Type, rec.Created, rec.Updated,
				boolToInt(rec.IsDeleted), boolToInt(rec.IsSynced), rec.ID); err != nil {
				return fmt.Errorf("update %s: %w", rec.ID, err)
			}
		}
	}
	return tx.Commit()
}

// SoftDelete помечает запись tombstone и снимает is_synced.
func (r *RecordRepositorySQLite) SoftDelete(id string) error {
	res, err := r.db.Exec(`UPDATE qrcodes SET is_deleted = 1, is_synced = 0, updated = ?
      WHERE id = ?`, r.Timestamp(), id)
	if err != nil {
		return err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if ra != 1 {
		return fmt.Errorf("record %q not found", id)
	}
	return nil
}

// Reorder атомарно переписывает qr_index и updated для всего списка,
// помечая все записи несинхронизированными. Используется для drag-reorder
// и переиндексации после удаления.
func (r *RecordRepositorySQLite) Reorder(records []model.Record) error {
	if len(records) == 0 {
		return nil
	}
	ts := r.Timestamp()
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	for i, rec := range records {
		if _, err := tx.Exec(`UPDATE qrcodes SET qr_index = ?, updated = ?, is_synced = 0
          WHERE id = ?`, i, ts, rec.ID); err != nil {
			return fmt.Errorf("reorder %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

// Search ищет подстроку term (без учёта регистра) по денормализованным
// отображаемым полям: имя и номер счёта, код каталога, payload.
func (r *RecordRepositorySQLite) Search(userID, term string) ([]model.Record, error) {
	like := "%" + term + "%"
	return r.queryRecords(`SELECT `+recordColumns+` FROM qrcodes
      WHERE user_id = ? AND is_deleted = 0
        AND (account_name LIKE ? OR account_number LIKE ? OR code LIKE ? OR metadata LIKE ?)
      ORDER BY qr_index ASC`, userID, like, like, like, like)
}

// FilterByType возвращает живые записи пользователя указанной категории.
func (r *RecordRepositorySQLite) FilterByType(userID string, t model.RecordType) ([]model.Record, error) {
	return r.queryRecords(`SELECT `+recordColumns+` FROM qrcodes
      WHERE user_id = ? AND is_deleted = 0 AND type = ? ORDER BY qr_index ASC`, userID, t)
}

// GetUnsynced возвращает все записи с локальными неподтверждёнными изменениями,
// включая tombstone.
func (r *RecordRepositorySQLite) GetUnsynced(userID string) ([]model.Record, error) {
	return r.queryRecords(`SELECT `+recordColumns+` FROM qrcodes
      WHERE user_id = ? AND is_synced = 0 ORDER BY qr_index ASC`, userID)
}

// TombstonedIDs возвращает id локально удалённых записей пользователя.
func (r *RecordRepositorySQLite) TombstonedIDs(userID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT id FROM qrcodes WHERE user_id = ? AND is_deleted = 1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkSyncedBatch выставляет is_synced=1 для перечисленных id одним батчем.
func (r *RecordRepositorySQLite) MarkSyncedBatch(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()
	for _, id := range ids {
		if _, err := tx.Exec(`UPDATE qrcodes SET is_synced = 1 WHERE id = ?`, id); err != nil {
			return fmt.Errorf("mark synced %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// MaxUpdated возвращает watermark пользователя: максимум updated по всем его
// записям (включая tombstone); "" — если записей нет.
func (r *RecordRepositorySQLite) MaxUpdated(userID string) (string, error) {
	var max sql.NullString
	err := r.db.QueryRow(`SELECT MAX(updated) FROM qrcodes WHERE user_id = ?`, userID).Scan(&max)
	if err != nil {
		return "", err
	}
	if !max.Valid {
		return "", nil
	}
	return max.String, nil
}

// NextIndex возвращает следующую свободную позицию qr_index пользователя.
func (r *RecordRepositorySQLite) NextIndex(userID string) (int, error) {
	var max sql.NullInt64
	err := r.db.QueryRow(`SELECT MAX(qr_index) FROM qrcodes
      WHERE user_id = ? AND is_deleted = 0`, userID).Scan(&max)
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
