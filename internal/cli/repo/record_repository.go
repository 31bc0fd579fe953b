package repo

import "orangepass/internal/cli/model"

// RecordRepository определяет порт доступа к локальному хранилищу QR-записей.
// Не-найдено для точечных чтений возвращается как (nil, nil), без ошибки.
type RecordRepository interface {
	// GetByID возвращает запись по id; tombstone-записи не видны.
	GetByID(id string) (*model.Record, error)

	// GetByIDIncludingDeleted возвращает запись по id, включая tombstone.
	GetByIDIncludingDeleted(id string) (*model.Record, error)

	// GetAllForUser возвращает живые записи пользователя по qr_index по возрастанию.
	GetAllForUser(userID string) ([]model.Record, error)

	// UpsertBatch атомарно применяет батч: вставка при отсутствии, перезапись
	// только если входящая updated строго новее сохранённой (last-write-wins
	// на уровне записи целиком). Любая ошибка откатывает весь батч.
	UpsertBatch(records []model.Record) error

	// SoftDelete помечает запись tombstone: is_deleted=1, is_synced=0, свежая updated.
	SoftDelete(id string) error

	// Reorder атомарно переписывает qr_index 0..N-1 в порядке переданного списка,
	// ставит всем одну свежую updated и снимает is_synced.
	Reorder(records []model.Record) error

	// Search ищет подстроку по денормализованным отображаемым полям.
	Search(userID, term string) ([]model.Record, error)

	// FilterByType возвращает живые записи пользователя одной категории.
	FilterByType(userID string, t model.RecordType) ([]model.Record, error)

	// GetUnsynced возвращает записи с неподтверждёнными изменениями,
	// включая tombstone-записи.
	GetUnsynced(userID string) ([]model.Record, error)

	// TombstonedIDs возвращает id локально удалённых записей пользователя.
	TombstonedIDs(userID string) ([]string, error)

	// MarkSyncedBatch выставляет is_synced=1 для перечисленных id одним батчем.
	MarkSyncedBatch(ids []string) error

	// MaxUpdated возвращает watermark — максимальную updated пользователя
	// ("" если записей нет).
	MaxUpdated(userID string) (string, error)

	// NextIndex возвращает следующую свободную позицию qr_index пользователя.
	NextIndex(userID string) (int, error)
}

// TokenStore описывает абстракцию хранилища auth-токена на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
}

// UserContextStore абстракция для хранения контекста пользователя
// (последний логин и серверный user_id).
type UserContextStore interface {
	SaveLogin(login string) error
	LoadLogin() (string, error)
	SaveUserID(id string) error
	LoadUserID() (string, error)
}
