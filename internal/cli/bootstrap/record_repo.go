package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"orangepass/internal/cli/repo"
	fsrepo "orangepass/internal/cli/repo/fs"
	reposqlite "orangepass/internal/cli/repo/sqlite"
	"orangepass/internal/config"
)

// OpenRecordRepo открывает локальный репозиторий QR-записей, выполняет
// миграции и возвращает (repo, cleanup, error). cleanup необходимо вызвать
// после окончания работы, чтобы закрыть соединение с БД.
func OpenRecordRepo(cfg *config.Config, logger *zap.SugaredLogger) (repo.RecordRepository, func() error, error) {
	r, err := reposqlite.Open(cfg.ClientDBPath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open client db: %w", err)
	}
	if err := r.Migrate(); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("migrate client db: %w", err)
	}
	cleanup := func() error { return r.Close() }
	return r, cleanup, nil
}

// CurrentUserID возвращает серверный user_id активного пользователя;
// "" — гостевой режим (без логина всё работает локально, но sync недоступен).
func CurrentUserID() string {
	id, err := (fsrepo.AuthFSStore{}).LoadUserID()
	if err != nil {
		return ""
	}
	return id
}
