package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"orangepass/internal/cli/model"
	"orangepass/internal/cli/repo"
)

// ErrGuestSync — гостевой пользователь не синхронизируется.
var ErrGuestSync = errors.New("guest records cannot be synced: login required")

// RemoteClient — порт удалённого сервиса записей (collection-style CRUD).
type RemoteClient interface {
	CreateRecord(ctx context.Context, rec model.Record) error
	UpdateRecord(ctx context.Context, rec model.Record) error
	DeleteRecord(ctx context.Context, id string) error
	UpdatedMap(ctx context.Context, ids []string) (map[string]string, error)
	ListSince(ctx context.Context, userID, sinceUpdated string, excludeIDs []string) ([]model.Record, error)
}

// Syncer согласует локальное хранилище с удалённым сервисом для одного
// пользователя за вызов. Конкурентные вызовы Sync по одному пользователю
// сериализуются внутренним per-user мьютексом.
type Syncer struct {
	repo   repo.RecordRepository
	remote RemoteClient
	logger *zap.SugaredLogger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSyncer создаёт реконсилер поверх переданных портов.
func NewSyncer(r repo.RecordRepository, remote RemoteClient, logger *zap.SugaredLogger) *Syncer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Syncer{repo: r, remote: remote, logger: logger, locks: map[string]*sync.Mutex{}}
}

func (s *Syncer) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Sync выталкивает локальные несинхронизированные изменения на сервер:
// удаления — последовательно, создания и обновления — параллельно.
// Вызов атомарен в смысле all-or-nothing: первая же ошибка прерывает весь
// проход, is_synced не меняется и следующий Sync повторит всё заново.
//
// Запись, пропущенная из-за более свежей серверной копии, всё равно
// помечается синхронизированной: локальное содержимое при этом может
// отличаться от серверного, пока вызывающая сторона не сделает Pull.
func (s *Syncer) Sync(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrGuestSync
	}
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	unsynced, err := s.repo.GetUnsynced(userID)
	if err != nil {
		return err
	}
	if len(unsynced) == 0 {
		// нечего выталкивать — ни одного удалённого вызова
		return nil
	}

	var deleted, modified []model.Record
	for _, rec := range unsynced {
		if rec.IsDeleted {
			deleted = append(deleted, rec)
		} else {
			modified = append(modified, rec)
		}
	}
	s.logger.Infow("sync: push start", "user_id", userID,
		"deleted", len(deleted), "modified", len(modified))

	for _, rec := range deleted {
		if err := s.remote.DeleteRecord(ctx, rec.ID); err != nil {
			return err
		}
	}

	var creates, updates []model.Record
	if len(modified) > 0 {
		ids := make([]string, 0, len(modified))
		for _, rec := range modified {
			ids = append(ids, rec.ID)
		}
		remoteUpdated, err := s.remote.UpdatedMap(ctx, ids)
		if err != nil {
			return err
		}
		for _, rec := range modified {
			remoteTS, exists := remoteUpdated[rec.ID]
			switch {
			case !exists:
				creates = append(creates, rec)
			case model.UpdatedAfter(rec.Updated, remoteTS):
				updates = append(updates, rec)
			default:
				// серверная копия не старее локальной — сервер побеждает
				s.logger.Debugw("sync: skip, remote newer", "id", rec.ID)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, rec := range creates {
		rec := rec
		g.Go(func() error { return s.remote.CreateRecord(gctx, rec) })
	}
	for _, rec := range updates {
		rec := rec
		g.Go(func() error { return s.remote.UpdateRecord(gctx, rec) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	ids := make([]string, 0, len(unsynced))
	for _, rec := range unsynced {
		ids = append(ids, rec.ID)
	}
	if err := s.repo.MarkSyncedBatch(ids); err != nil {
		return err
	}
	s.logger.Infow("sync: push done", "user_id", userID,
		"created", len(creates), "updated", len(updates), "skipped",
		len(modified)-len(creates)-len(updates))
	return nil
}

// FetchRemoteSince возвращает серверные записи пользователя новее локального
// watermark, исключая локальные tombstone-id; результат отсортирован по
// updated и уже помечен is_synced для прямой передачи в UpsertBatch.
func (s *Syncer) FetchRemoteSince(ctx context.Context, userID string) ([]model.Record, error) {
	if userID == "" {
		return nil, ErrGuestSync
	}
	watermark, err := s.repo.MaxUpdated(userID)
	if err != nil {
		return nil, err
	}
	tombstoned, err := s.repo.TombstonedIDs(userID)
	if err != nil {
		return nil, err
	}
	recs, err := s.remote.ListSince(ctx, userID, watermark, tombstoned)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		recs[i].IsSynced = true
	}
	return recs, nil
}

// Pull скачивает свежие серверные записи и применяет их локально.
// Возвращает число полученных записей.
func (s *Syncer) Pull(ctx context.Context, userID string) (int, error) {
	recs, err := s.FetchRemoteSince(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}
	if err := s.repo.UpsertBatch(recs); err != nil {
		return 0, err
	}
	return len(recs), nil
}
