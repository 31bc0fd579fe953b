package commands

import (
	"context"
	"fmt"

	"orangepass/internal/cli/api"
	"orangepass/internal/cli/bootstrap"
	"orangepass/internal/cli/service"
	"orangepass/internal/config"
)

type syncCmd struct{}

func (syncCmd) Name() string { return "sync" }
func (syncCmd) Description() string {
	return "Вытолкнуть локальные изменения на сервер и скачать свежие"
}
func (syncCmd) Usage() string { return "sync" }

func (syncCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	userID := bootstrap.CurrentUserID()
	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()

	syncer := service.NewSyncer(repo, api.NewRecordsClient(cfg), nil)
	fmt.Fprintln(Out, "→ Синхронизация с сервером...")
	if err := syncer.Sync(ctx, userID); err != nil {
		return fmt.Errorf("push: %w", err)
	}
	// после push сразу подтягиваем серверные изменения, иначе пропущенные
	// из-за более свежей серверной копии записи останутся расходящимися
	n, err := syncer.Pull(ctx, userID)
	if err != nil {
		return fmt.Errorf("pull: %w", err)
	}
	fmt.Fprintf(Out, "✓ Синхронизировано, получено записей: %d\n", n)
	return nil
}

func init() { RegisterCmd(syncCmd{}) }
