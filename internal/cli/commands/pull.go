package commands

import (
	"context"
	"fmt"

	"orangepass/internal/cli/api"
	"orangepass/internal/cli/bootstrap"
	"orangepass/internal/cli/service"
	"orangepass/internal/config"
)

type pullCmd struct{}

func (pullCmd) Name() string { return "pull" }
func (pullCmd) Description() string {
	return "Скачать серверные записи новее локального watermark"
}
func (pullCmd) Usage() string { return "pull" }

func (pullCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()
	syncer := service.NewSyncer(repo, api.NewRecordsClient(cfg), nil)
	n, err := syncer.Pull(ctx, bootstrap.CurrentUserID())
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Получено записей: %d\n", n)
	return nil
}

func init() { RegisterCmd(pullCmd{}) }
