package commands

import (
	"context"
	"fmt"

	"orangepass/internal/cli/bootstrap"
	"orangepass/internal/cli/service"
	"orangepass/internal/config"
)

type deleteCmd struct{}

func (deleteCmd) Name() string { return "delete" }
func (deleteCmd) Description() string {
	return "Удалить запись (локально — tombstone до подтверждения сервером)"
}
func (deleteCmd) Usage() string { return "delete <id>" }

func (deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()
	svc := service.NewRecordService(repo)
	if err := svc.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Deleted")
	return nil
}

func init() { RegisterCmd(deleteCmd{}) }
