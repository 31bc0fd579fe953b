package commands

import (
	"context"
	"fmt"

	"orangepass/internal/cli/bootstrap"
	"orangepass/internal/cli/service"
	"orangepass/internal/config"
)

type reorderCmd struct{}

func (reorderCmd) Name() string { return "reorder" }
func (reorderCmd) Description() string {
	return "Переставить записи: перечислить ВСЕ id в новом порядке"
}
func (reorderCmd) Usage() string { return "reorder <id> <id> ..." }

func (reorderCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()
	svc := service.NewRecordService(repo)
	if err := svc.ReorderByIDs(bootstrap.CurrentUserID(), args); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Reordered")
	return nil
}

func init() { RegisterCmd(reorderCmd{}) }
