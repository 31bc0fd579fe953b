package commands

import (
	"context"

	"orangepass/internal/cli/bootstrap"
	"orangepass/internal/cli/service"
	"orangepass/internal/config"
)

type searchCmd struct{}

func (searchCmd) Name() string        { return "search" }
func (searchCmd) Description() string { return "Поиск записей по подстроке" }
func (searchCmd) Usage() string       { return "search <term>" }

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()
	svc := service.NewRecordService(repo)
	list, err := svc.Search(bootstrap.CurrentUserID(), args[0])
	if err != nil {
		return err
	}
	printRecords(list)
	return nil
}

func init() { RegisterCmd(searchCmd{}) }
