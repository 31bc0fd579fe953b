package commands

import (
	"context"

	"orangepass/internal/cli/bootstrap"
	"orangepass/internal/cli/model"
	"orangepass/internal/cli/service"
	"orangepass/internal/config"
)

type filterCmd struct{}

func (filterCmd) Name() string        { return "filter" }
func (filterCmd) Description() string { return "Показать записи одной категории" }
func (filterCmd) Usage() string       { return "filter <bank|store|ewallet>" }

func (filterCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	t := model.RecordType(args[0])
	if !model.ValidType(t) {
		return ErrUsage
	}
	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()
	svc := service.NewRecordService(repo)
	list, err := svc.FilterByType(bootstrap.CurrentUserID(), t)
	if err != nil {
		return err
	}
	printRecords(list)
	return nil
}

func init() { RegisterCmd(filterCmd{}) }
