package commands

import (
	"context"
	"fmt"

	"orangepass/internal/cli/bootstrap"
	"orangepass/internal/cli/catalog"
	"orangepass/internal/cli/model"
	"orangepass/internal/cli/service"
	"orangepass/internal/config"
)

type listCmd struct{}

func (listCmd) Name() string { return "list" }
func (listCmd) Description() string {
	return "Показать все записи в порядке отображения"
}
func (listCmd) Usage() string { return "list" }

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()
	svc := service.NewRecordService(repo)
	list, err := svc.List(bootstrap.CurrentUserID())
	if err != nil {
		return err
	}
	printRecords(list)
	return nil
}

// printRecords выводит записи списком с именами из справочника.
func printRecords(list []model.Record) {
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет записей")
		return
	}
	cat := catalog.New()
	for _, rec := range list {
		sync := ""
		if !rec.IsSynced {
			sync = " (unsynced)"
		}
		fmt.Fprintf(Out, "%2d. [%s] %s  %s %s%s\n",
			rec.QRIndex, rec.Type, cat.DisplayName(rec.Code), rec.AccountName, rec.AccountNumber, sync)
		fmt.Fprintf(Out, "    id=%s\n", rec.ID)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
}

func init() { RegisterCmd(listCmd{}) }
