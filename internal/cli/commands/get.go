package commands

import (
	"context"
	"fmt"

	"orangepass/internal/cli/bootstrap"
	"orangepass/internal/cli/catalog"
	"orangepass/internal/cli/service"
	"orangepass/internal/config"
)

type getCmd struct{}

func (getCmd) Name() string        { return "get" }
func (getCmd) Description() string { return "Показать запись по id (с payload)" }
func (getCmd) Usage() string       { return "get <id>" }

func (getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()
	svc := service.NewRecordService(repo)
	rec, err := svc.Get(args[0])
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Fprintln(Out, "Запись не найдена")
		return nil
	}
	cat := catalog.New()
	fmt.Fprintf(Out, "id:             %s\n", rec.ID)
	fmt.Fprintf(Out, "type:           %s\n", rec.Type)
	fmt.Fprintf(Out, "code:           %s (%s)\n", rec.Code, cat.DisplayName(rec.Code))
	fmt.Fprintf(Out, "metadata:       %s [%s]\n", rec.Metadata, rec.MetadataType)
	fmt.Fprintf(Out, "account_name:   %s\n", rec.AccountName)
	fmt.Fprintf(Out, "account_number: %s\n", rec.AccountNumber)
	fmt.Fprintf(Out, "updated:        %s\n", rec.Updated)
	fmt.Fprintf(Out, "synced:         %v\n", rec.IsSynced)
	return nil
}

func init() { RegisterCmd(getCmd{}) }
