package commands

import (
	"context"
	"fmt"

	"orangepass/internal/cli/bootstrap"
	"orangepass/internal/cli/model"
	"orangepass/internal/cli/service"
	"orangepass/internal/config"
)

type editCmd struct{}

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "Изменить поле записи" }
func (editCmd) Usage() string {
	return "edit <id> <metadata|metadata-type|account-name|account-number> <value>"
}

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	id, field, value := args[0], args[1], args[2]
	var in service.EditInput
	switch field {
	case "metadata":
		in.Metadata = &value
	case "metadata-type":
		mt := model.MetadataType(value)
		in.MetadataType = &mt
	case "account-name":
		in.AccountName = &value
	case "account-number":
		in.AccountNumber = &value
	default:
		return ErrUsage
	}
	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()
	svc := service.NewRecordService(repo)
	if err := svc.Edit(id, in); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Updated")
	return nil
}

func init() { RegisterCmd(editCmd{}) }
