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

type addCmd struct{}

func (addCmd) Name() string { return "add" }
func (addCmd) Description() string {
	return "Добавить QR-запись (bank|store|ewallet)"
}
func (addCmd) Usage() string {
	return "add <type> <code> <metadata> [<account_name> [<account_number>]] [--barcode]"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	// необязательный флаг --barcode может стоять в любом месте
	metaType := model.MetadataQR
	rest := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--barcode" {
			metaType = model.MetadataBarcode
			continue
		}
		rest = append(rest, a)
	}
	if len(rest) < 3 || len(rest) > 5 {
		return ErrUsage
	}
	recType := model.RecordType(rest[0])
	code := rest[1]
	metadata := rest[2]
	var accName, accNumber string
	if len(rest) >= 4 {
		accName = rest[3]
	}
	if len(rest) == 5 {
		accNumber = rest[4]
	}

	cat := catalog.New()
	if _, ok := cat.Get(code); !ok {
		fmt.Fprintf(Out, "! Код %q не найден в справочнике, запись будет без отображаемого имени\n", code)
	}

	repo, done, err := bootstrap.OpenRecordRepo(cfg, nil)
	if err != nil {
		return err
	}
	defer done()
	svc := service.NewRecordService(repo)
	id, err := svc.Create(service.CreateInput{
		UserID:        bootstrap.CurrentUserID(),
		Code:          code,
		Metadata:      metadata,
		MetadataType:  metaType,
		AccountName:   accName,
		AccountNumber: accNumber,
		Type:          recType,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:   %s\n", id)
	fmt.Fprintf(Out, "  code: %s (%s)\n", code, cat.DisplayName(code))
	return nil
}

func init() { RegisterCmd(addCmd{}) }
