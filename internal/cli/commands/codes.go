package commands

import (
	"context"
	"fmt"

	"orangepass/internal/cli/catalog"
	"orangepass/internal/cli/model"
	"orangepass/internal/config"
)

type codesCmd struct{}

func (codesCmd) Name() string { return "codes" }
func (codesCmd) Description() string {
	return "Справочник кодов (поиск без учёта диакритики)"
}
func (codesCmd) Usage() string { return "codes [<term>|bank|store|ewallet]" }

func (codesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	cat := catalog.New()
	var entries []catalog.Entry
	if len(args) == 0 {
		entries = cat.Search("")
	} else if t := model.RecordType(args[0]); model.ValidType(t) {
		entries = cat.ByType(t)
	} else {
		entries = cat.Search(args[0])
	}
	if len(entries) == 0 {
		fmt.Fprintln(Out, "Ничего не найдено")
		return nil
	}
	for _, e := range entries {
		bin := ""
		if e.BIN != "" {
			bin = "  bin=" + e.BIN
		}
		fmt.Fprintf(Out, "%-14s [%s] %s%s\n", e.Code, e.Type, e.Name, bin)
	}
	return nil
}

func init() { RegisterCmd(codesCmd{}) }
