package commands

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"orangepass/internal/config"
)

var idRe = regexp.MustCompile(`id=(\S+)`)

func runCmd(t *testing.T, cfg *config.Config, name string, args ...string) int {
	t.Helper()
	c, ok := Get(name)
	if !ok {
		t.Fatalf("command %q not registered", name)
	}
	err := c.Run(context.Background(), cfg, args)
	if err == nil {
		return 0
	}
	if err == ErrUsage {
		return 2
	}
	t.Logf("%s error: %v", name, err)
	return 1
}

func TestAddListDelete_LocalGuestWorkflow(t *testing.T) {
	cfg, buf := setupCmdEnv(t)

	// add двух записей, одна с --barcode
	if code := runCmd(t, cfg, "add", "bank", "VCB", "qr-payload-1", "Nguyen Van A", "0123456789"); code != 0 {
		t.Fatalf("add #1 exit %d: %s", code, buf.String())
	}
	if code := runCmd(t, cfg, "add", "ewallet", "MOMO", "bar-payload-2", "--barcode"); code != 0 {
		t.Fatalf("add #2 exit %d: %s", code, buf.String())
	}
	// неизвестный код — предупреждение, не ошибка
	buf.Reset()
	if code := runCmd(t, cfg, "add", "store", "NOCODE", "qr-payload-3"); code != 0 {
		t.Fatalf("add #3 exit %d", code)
	}
	if !strings.Contains(buf.String(), "не найден в справочнике") {
		t.Fatalf("missing catalog warning: %s", buf.String())
	}

	// list показывает все три в порядке добавления
	buf.Reset()
	if code := runCmd(t, cfg, "list"); code != 0 {
		t.Fatalf("list exit %d", code)
	}
	out := buf.String()
	if !strings.Contains(out, "Vietcombank") || !strings.Contains(out, "MoMo") || !strings.Contains(out, "Всего: 3") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
	if !strings.Contains(out, "(unsynced)") {
		t.Fatalf("local records must be marked unsynced:\n%s", out)
	}

	ids := idRe.FindAllStringSubmatch(out, -1)
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids in output, got %d:\n%s", len(ids), out)
	}

	// delete средней записи
	buf.Reset()
	if code := runCmd(t, cfg, "delete", ids[1][1]); code != 0 {
		t.Fatalf("delete exit %d: %s", code, buf.String())
	}

	buf.Reset()
	if code := runCmd(t, cfg, "list"); code != 0 {
		t.Fatalf("list exit %d", code)
	}
	out = buf.String()
	if !strings.Contains(out, "Всего: 2") {
		t.Fatalf("expected 2 records after delete:\n%s", out)
	}
	// индексы остались плотными с нуля
	if !strings.Contains(out, " 0. ") || !strings.Contains(out, " 1. ") {
		t.Fatalf("indexes must stay dense:\n%s", out)
	}
}

func TestSearchAndFilter_Commands(t *testing.T) {
	cfg, buf := setupCmdEnv(t)

	runCmd(t, cfg, "add", "bank", "TCB", "qr-1", "Tran Binh")
	runCmd(t, cfg, "add", "store", "HIGHLANDS", "qr-2")

	buf.Reset()
	if code := runCmd(t, cfg, "search", "binh"); code != 0 {
		t.Fatalf("search exit %d", code)
	}
	if !strings.Contains(buf.String(), "Techcombank") || strings.Contains(buf.String(), "Highlands") {
		t.Fatalf("unexpected search output:\n%s", buf.String())
	}

	buf.Reset()
	if code := runCmd(t, cfg, "filter", "store"); code != 0 {
		t.Fatalf("filter exit %d", code)
	}
	if !strings.Contains(buf.String(), "Highlands") || strings.Contains(buf.String(), "Techcombank") {
		t.Fatalf("unexpected filter output:\n%s", buf.String())
	}

	// неизвестная категория — usage
	if code := runCmd(t, cfg, "filter", "restaurant"); code == 0 {
		t.Fatal("unknown type must fail")
	}
}

func TestSync_GuestModeRejected(t *testing.T) {
	cfg, buf := setupCmdEnv(t)
	runCmd(t, cfg, "add", "bank", "VCB", "qr-1")

	buf.Reset()
	if code := runCmd(t, cfg, "sync"); code == 0 {
		t.Fatal("sync without login must fail")
	}
}
