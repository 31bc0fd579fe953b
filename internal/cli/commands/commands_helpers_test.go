package commands

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"

	"orangepass/internal/config"
)

// setupCmdEnv изолирует конфиг-каталог и локальную БД в temp и
// перехватывает вывод команд в буфер.
func setupCmdEnv(t *testing.T) (*config.Config, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}

	buf := &bytes.Buffer{}
	prev := Out
	Out = buf
	t.Cleanup(func() { Out = prev })

	cfg := &config.Config{
		ClientDBPath: filepath.Join(dir, "opcli.db"),
		ServerURL:    "http://localhost:0",
	}
	return cfg, buf
}
