package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"orangepass/internal/cli/api"
	fsrepo "orangepass/internal/cli/repo/fs"
	"orangepass/internal/config"
)

type statusResponse struct {
	Result string `json:"result"`
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Проверить доступность сервера и токен" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/test"
	token, _ := (fsrepo.AuthFSStore{}).Load()
	resp, body, err := api.PostJSON(ctx, endpoint, struct{}{}, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var sr statusResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintln(Out, "Status:", sr.Result)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
