package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"orangepass/internal/cli/api"
	fsrepo "orangepass/internal/cli/repo/fs"
	"orangepass/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Register a new user and store auth cookie" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	login := args[0]
	password := args[1]
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/register"
	req := LoginRequest{Login: login, Password: password}
	resp, body, err := api.PostJSON(ctx, endpoint, req, "")
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		if err := api.PersistAuthFromResponse(resp); err != nil {
			return fmt.Errorf("saving auth: %w", err)
		}
		var lr loginResponse
		if err := json.Unmarshal(body, &lr); err != nil || lr.UserID == "" {
			return fmt.Errorf("bad register response: %s", strings.TrimSpace(string(body)))
		}
		store := fsrepo.AuthFSStore{}
		if err := store.SaveLogin(login); err != nil {
			return fmt.Errorf("saving login: %w", err)
		}
		if err := store.SaveUserID(lr.UserID); err != nil {
			return fmt.Errorf("saving user id: %w", err)
		}
		fmt.Fprintln(Out, "Registered successfully")
		return nil
	case http.StatusConflict:
		return errors.New("login already taken")
	default:
		return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
	}
}

func init() { RegisterCmd(registerCmd{}) }
