package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/identityhub/idhub/internal/client/api"
	"github.com/identityhub/idhub/internal/client/form"
	"github.com/identityhub/idhub/internal/client/storage"
	"github.com/identityhub/idhub/internal/client/tui"
	"github.com/identityhub/idhub/internal/config"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return runLogin(cfg, client, log)
		},
	}
}

// runLogin shows the login screen and persists the issued session locally.
func runLogin(cfg *config.Config, client *api.Client, log *zap.Logger) error {
	store := storage.NewSessionStore("")
	if err := store.Load(); err != nil {
		log.Warn("failed to load session file", zap.Error(err))
	}

	var controller *form.LoginController
	controller = form.NewLoginController(client, func(resp api.LoginResponse) {
		session := storage.Session{Email: controller.Form.Email, Token: resp.Token}
		if err := store.Save(session); err != nil {
			log.Warn("failed to save session", zap.Error(err))
		}
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewLoginModel(ctx, controller, cfg.RPName())
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run login screen: %w", err)
	}

	if model.Done() {
		fmt.Println("Signed in. Session saved.")
	}
	return nil
}
