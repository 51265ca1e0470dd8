package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/identityhub/idhub/internal/client/api"
	"github.com/identityhub/idhub/internal/client/form"
	"github.com/identityhub/idhub/internal/client/tui"
	"github.com/identityhub/idhub/internal/config"
	"github.com/identityhub/idhub/internal/logger"
)

// setup loads and checks configuration and builds the API client shared by
// the interactive commands. A failed configuration check halts the command.
func setup() (*config.Config, *api.Client, *zap.Logger, error) {
	log := logger.New()
	if err := log.Init("info"); err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := config.Load()
	if !cfg.Initialize(log.Log) {
		return nil, nil, nil, fmt.Errorf("configuration is invalid: set %s", config.EnvAPIBaseURL)
	}

	baseURL, err := cfg.APIBaseURL()
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, api.New(baseURL), log.Log, nil
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			// Cancelling the context aborts a request still in flight
			// when the screen is torn down.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			controller := form.NewRegistrationController(client, nil, log)
			model := tui.NewRegistrationModel(ctx, controller, cfg.RPName())

			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("run registration screen: %w", err)
			}

			if model.Done() {
				// Registration succeeded; continue to the login screen.
				return runLogin(cfg, client, log)
			}
			return nil
		},
	}
}
