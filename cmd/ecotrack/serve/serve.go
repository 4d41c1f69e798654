package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faramade/ecotrack/auth"
	"github.com/faramade/ecotrack/chat"
	"github.com/faramade/ecotrack/config"
	"github.com/faramade/ecotrack/notify"
	"github.com/faramade/ecotrack/pkg/llm"
	"github.com/faramade/ecotrack/pkg/logger"
	"github.com/faramade/ecotrack/server"
	"github.com/faramade/ecotrack/store"
)

const serveLongDesc = `Run the EcoTrack HTTP backend.

Serves the auth and chat endpoints, persists conversation turns in SQLite
(or in memory when no database path is configured), and optionally emails a
scheduled daily tip.

Examples:
  ecotrack serve
  ecotrack serve --config /etc/ecotrack/ecotrack.toml --debug`

type serveCommander struct {
	configPath string
	debug      bool
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the EcoTrack HTTP backend",
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to TOML config file")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	log := logger.NewLogger(c.debug)
	defer log.Sync()

	var st store.Store
	if cfg.Database.Path != "" {
		st, err = store.NewSQLiteStore(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		log.Info("using SQLite storage", zap.String("path", cfg.Database.Path))
	} else {
		st = store.NewMemoryStore()
		log.Info("using in-memory storage")
	}
	defer st.Close()

	client := llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)

	orchestrator, err := chat.New(client, st, chat.Config{
		Persona:      cfg.Chat.Persona,
		Persist:      cfg.Chat.Persist,
		HistoryLimit: cfg.Chat.HistoryLimit,
		Options: &llm.Options{
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
			MaxTokens:   cfg.LLM.MaxTokens,
		},
	}, log)
	if err != nil {
		return err
	}

	authService := auth.NewService(st, []byte(cfg.Auth.Secret),
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	if cfg.Notify.Enabled {
		mailer := notify.NewSMTPMailer(cfg.Notify.SMTPHost, cfg.Notify.SMTPPort,
			cfg.Notify.SMTPUser, cfg.Notify.SMTPPass, cfg.Notify.From)
		notifier := notify.New(orchestrator, mailer, log)
		if err := notifier.Add(notify.Job{
			Name:      "daily-tip",
			Spec:      cfg.Notify.CronSpec,
			Prompt:    cfg.Notify.Prompt,
			Subject:   cfg.Notify.Subject,
			Recipient: cfg.Notify.Recipient,
		}); err != nil {
			return err
		}
		notifier.Start()
		defer notifier.Stop()
	}

	srv := server.New(server.Config{ListenAddr: cfg.Server.Addr}, authService, orchestrator, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		return srv.Shutdown()
	}
}
