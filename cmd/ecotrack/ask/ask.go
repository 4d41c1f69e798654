package askcmder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faramade/ecotrack/chat"
	"github.com/faramade/ecotrack/config"
	"github.com/faramade/ecotrack/pkg/llm"
)

const askLongDesc = `Send a one-shot prompt to the completion provider.

This is the raw pass-through path: nothing is persisted and no history is
replayed. With --persona the EcoTrack instruction block is prepended, so the
reply follows the carbon-score format.

Examples:
  ecotrack ask "I drove to work, ate a beef burger for lunch, and used electricity for 8 hours."
  ecotrack ask --persona "I cycled everywhere this week."`

type askCommander struct {
	configPath string
	persona    bool
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send a one-shot prompt without persistence",
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to TOML config file")
	cmd.Flags().BoolVar(&cmder.persona, "persona", false, "Prepend the EcoTrack persona prompt")

	return cmd
}

func (c *askCommander) run(cmd *cobra.Command, message string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cfg.LLM.APIKey == "" {
		return errors.New("missing LLM API key (set GROQ_API_KEY)")
	}

	client := llm.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)

	orchestrator, err := chat.New(client, nil, chat.Config{
		Persona: c.persona,
		Options: &llm.Options{
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
			MaxTokens:   cfg.LLM.MaxTokens,
		},
	}, nil)
	if err != nil {
		return err
	}

	reply, err := orchestrator.Send(cmd.Context(), "cli", message)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
