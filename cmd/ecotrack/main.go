package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	askcmder "github.com/faramade/ecotrack/cmd/ecotrack/ask"
	servecmder "github.com/faramade/ecotrack/cmd/ecotrack/serve"
)

func main() {
	// Local runs keep credentials in a .env file, like the original service.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "ecotrack",
		Short: "EcoTrack carbon footprint chat backend",
		Long: `ecotrack runs the EcoTrack conversational backend: a carbon
footprint assistant that persists per-user conversation history, guards the
chat endpoint with bearer tokens, and emails scheduled tips.`,
		SilenceUsage: true,
	}

	root.AddCommand(servecmder.NewServeCmd())
	root.AddCommand(askcmder.NewAskCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
