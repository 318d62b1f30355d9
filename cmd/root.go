package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"horoscopo/internal/config"
	"horoscopo/internal/horoscope"
	"horoscopo/internal/provider/factory"
)

// NewRootCommand builds the horoscopo command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "horoscopo",
		Short:         "horoscopo answers daily horoscopes through an OpenAI-compatible provider",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "path to YAML configuration file")
	root.PersistentFlags().String("env-file", ".env", "dotenv file loaded before configuration")

	root.AddCommand(newServeCommand(), newAskCommand())
	return root
}

// Execute runs the CLI with the provided arguments.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel()}))
}

func newService(cfg config.Config, logger *slog.Logger) (*horoscope.Service, error) {
	client, err := factory.NewChatClient(cfg.Provider)
	if err != nil {
		return nil, err
	}

	return horoscope.NewService(client, horoscope.Options{
		Model:       cfg.Provider.Model,
		Temperature: cfg.Provider.Temperature,
		Timeout:     cfg.Provider.Timeout,
		Mode:        cfg.FailureMode(),
		Logger:      logger,
	})
}
