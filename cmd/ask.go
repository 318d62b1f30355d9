package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"horoscopo/internal/horoscope"
)

func newAskCommand() *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:     "ask <sign>",
		Short:   "Fetch one horoscope and print it",
		Example: "  horoscopo ask leo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if lenient {
				cfg.Horoscope.FailureMode = horoscope.Lenient.String()
			}

			svc, err := newService(cfg, newLogger(os.Stderr, cfg))
			if err != nil {
				return err
			}

			message, err := svc.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "print the fallback message instead of failing when the provider errors")
	return cmd
}
