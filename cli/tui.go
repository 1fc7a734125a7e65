package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yllada/redwarp/tui"
)

func (a *app) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return fmt.Errorf("the terminal form needs an interactive terminal; use \"redwarp generate\" instead")
			}

			final, err := tui.Run(cmd.Context(), a.cfg, a.newGenerator(a.cfg.Paths()))
			if err != nil {
				return err
			}

			res, runErr := final.Result()
			if (res != nil || runErr != nil) && a.cfg.ShowNotifications {
				a.sendNotification(res, runErr)
			}
			if res != nil {
				printResult(cmd.OutOrStdout(), res)
			} else if runErr != nil {
				printError(cmd.ErrOrStderr(), runErr)
			}
			return nil
		},
	}
}
