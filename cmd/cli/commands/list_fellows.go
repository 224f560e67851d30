package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/tox-oncall/pkg/core/services"
)

// ListFellowsCmd creates the listFellows command
func ListFellowsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listFellows",
		Short: "List fellows with their recorded duty shifts and off days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")

			reader, err := app.RosterSource(source)
			if err != nil {
				return err
			}

			entries, err := services.ListRoster(app.Ctx, reader, app.Logger)
			if err != nil {
				return err
			}

			renderRoster(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().String("source", "", "Roster source: config or postgres (default: postgres when configured)")

	return cmd
}
