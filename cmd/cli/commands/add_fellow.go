package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
	"github.com/jakechorley/tox-oncall/pkg/core/services"
)

// AddFellowCmd creates the addFellow command
func AddFellowCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addFellow <name> <first-year|second-year>",
		Short: "Add a fellow to the stored roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store()
			if err != nil {
				return err
			}

			fellow, err := services.AddFellow(app.Ctx, store, app.Logger, args[0], model.Tier(args[1]))
			if err != nil {
				return err
			}

			successStyle.Fprintf(cmd.OutOrStdout(), "\n✓ Added %s (%s) as %s\n\n", fellow.Name, fellow.ID, fellow.Tier)
			return nil
		},
	}
}
