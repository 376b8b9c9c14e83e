package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/macro-relay/internal/services/macro"
)

var removeCmd = &cobra.Command{
	Use:   "remove <entity-id> <effect-name>",
	Short: "Remove a named effect from an entity",
	Long: `Remove an effect by name. Removing an effect that is already gone succeeds.

Examples:
  macroctl remove npc-1 Controlled --as gm`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCaller(); err != nil {
			return err
		}
		outcome, err := provider.MacroService.Dispel(cmd.Context(), &macro.DispelInput{
			CallerID: callerID,
			EntityID: args[0],
			Name:     args[1],
		})
		if err != nil {
			return err
		}
		printOutcome(cmd.OutOrStdout(), "effect", outcome)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
