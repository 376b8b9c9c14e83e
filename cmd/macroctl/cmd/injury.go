package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/macro-relay/internal/services/macro"
)

var injuryAmount int

var injureCmd = &cobra.Command{
	Use:   "injure <target-id>",
	Short: "Add injuries to a target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCaller(); err != nil {
			return err
		}
		outcome, err := provider.MacroService.Injure(cmd.Context(), &macro.InjuryInput{
			CallerID: callerID,
			TargetID: args[0],
			Amount:   injuryAmount,
		})
		if err != nil {
			return err
		}
		printOutcome(cmd.OutOrStdout(), "injury", outcome)
		return nil
	},
}

var healCmd = &cobra.Command{
	Use:   "heal <target-id>",
	Short: "Remove injuries from a target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCaller(); err != nil {
			return err
		}
		outcome, err := provider.MacroService.Heal(cmd.Context(), &macro.InjuryInput{
			CallerID: callerID,
			TargetID: args[0],
			Amount:   injuryAmount,
		})
		if err != nil {
			return err
		}
		printOutcome(cmd.OutOrStdout(), "injury", outcome)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(injureCmd, healCmd)
	injureCmd.Flags().IntVarP(&injuryAmount, "amount", "n", 1, "Injuries to add")
	healCmd.Flags().IntVarP(&injuryAmount, "amount", "n", 1, "Injuries to remove")
}
