package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/macro-relay/internal/dice"
	"github.com/KirkDiggler/macro-relay/internal/services/macro"
)

var (
	checkSides    int
	checkModifier int
	checkDefault  bool
)

var checkCmd = &cobra.Command{
	Use:   "check <entity-id> <characteristic>",
	Short: "Roll a characteristic check",
	Long: `Roll one die per point of the characteristic's effective value.

Examples:
  macroctl check mage will --as 1234
  macroctl check mage strength --sides 10 --modifier 2 --as 1234`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCaller(); err != nil {
			return err
		}

		result, err := provider.MacroService.Check(cmd.Context(), &macro.CheckInput{
			CallerID:       callerID,
			EntityID:       args[0],
			Characteristic: args[1],
			Sides:          checkSides,
			Modifier:       checkModifier,
			UseDefault:     checkDefault,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", result.Resolution, result.Roll)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&checkSides, "sides", dice.DefaultSides, "Sides per die")
	checkCmd.Flags().IntVar(&checkModifier, "modifier", 0, "Flat modifier added to the roll")
	checkCmd.Flags().BoolVar(&checkDefault, "default", false, "Use a base of 3 when the entity has no value")
}
