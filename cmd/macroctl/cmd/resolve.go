package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/macro-relay/internal/domain/characteristic"
)

var resolveDefault bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <entity-id> <characteristic>",
	Short: "Show the effective value of a characteristic",
	Long: `Resolve a characteristic from the entity's current state.

The value is the base minus injuries (never below 1), plus every effect bonus
for that characteristic (again never below 1).

Examples:
  macroctl resolve mage strength
  macroctl resolve npc-1 charisma --default   # absent values count as 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			res *characteristic.Resolution
			err error
		)
		if resolveDefault {
			res, err = provider.EffectService.ResolveWithDefault(cmd.Context(), args[0], args[1])
		} else {
			res, err = provider.EffectService.Resolve(cmd.Context(), args[0], args[1])
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveDefault, "default", false, "Use a base of 3 when the entity has no value")
}
