package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/services/macro"
)

var (
	maintainCaster    string
	maintainAggregate string
	maintainInstance  string
	maintainMax       int
	maintainBonuses   map[string]int
)

var maintainCmd = &cobra.Command{
	Use:   "maintain <target-id>",
	Short: "Start a caster-maintained effect on a target",
	Long: `Apply an effect to a target and count it on the caster.

Examples:
  macroctl maintain npc-1 --as 1234 --caster mage \
      --aggregate "Mind Control" --instance "Controlled" --max 2 --bonus will=-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCaller(); err != nil {
			return err
		}

		var template *entity.Effect
		if len(maintainBonuses) > 0 {
			template = &entity.Effect{Name: maintainInstance, Bonuses: maintainBonuses}
		}

		result, err := provider.MacroService.Maintain(cmd.Context(), &macro.MaintainInput{
			CallerID:  callerID,
			CasterID:  maintainCaster,
			TargetID:  args[0],
			Aggregate: maintainAggregate,
			Instance:  maintainInstance,
			MaxActive: maintainMax,
			Effect:    template,
		})
		if err != nil {
			return err
		}
		printPaired(cmd.OutOrStdout(), result)
		return nil
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release <target-id>",
	Short: "End a caster-maintained effect on a target",
	Long: `Remove the instance from the target and uncount it on its caster.

The caster and aggregate are read from the instance when not given.

Examples:
  macroctl release npc-1 --as 1234 --instance Controlled`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireCaller(); err != nil {
			return err
		}

		result, err := provider.MacroService.Release(cmd.Context(), &macro.ReleaseInput{
			CallerID:  callerID,
			CasterID:  maintainCaster,
			TargetID:  args[0],
			Aggregate: maintainAggregate,
			Instance:  maintainInstance,
		})
		if err != nil {
			return err
		}
		printPaired(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(maintainCmd, releaseCmd)

	for _, c := range []*cobra.Command{maintainCmd, releaseCmd} {
		c.Flags().StringVar(&maintainCaster, "caster", "", "Entity maintaining the effect")
		c.Flags().StringVar(&maintainAggregate, "aggregate", "", "Effect counted on the caster")
		c.Flags().StringVar(&maintainInstance, "instance", "", "Effect placed on the target")
		_ = c.MarkFlagRequired("instance")
	}
	_ = maintainCmd.MarkFlagRequired("caster")
	_ = maintainCmd.MarkFlagRequired("aggregate")
	maintainCmd.Flags().IntVar(&maintainMax, "max", 0, "Most targets the caster may hold at once (0 for no limit)")
	maintainCmd.Flags().StringToIntVar(&maintainBonuses, "bonus", nil, "Characteristic bonuses on the instance, e.g. will=-1")
}
