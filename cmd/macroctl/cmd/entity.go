package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/macro-relay/internal/domain/entity"
	"github.com/KirkDiggler/macro-relay/internal/uuid"
)

var (
	entityID    string
	entityName  string
	entityOwner string
	entityAttrs map[string]int
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Create and inspect entities",
}

var entityCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an entity owned by a participant",
	Long: `Create an entity with base characteristic values.

Examples:
  macroctl entity create --as 1234 --name Mage --attr strength=2,will=5
  macroctl entity create --as gm --id npc-1 --name Goblin --attr strength=3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		owner := entityOwner
		if owner == "" {
			owner = callerID
		}
		id := entityID
		if id == "" {
			id = uuid.NewGoogleUUIDGenerator().New()
		}

		e := &entity.Entity{
			ID:         id,
			OwnerID:    owner,
			Name:       entityName,
			Attributes: entityAttrs,
		}
		if err := provider.EffectService.CreateEntity(cmd.Context(), e); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", e.Name, e.ID)
		return nil
	},
}

var entityShowCmd = &cobra.Command{
	Use:   "show <entity-id>",
	Short: "Show an entity and its active effects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := provider.EffectService.GetEntity(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printEntity(cmd.OutOrStdout(), e)
		return nil
	},
}

var entityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entities owned by the participant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireCaller(); err != nil {
			return err
		}
		list, err := provider.EffectService.ListEntities(cmd.Context(), callerID)
		if err != nil {
			return err
		}
		for _, e := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d effects\n", e.ID, e.Name, len(e.Effects))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(entityCmd)
	entityCmd.AddCommand(entityCreateCmd, entityShowCmd, entityListCmd)

	entityCreateCmd.Flags().StringVar(&entityID, "id", "", "Entity id (generated when empty)")
	entityCreateCmd.Flags().StringVar(&entityName, "name", "", "Display name")
	entityCreateCmd.Flags().StringVar(&entityOwner, "owner", "", "Owning participant (defaults to --as)")
	entityCreateCmd.Flags().StringToIntVar(&entityAttrs, "attr", nil, "Base characteristics, e.g. strength=3,will=4")
	_ = entityCreateCmd.MarkFlagRequired("name")
}
