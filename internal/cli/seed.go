package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ericogr/squadxp/internal/random"
	"github.com/ericogr/squadxp/internal/service"
)

func seedCmd(g *globalFlags) *cobra.Command {
	var playerID uint

	c := &cobra.Command{
		Use:   "seed",
		Short: "Assign initial XP to a free agent from their first qualifying matches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if playerID == 0 {
				return errors.New("--player is required")
			}
			rt, err := g.open()
			if err != nil {
				return err
			}
			seed, err := rt.baseSeed()
			if err != nil {
				return err
			}
			res, err := service.SeedPlayer(cmd.Context(), rt.repo, rt.cfg.Settings, playerID, random.New(seed))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	c.Flags().UintVar(&playerID, "player", 0, "player id (required)")
	_ = c.MarkFlagRequired("player")
	return c
}
