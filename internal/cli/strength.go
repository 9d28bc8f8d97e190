package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ericogr/squadxp/internal/game"
	"github.com/ericogr/squadxp/internal/service"
)

type strengthOutput struct {
	TeamID uint    `json:"team_id"`
	Rating float64 `json:"rating"`
	Squad  []uint  `json:"squad"`
}

func strengthCmd(g *globalFlags) *cobra.Command {
	var teamID, userTeamID, userPlayerID uint

	c := &cobra.Command{
		Use:   "strength",
		Short: "Show a team's rating and the squad it is computed from",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if teamID == 0 {
				return errors.New("--team is required")
			}
			rt, err := g.open()
			if err != nil {
				return err
			}
			var user game.UserContext
			if userTeamID != 0 {
				user.TeamID = &userTeamID
			}
			if userPlayerID != 0 {
				user.PlayerID = &userPlayerID
			}
			s, err := service.TeamStrength(cmd.Context(), rt.repo, rt.cfg.Settings, teamID, user)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), strengthOutput{TeamID: s.TeamID, Rating: s.Rating, Squad: s.SquadIDs()})
		},
	}

	c.Flags().UintVar(&teamID, "team", 0, "team id (required)")
	c.Flags().UintVar(&userTeamID, "user-team", 0, "the user's own team id")
	c.Flags().UintVar(&userPlayerID, "user-player", 0, "the user's own player id")
	_ = c.MarkFlagRequired("team")
	return c
}
