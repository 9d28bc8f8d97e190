package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ericogr/squadxp/internal/api"
	"github.com/ericogr/squadxp/internal/constants"
	"github.com/ericogr/squadxp/internal/logging"
)

func serveCmd(g *globalFlags) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the progression HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			rt, err := g.open()
			if err != nil {
				return err
			}
			if addr != "" {
				rt.cfg.Addr = addr
			}
			gin.SetMode(gin.ReleaseMode)
			router := api.NewRouter(api.NewProgressionHandler(rt.repo, rt.cfg.Settings, rt.cfg.Seed))
			logging.Info("Server started", logging.Fields{constants.LogFieldAddr: rt.cfg.Addr})
			return router.Run(rt.cfg.Addr)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "listen address (defaults to $"+constants.EnvAddr+")")
	return c
}
