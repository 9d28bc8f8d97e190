package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericogr/squadxp/internal/service"
)

type applyOutput struct {
	MatchID uint            `json:"match_id"`
	Report  *service.Report `json:"report,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func applyCmd(g *globalFlags) *cobra.Command {
	var file string
	var concurrency int

	c := &cobra.Command{
		Use:   "apply",
		Short: "Record results from a YAML batch file and apply progression",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bf, err := LoadBatchFile(file)
			if err != nil {
				return err
			}
			if concurrency > 0 {
				bf.Concurrency = concurrency
			}
			rt, err := g.open()
			if err != nil {
				return err
			}
			base := bf.Seed
			if base == 0 {
				if base, err = rt.baseSeed(); err != nil {
					return err
				}
			}

			results, err := ApplyBatchFile(cmd.Context(), rt.repo, rt.cfg.Settings, bf, base)
			if err != nil {
				return err
			}
			out := make([]applyOutput, len(results))
			failed := 0
			for i, r := range results {
				out[i] = applyOutput{MatchID: r.MatchID, Report: r.Report}
				if r.Err != nil && !errors.Is(r.Err, service.ErrMatchAlreadyProcessed) {
					out[i].Error = r.Err.Error()
					failed++
				}
			}
			if err := printJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d match(es) failed", failed)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "batch file (required)")
	c.Flags().IntVar(&concurrency, "concurrency", 0, "matches applied at once (overrides the file)")
	_ = c.MarkFlagRequired("file")
	return c
}
