package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qhuang2010/zhongyimedic/pkg/format"
	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

var batchFlags struct {
	input   string
	workers int
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate reasoning chains for a list of consultations",
	Long: `Generate reasoning chains for a list of consultations concurrently.

The input file holds a list of requests in the diagnose format. Results
keep the input order; the first invalid request aborts the batch.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.input, "input", "i", "", "Request list file (JSON or YAML, - for stdin)")
	f.IntVar(&batchFlags.workers, "workers", 0, "Concurrent generations (default from config)")
	_ = batchCmd.MarkFlagRequired("input")
}

func runBatch(cmd *cobra.Command, _ []string) error {
	var reqs []types.Request
	if err := readDocument(batchFlags.input, cmd.InOrStdin(), &reqs); err != nil {
		return err
	}
	workers := cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		workers = batchFlags.workers
	}

	e, err := newEngine()
	if err != nil {
		return err
	}
	chains, err := e.GenerateBatch(cmd.Context(), reqs, workers)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	logger.Info("batch complete", zap.Int("chains", len(chains)), zap.Int("workers", workers))

	return render(cmd, chains, func(m format.Mode) string {
		t := format.NewTable(m, "",
			format.Column{Name: "#", Right: true},
			format.Column{Name: "ID"},
			format.Column{Name: "主诉", Width: 30},
			format.Column{Name: "元气状态"},
			format.Column{Name: "证型"},
			format.Column{Name: "方剂"},
		)
		for i, c := range chains {
			t.Add(i+1, c.ID, c.ChiefComplaint, c.VitalState, c.Syndrome.Syndrome, c.Prescription.FormulaName)
		}
		return t.Render()
	})
}
