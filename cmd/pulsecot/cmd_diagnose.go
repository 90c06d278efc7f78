package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qhuang2010/zhongyimedic/pkg/format"
	"github.com/qhuang2010/zhongyimedic/pkg/types"
)

var diagnoseFlags struct {
	input     string
	complaint string
	symptoms  []string
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Generate the reasoning chain for one consultation",
	Long: `Generate the reasoning chain for one consultation.

The input file holds a request:

  chief_complaint: 腰膝酸软半年
  symptoms: [腰膝酸软, 畏寒肢冷]
  reading:
    left-chi-chen: 空
    right-chi-chen: 空

--complaint and --symptom override or supply the request fields, so a
reading-free consultation needs no file at all.`,
	Args: cobra.NoArgs,
	RunE: runDiagnose,
}

func init() {
	f := diagnoseCmd.Flags()
	f.StringVarP(&diagnoseFlags.input, "input", "i", "", "Request file (JSON or YAML, - for stdin)")
	f.StringVar(&diagnoseFlags.complaint, "complaint", "", "Chief complaint")
	f.StringSliceVar(&diagnoseFlags.symptoms, "symptom", nil, "Reported symptom (repeatable)")
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	var req types.Request
	if diagnoseFlags.input != "" {
		if err := readDocument(diagnoseFlags.input, cmd.InOrStdin(), &req); err != nil {
			return err
		}
	}
	if diagnoseFlags.complaint != "" {
		req.ChiefComplaint = diagnoseFlags.complaint
	}
	if len(diagnoseFlags.symptoms) > 0 {
		req.Symptoms = diagnoseFlags.symptoms
	}

	e, err := newEngine()
	if err != nil {
		return err
	}
	chain, err := e.Generate(req)
	if err != nil {
		return fmt.Errorf("diagnose: %w", err)
	}
	return render(cmd, chain, func(m format.Mode) string { return format.Chain(chain, m) })
}
