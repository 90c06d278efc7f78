package main

import (
	"github.com/spf13/cobra"

	"github.com/qhuang2010/zhongyimedic/pkg/format"
)

var compatCmd = &cobra.Command{
	Use:   "compat HERB [HERB...]",
	Short: "Check herb compatibility (十八反, 相畏, 相使, ...)",
	Example: `  pulsecot compat 甘草 甘遂
  pulsecot compat 附子 干姜 炙甘草 -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompat,
}

func runCompat(cmd *cobra.Command, herbs []string) error {
	kb, err := loadKnowledgeBase()
	if err != nil {
		return err
	}
	report := kb.CheckCompatibility(herbs)
	return render(cmd, report, func(m format.Mode) string { return format.Compatibility(report, m) })
}
