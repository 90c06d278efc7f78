package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qhuang2010/zhongyimedic/pkg/corpus"
	"github.com/qhuang2010/zhongyimedic/pkg/format"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the knowledge corpus",
}

var corpusStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count the entries of each catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kb, err := loadKnowledgeBase()
		if err != nil {
			return err
		}
		s := kb.Stats()
		return render(cmd, s, func(m format.Mode) string { return format.Stats(s, m) })
	},
}

var corpusPatternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List pulse patterns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kb, err := loadKnowledgeBase()
		if err != nil {
			return err
		}
		ps := kb.Patterns()
		return render(cmd, ps, func(m format.Mode) string { return format.Patterns(ps, m) })
	},
}

var corpusRulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List diagnostic rules in evaluation order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kb, err := loadKnowledgeBase()
		if err != nil {
			return err
		}
		rs := kb.Rules()
		return render(cmd, rs, func(m format.Mode) string { return format.Rules(rs, m) })
	},
}

var corpusValidateCmd = &cobra.Command{
	Use:   "validate DIR",
	Short: "Check a corpus directory for dangling references and duplicates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kb, err := corpus.LoadDir(args[0])
		if err != nil {
			return err
		}
		s := kb.Stats()
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d patterns, %d rules, %d protocols)\n",
			args[0], s.Patterns, s.Rules, s.Protocols)
		return nil
	},
}

func init() {
	corpusCmd.AddCommand(corpusStatsCmd)
	corpusCmd.AddCommand(corpusPatternsCmd)
	corpusCmd.AddCommand(corpusRulesCmd)
	corpusCmd.AddCommand(corpusValidateCmd)
}
