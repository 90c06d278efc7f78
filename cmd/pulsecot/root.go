package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qhuang2010/zhongyimedic/pkg/config"
	"github.com/qhuang2010/zhongyimedic/pkg/corpus"
	"github.com/qhuang2010/zhongyimedic/pkg/engine"
	"github.com/qhuang2010/zhongyimedic/pkg/format"
	"github.com/qhuang2010/zhongyimedic/pkg/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	corpusDir  string
	output     string
}

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "pulsecot",
	Short: "Chain-of-thought reasoning for pulse-based TCM diagnosis",
	Long: `pulsecot turns a three-depth, six-position pulse reading plus reported
symptoms into an auditable reasoning chain: evidence, pulse pattern,
syndrome, treatment principle, prescription and expected outcome.

Configuration is read from --config (YAML) and PULSECOT_* environment
variables; flags take precedence over both.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "pulsecot.yaml", "Path to config file")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&rootFlags.corpusDir, "corpus", "", "Directory of corpus YAML files (default: embedded corpus)")
	f.StringVarP(&rootFlags.output, "output", "o", "table", "Output format (table, markdown, json, yaml)")

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(compatCmd)
	rootCmd.AddCommand(corpusCmd)
	rootCmd.AddCommand(formulaCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(rootFlags.configPath)
	if err != nil {
		return err
	}
	if rootFlags.logLevel != "" {
		c.Logging.Level = rootFlags.logLevel
	}
	if rootFlags.corpusDir != "" {
		c.Corpus.Dir = rootFlags.corpusDir
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := format.ParseOutput(rootFlags.output); err != nil {
		return err
	}

	l, err := logging.New(c.Logging.Level, c.Logging.Format)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	return nil
}

func loadKnowledgeBase() (*corpus.KnowledgeBase, error) {
	var (
		kb  *corpus.KnowledgeBase
		err error
	)
	if cfg.Corpus.Dir != "" {
		kb, err = corpus.LoadDir(cfg.Corpus.Dir)
	} else {
		kb, err = corpus.Default()
	}
	if err != nil {
		return nil, err
	}
	s := kb.Stats()
	logger.Debug("corpus loaded",
		zap.String("dir", cfg.Corpus.Dir),
		zap.Int("patterns", s.Patterns),
		zap.Int("rules", s.Rules),
		zap.Int("protocols", s.Protocols),
	)
	return kb, nil
}

func newEngine() (*engine.Engine, error) {
	kb, err := loadKnowledgeBase()
	if err != nil {
		return nil, err
	}
	return engine.New(kb,
		engine.WithLogger(logger),
		engine.WithConfidence(cfg.Engine.Confidence),
	), nil
}

// render writes v in the selected output format, using table for the
// tabular formats.
func render(cmd *cobra.Command, v any, table func(format.Mode) string) error {
	o, err := format.ParseOutput(rootFlags.output)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if m, ok := o.Tabular(); ok {
		_, err := fmt.Fprintln(out, table(m))
		return err
	}
	return format.Encode(out, o, v)
}
