// Package main provides the vibe-indel command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(viper.New())
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ue *usageError
		if errors.As(err, &ue) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

// usageError marks errors caused by invalid arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "vibe-indel",
		Short: "Indel genotype normalization and callset concordance",
		Long: `vibe-indel re-expresses indel genotypes on a zero-anchored allele-length
scale and translates genotypes between two independently called VCFs.`,
		Example: `  vibe-indel lengths --vcf calls.vcf.gz --regions "chr1:20000-20100; chr2:30000-31000"
  vibe-indel concordance --truth truth.vcf --call calls.vcf --regions chr1:20000-20100
  vibe-indel pcr --table fragments.csv`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ~/.vibe-indel.yaml)")
	pf.BoolP("verbose", "V", false, "Log per-record diagnostics")
	pf.IntP("workers", "j", 0, "Regions processed in parallel (0 = number of CPUs)")
	pf.StringP("format", "f", "tab", "Output format: tab, text")
	pf.StringP("output", "o", "", "Output file (default: stdout)")
	pf.String("delimiter", "", "Genotype delimiter on output: unphased or preserve (default depends on command)")
	pf.String("index", "scan", "Region lookup: scan, sorted or duckdb")

	for _, key := range []string{"verbose", "workers", "format", "output", "delimiter", "index"} {
		_ = v.BindPFlag(key, pf.Lookup(key))
	}

	root.AddCommand(newLengthsCmd(v))
	root.AddCommand(newConcordanceCmd(v))
	root.AddCommand(newPCRCmd(v))
	root.AddCommand(newConfigCmd(v))
	root.AddCommand(newVersionCmd())

	return root
}

// initConfig reads the config file and environment into v.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix("VIBE_INDEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.SetConfigFile(filepath.Join(home, ".vibe-indel.yaml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vibe-indel version %s (%s) built %s\n", version, commit, date)
		},
	}
}
