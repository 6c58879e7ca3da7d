package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/pcr"
)

func newPCRCmd(v *viper.Viper) *cobra.Command {
	var tablePath string

	cmd := &cobra.Command{
		Use:   "pcr",
		Short: "Normalize PCR fragment lengths per locus",
		Long: `Read a CSV of PCR fragment lengths (sample name, then one pair of columns
per locus) and map every length onto a scale shared by all samples at that
locus, with the shortest observed length at 0.`,
		Example: `  vibe-indel pcr --table fragments.csv
  vibe-indel pcr --table fragments.csv.gz --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPCR(cmd, v, tablePath)
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", "", "CSV table of fragment lengths (plain or gzipped)")

	return cmd
}

func runPCR(cmd *cobra.Command, v *viper.Viper, tablePath string) error {
	tablePath = strings.TrimSpace(tablePath)
	if tablePath == "" {
		return usageErrorf("table file path is missing")
	}

	logger := newLogger(v, pcr.ToolPCR, cmd.ErrOrStderr())
	defer logger.Sync() //nolint:errcheck

	tbl, err := pcr.Load(tablePath)
	if err != nil {
		return err
	}
	logger.Info("loaded table",
		zap.String("path", tablePath),
		zap.Int("samples", len(tbl.Rows)),
		zap.Int("loci", tbl.Loci()))
	if tbl.Loci() == 0 {
		return usageErrorf("table %s has no allele column pairs", tablePath)
	}

	proc := pcr.NewProcessor()
	proc.SetLogger(logger)

	sink, err := openSink(v, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer sink.close()
	for _, row := range proc.Process(tbl) {
		if err := sink.emit(row); err != nil {
			return err
		}
	}
	return sink.finish(cmd.ErrOrStderr())
}
