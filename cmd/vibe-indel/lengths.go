package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/concordance"
	"github.com/inodb/vibe-indel/internal/genotype"
)

func newLengthsCmd(v *viper.Viper) *cobra.Command {
	var (
		vcfPath string
		regions string
	)

	cmd := &cobra.Command{
		Use:   "lengths",
		Short: "Report genotypes on a zero-anchored allele-length scale",
		Long: `Translate every genotype in the selected regions into normalized allele
lengths: the shortest allele in a record maps to 0 and every other allele to
its length difference from the shortest.`,
		Example: `  vibe-indel lengths --vcf calls.vcf.gz --regions "chr1:20000-20100; chr2:30000-31000"
  vibe-indel lengths --vcf calls.vcf --regions chr1:20000-20100 --delimiter preserve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLengths(cmd, v, vcfPath, regions)
		},
	}

	cmd.Flags().StringVar(&vcfPath, "vcf", "", "VCF file (plain or gzipped)")
	cmd.Flags().StringVarP(&regions, "regions", "r", "", `Regions "chr:start-end", separated by ";"`)

	return cmd
}

func runLengths(cmd *cobra.Command, v *viper.Viper, vcfPath, regionList string) error {
	vcfPath = strings.TrimSpace(vcfPath)
	if vcfPath == "" {
		return usageErrorf("VCF file path is missing")
	}
	if strings.TrimSpace(regionList) == "" {
		return usageErrorf("regions input is missing")
	}

	logger := newLogger(v, concordance.ToolLengths, cmd.ErrOrStderr())
	defer logger.Sync() //nolint:errcheck

	policy, err := delimiterPolicy(v, genotype.UnphasedDelimiter)
	if err != nil {
		return err
	}

	regions, err := parseRegions(regionList, logger)
	if err != nil {
		return err
	}

	ds, err := loadDataset(vcfPath, logger)
	if err != nil {
		return err
	}

	regions, err = restrictRegions(regions, ds.Chromosomes(), logger)
	if err != nil {
		return err
	}

	builder, err := newIndexBuilder(v)
	if err != nil {
		return err
	}
	defer builder.Close()

	idx, err := builder.build("vcf", ds)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", vcfPath, err)
	}

	reporter := concordance.NewLengthReporter(idx)
	reporter.SetDelimiterPolicy(policy)
	reporter.SetLogger(logger)

	sink, err := openSink(v, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer sink.close()

	logger.Info("processing regions",
		zap.Int("regions", len(regions)),
		zap.String("delimiter", policy.String()),
		zap.String("index", builder.backend))

	if err := concordance.RunRegions(cmd.Context(), reporter, regions, v.GetInt("workers"), logger, sink.emit); err != nil {
		return err
	}
	return sink.finish(cmd.ErrOrStderr())
}
