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

func newConcordanceCmd(v *viper.Viper) *cobra.Command {
	var (
		truthPath string
		callPath  string
		regions   string
		refMatch  string
	)

	cmd := &cobra.Command{
		Use:   "concordance",
		Short: "Translate call-set genotypes into truth-set allele indices",
		Long: `Compare a call set against a truth set position by position. Each call
genotype is rewritten in terms of the truth record's allele indices, by
sequence when both records share a reference allele and by length
difference otherwise.`,
		Example: `  vibe-indel concordance --truth truth.vcf --call calls.vcf --regions chr1:20000-20100
  vibe-indel concordance --truth truth.vcf --call calls.vcf --regions chr1:1-5000 --ref-match allele`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConcordance(cmd, v, truthPath, callPath, regions, refMatch)
		},
	}

	cmd.Flags().StringVar(&truthPath, "truth", "", "Truth-set VCF file")
	cmd.Flags().StringVar(&callPath, "call", "", "Call-set VCF file")
	cmd.Flags().StringVarP(&regions, "regions", "r", "", `Regions "chr:start-end", separated by ";"`)
	cmd.Flags().StringVar(&refMatch, "ref-match", "substring", "How a truth genotype is judged to carry the reference: substring or allele")

	return cmd
}

func runConcordance(cmd *cobra.Command, v *viper.Viper, truthPath, callPath, regionList, refMatch string) error {
	truthPath = strings.TrimSpace(truthPath)
	callPath = strings.TrimSpace(callPath)
	if truthPath == "" {
		return usageErrorf("truth VCF file path is missing")
	}
	if callPath == "" {
		return usageErrorf("call VCF file path is missing")
	}
	if strings.TrimSpace(regionList) == "" {
		return usageErrorf("regions input is missing")
	}

	heuristic, err := genotype.ParseRefHeuristic(refMatch)
	if err != nil {
		return &usageError{err: err}
	}

	logger := newLogger(v, concordance.ToolConcordance, cmd.ErrOrStderr())
	defer logger.Sync() //nolint:errcheck

	policy, err := delimiterPolicy(v, genotype.PreserveDelimiter)
	if err != nil {
		return err
	}

	regions, err := parseRegions(regionList, logger)
	if err != nil {
		return err
	}

	truth, err := loadDataset(truthPath, logger)
	if err != nil {
		return err
	}
	call, err := loadDataset(callPath, logger)
	if err != nil {
		return err
	}

	regions, err = restrictRegions(regions, unionChromosomes(truth.Chromosomes(), call.Chromosomes()), logger)
	if err != nil {
		return err
	}

	builder, err := newIndexBuilder(v)
	if err != nil {
		return err
	}
	defer builder.Close()

	truthIdx, err := builder.build("truth", truth)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", truthPath, err)
	}
	callIdx, err := builder.build("call", call)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", callPath, err)
	}

	comparer := concordance.NewComparer(truthIdx, callIdx)
	comparer.SetDelimiterPolicy(policy)
	comparer.SetRefHeuristic(heuristic)
	comparer.SetLogger(logger)

	sink, err := openSink(v, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer sink.close()

	logger.Info("processing regions",
		zap.Int("regions", len(regions)),
		zap.String("delimiter", policy.String()),
		zap.Stringer("ref_match", heuristic),
		zap.String("index", builder.backend))

	if err := concordance.RunRegions(cmd.Context(), comparer, regions, v.GetInt("workers"), logger, sink.emit); err != nil {
		return err
	}
	return sink.finish(cmd.ErrOrStderr())
}
