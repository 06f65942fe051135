package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cortexmed/clinextract/internal/config"
	"github.com/cortexmed/clinextract/internal/infrastructure/database/postgres"
	"github.com/cortexmed/clinextract/internal/infrastructure/database/postgres/repositories"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	"github.com/cortexmed/clinextract/internal/infrastructure/vocabsource"
	"github.com/cortexmed/clinextract/internal/vocab"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

var vocabLoadFrom string

// NewVocabCmd creates the vocab command group.
func NewVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Manage the concept vocabulary",
	}

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Import a vocabulary file into the PostgreSQL store",
		Long: "Load reads concept entries from a JSON vocabulary file and atomically\n" +
			"replaces the contents of the PostgreSQL vocabulary store.",
		Example: "  clinextract vocab load --from snomed_core.json",
		RunE:    runVocabLoad,
	}
	loadCmd.Flags().StringVar(&vocabLoadFrom, "from", "", "JSON vocabulary file to import (required)")
	_ = loadCmd.MarkFlagRequired("from")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts for the configured vocabulary source",
		RunE:  runVocabStats,
	}

	cmd.AddCommand(loadCmd, statsCmd)
	return cmd
}

func runVocabLoad(cmd *cobra.Command, _ []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg, logger := cliCtx.Config, cliCtx.Logger
	ctx := cmd.Context()

	if cfg.Vocabulary.Source != config.VocabSourcePostgres {
		return apperrors.InvalidParam("vocab load requires vocabulary.source to be postgres")
	}

	entries, err := vocabsource.NewFileSource(vocabLoadFrom).Load(ctx)
	if err != nil {
		return err
	}

	release, err := acquireReloadLock(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	conn, err := postgres.NewConnection(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	repo := repositories.NewVocabularyRepository(conn.Pool(), logger)
	if err := repo.ReplaceAll(ctx, entries); err != nil {
		return err
	}

	logger.Info("vocabulary imported",
		logging.String("file", vocabLoadFrom),
		logging.Int("entries", len(entries)),
	)
	PrintSuccess(cmd, fmt.Sprintf("imported %d vocabulary entries", len(entries)))
	return nil
}

func runVocabStats(cmd *cobra.Command, _ []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg, logger := cliCtx.Config, cliCtx.Logger
	ctx := cmd.Context()

	source, cleanup, err := buildVocabSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := source.Load(ctx)
	if err != nil {
		return err
	}

	// Build the index too so stats reflect what extraction would see.
	ix, err := vocab.NewIndex(entries)
	if err != nil {
		return err
	}

	return PrintResult(cmd, newVocabStats(source.Name(), ix.Size(), entries))
}

// vocabStats is the printable vocabulary summary.
type vocabStats struct {
	Source       string         `json:"source"`
	Entries      int            `json:"entries"`
	Domains      map[string]int `json:"domains"`
	Vocabularies map[string]int `json:"vocabularies"`
	Synonyms     int            `json:"synonyms"`
}

func newVocabStats(source string, size int, entries []clinical.VocabularyEntry) *vocabStats {
	stats := &vocabStats{
		Source:       source,
		Entries:      size,
		Domains:      make(map[string]int),
		Vocabularies: make(map[string]int),
	}
	for i := range entries {
		stats.Domains[string(entries[i].DomainID)]++
		stats.Vocabularies[string(entries[i].VocabularyID)]++
		stats.Synonyms += len(entries[i].Synonyms)
	}
	return stats
}

func (s *vocabStats) String() string {
	out := fmt.Sprintf("source %s: %d entries, %d synonyms", s.Source, s.Entries, s.Synonyms)
	for _, name := range sortedKeys(s.Vocabularies) {
		out += fmt.Sprintf("\n  %-10s %d", name, s.Vocabularies[name])
	}
	return out
}

// TableHeaders implements the table output contract.
func (s *vocabStats) TableHeaders() []string {
	return []string{"VOCABULARY", "ENTRIES"}
}

// TableRows implements the table output contract.
func (s *vocabStats) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Vocabularies))
	for _, name := range sortedKeys(s.Vocabularies) {
		rows = append(rows, []string{name, fmt.Sprintf("%d", s.Vocabularies[name])})
	}
	return rows
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
