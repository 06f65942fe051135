package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cortexmed/clinextract/internal/application/extraction"
	"github.com/cortexmed/clinextract/internal/infrastructure/monitoring/logging"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
	"github.com/cortexmed/clinextract/pkg/types/clinical"
)

var (
	extractNoteType string
	extractStdin    bool
)

// NewExtractCmd creates the extract command.  It runs the full pipeline over
// one or more note files and prints mentions with their concept candidates.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Extract clinical mentions from note files",
		Long: "Extract segments each note into sections, finds clinical mentions,\n" +
			"classifies their assertion context, and maps them to vocabulary concepts.",
		Example: "  clinextract extract note.txt\n" +
			"  clinextract extract --stdin < note.txt\n" +
			"  clinextract extract -o json notes/*.txt",
		RunE: runExtract,
	}

	cmd.Flags().StringVar(&extractNoteType, "note-type", "", "note type recorded on every result")
	cmd.Flags().BoolVar(&extractStdin, "stdin", false, "read a single note from standard input")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	cfg, logger := cliCtx.Config, cliCtx.Logger

	inputs, err := collectInputs(cmd, args)
	if err != nil {
		return err
	}

	lexicons, err := buildLexiconProvider(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	store, closeStore, err := buildVocabStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	cache, closeCache := buildCandidateCache(cfg, logger)
	defer closeCache()

	metrics, stopMetrics, err := buildMetrics(cfg, logger)
	if err != nil {
		return err
	}
	defer stopMetrics()

	svc, err := extraction.NewService(cfg, lexicons, store, cache, metrics, logger)
	if err != nil {
		return err
	}

	if len(inputs) == 1 {
		res, err := svc.ExtractDocument(cmd.Context(), inputs[0])
		if err != nil {
			return err
		}
		return PrintResult(cmd, newExtractReport(res))
	}

	batch, err := svc.ExtractBatch(cmd.Context(), inputs)
	if err != nil {
		return err
	}
	for _, res := range batch.Results {
		if res == nil {
			continue
		}
		if err := PrintResult(cmd, newExtractReport(res)); err != nil {
			return err
		}
	}
	for _, be := range batch.Errors {
		PrintError(cmd, fmt.Errorf("%s: %s", be.DocumentID, be.Error))
	}
	if batch.Failed > 0 {
		return apperrors.Internal(fmt.Sprintf("%d of %d documents failed", batch.Failed, len(inputs)))
	}
	logger.Info("extraction finished",
		logging.Int("documents", batch.Succeeded),
		logging.Duration("duration", batch.Duration),
	)
	return nil
}

// collectInputs reads the note text for every requested document.
func collectInputs(cmd *cobra.Command, args []string) ([]*extraction.ExtractInput, error) {
	if extractStdin {
		if len(args) > 0 {
			return nil, apperrors.InvalidParam("--stdin cannot be combined with file arguments")
		}
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "failed to read standard input")
		}
		return []*extraction.ExtractInput{{DocumentID: "stdin", Text: string(text), NoteType: extractNoteType}}, nil
	}

	if len(args) == 0 {
		return nil, apperrors.InvalidParam("at least one note file is required (or --stdin)")
	}

	inputs := make([]*extraction.ExtractInput, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "failed to read note file").WithDetail(path)
		}
		inputs = append(inputs, &extraction.ExtractInput{
			DocumentID: path,
			Text:       string(data),
			NoteType:   extractNoteType,
		})
	}
	return inputs, nil
}

// extractReport is the printable view of one extraction result.
type extractReport struct {
	DocumentID         string                 `json:"document_id"`
	NoteType           string                 `json:"note_type,omitempty"`
	Sections           []clinical.SectionSpan `json:"sections"`
	Mentions           []mentionReport        `json:"mentions"`
	VocabularyDegraded bool                   `json:"vocabulary_degraded,omitempty"`
	DurationMillis     int64                  `json:"duration_ms"`
}

type mentionReport struct {
	Text        string                      `json:"text"`
	Start       int                         `json:"start"`
	End         int                         `json:"end"`
	Section     string                      `json:"section,omitempty"`
	Domain      clinical.Domain             `json:"domain"`
	Assertion   clinical.Assertion          `json:"assertion"`
	Temporality clinical.Temporality        `json:"temporality"`
	Experiencer clinical.Experiencer        `json:"experiencer"`
	Laterality  clinical.Laterality         `json:"laterality,omitempty"`
	Confidence  float64                     `json:"confidence"`
	Candidates  []clinical.ConceptCandidate `json:"candidates"`
}

func newExtractReport(res *extraction.Result) *extractReport {
	report := &extractReport{
		DocumentID:         res.DocumentID,
		NoteType:           res.NoteType,
		Sections:           res.Sections,
		Mentions:           make([]mentionReport, 0, len(res.Mentions)),
		VocabularyDegraded: res.VocabularyDegraded,
		DurationMillis:     res.Duration.Milliseconds(),
	}
	for _, m := range res.Mentions {
		report.Mentions = append(report.Mentions, mentionReport{
			Text:        m.Text,
			Start:       m.StartOffset,
			End:         m.EndOffset,
			Section:     m.Section,
			Domain:      m.Domain,
			Assertion:   m.Assertion,
			Temporality: m.Temporality,
			Experiencer: m.Experiencer,
			Laterality:  m.Laterality,
			Confidence:  m.Confidence,
			Candidates:  res.Candidates[m.ID],
		})
	}
	return report
}

// String renders the report for the default text output.
func (r *extractReport) String() string {
	out := fmt.Sprintf("%s: %d sections, %d mentions", r.DocumentID, len(r.Sections), len(r.Mentions))
	for _, m := range r.Mentions {
		concept := "(unmapped)"
		if len(m.Candidates) > 0 {
			concept = fmt.Sprintf("%s %s (%s, %.2f)",
				m.Candidates[0].VocabularyID, m.Candidates[0].ConceptID, m.Candidates[0].ConceptName, m.Candidates[0].Score)
		}
		out += fmt.Sprintf("\n  [%d:%d] %q %s/%s/%s/%s -> %s",
			m.Start, m.End, m.Text, m.Domain, m.Assertion, m.Temporality, m.Experiencer, concept)
	}
	return out
}

// TableHeaders implements the table output contract.
func (r *extractReport) TableHeaders() []string {
	return []string{"TEXT", "SPAN", "SECTION", "DOMAIN", "ASSERTION", "CONCEPT", "SCORE"}
}

// TableRows implements the table output contract.
func (r *extractReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Mentions))
	for _, m := range r.Mentions {
		concept, score := "", ""
		if len(m.Candidates) > 0 {
			concept = m.Candidates[0].ConceptID
			score = strconv.FormatFloat(m.Candidates[0].Score, 'f', 2, 64)
		}
		rows = append(rows, []string{
			m.Text,
			fmt.Sprintf("%d:%d", m.Start, m.End),
			m.Section,
			string(m.Domain),
			string(m.Assertion),
			concept,
			score,
		})
	}
	return rows
}
