package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cortexmed/clinextract/internal/engine/lexicon"
	apperrors "github.com/cortexmed/clinextract/pkg/errors"
)

// NewLexiconCmd creates the lexicon command group.
func NewLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and validate trigger lexicons",
	}

	checkCmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Validate lexicon files and report statistics",
		Long: "Check loads every lexicon file in the given directory (or the directory\n" +
			"from configuration) and fails on the first malformed table, so a bad\n" +
			"lexicon is caught before it reaches the extraction pipeline.",
		Args: cobra.MaximumNArgs(1),
		RunE: runLexiconCheck,
	}

	cmd.AddCommand(checkCmd)
	return cmd
}

func runLexiconCheck(cmd *cobra.Command, args []string) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}

	dir := cliCtx.Config.Lexicon.Dir
	if len(args) == 1 {
		dir = args[0]
	}

	var lx *lexicon.Lexicon
	if dir == "" {
		lx = lexicon.Default()
	} else {
		lx, err = lexicon.LoadDir(dir)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeLexiconLoadFailed, "lexicon check failed").WithDetail(dir)
		}
	}

	stats := lx.Stats()
	if dir == "" {
		PrintSuccess(cmd, "built-in lexicon is valid")
	} else {
		PrintSuccess(cmd, fmt.Sprintf("lexicon directory %s is valid", dir))
	}
	return PrintResult(cmd, fmt.Sprintf("%d domains, %d terms, %d stopwords, longest phrase %d tokens",
		stats.Domains, stats.Terms, stats.Stopwords, stats.MaxPhrased))
}
