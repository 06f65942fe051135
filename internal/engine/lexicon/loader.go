package lexicon

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cortexmed/clinextract/pkg/errors"
)

// ---------------------------------------------------------------------------
// YAML file format
// ---------------------------------------------------------------------------

// File is the on-disk representation of a lexicon.  A single file may carry
// several domain tables plus stopword additions:
//
//	tables:
//	  - domain: condition
//	    entries:
//	      - surface: chf
//	        variant: heart failure
//	      - surface: pneumonia
//	stopwords:
//	  - stable
type File struct {
	Tables    []Table  `yaml:"tables"`
	Stopwords []string `yaml:"stopwords,omitempty"`
}

// LoadFile parses one YAML lexicon file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeLexiconFileMissing,
				"lexicon file not found").WithDetail(path)
		}
		return nil, errors.Wrap(err, errors.CodeLexiconLoad, "failed to read lexicon file").
			WithDetail(path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.CodeLexiconLoad, "failed to parse lexicon file").
			WithDetail(path)
	}
	if len(f.Tables) == 0 {
		return nil, errors.New(errors.ErrCodeLexiconEntryInvalid,
			"lexicon file contains no tables").WithDetail(path)
	}
	return &f, nil
}

// LoadDir builds a Lexicon from every *.yaml / *.yml file in dir, merged on
// top of the compiled-in defaults.  User entries override default entries for
// the same surface form because later tables win during New().
//
// Any malformed file fails the whole load: a lexicon error is fatal at
// startup, never a partial state.
func LoadDir(dir string) (*Lexicon, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeLexiconLoad, "failed to read lexicon directory").
			WithDetail(dir)
	}

	tables := DefaultTables()
	stopwords := DefaultStopwords()

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		f, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		tables = append(tables, f.Tables...)
		stopwords = append(stopwords, f.Stopwords...)
	}

	return New(tables, stopwords)
}
