// Package yaml decodes market catalog seed files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/marketway"
	"gopkg.in/yaml.v3"
)

// Seed is the content of a catalog seed file.
//
//	market: Bamenda Main Market
//	history_file: history.md
//	lines:
//	  - name: Mothers Line
//	    items: [medicine, baby food]
//	    layout: {column: left, order: 1}
type Seed struct {
	Market string `yaml:"market"`

	// History is inline markdown. HistoryFile, when set, takes precedence and
	// is resolved relative to the seed file.
	History     string `yaml:"history"`
	HistoryFile string `yaml:"history_file"`

	Lines []*marketway.Line `yaml:"lines"`
}

// Decode reads a seed from r. Unknown fields and invalid lines are rejected
// with EINVALID.
func Decode(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, marketway.Errorf(marketway.EINVALID, "seed file is empty")
		}
		return nil, marketway.Errorf(marketway.EINVALID, "invalid seed file: %v", err)
	}

	for i, line := range seed.Lines {
		if line == nil {
			return nil, marketway.Errorf(marketway.EINVALID, "seed line %d is empty", i+1)
		}
		if err := line.Validate(); err != nil {
			return nil, err
		}
	}

	return &seed, nil
}

// Load reads the seed file at path and the markdown history it points to.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	seed, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if seed.HistoryFile != "" {
		historyPath := seed.HistoryFile
		if !filepath.IsAbs(historyPath) {
			historyPath = filepath.Join(filepath.Dir(path), historyPath)
		}
		history, err := os.ReadFile(historyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read history file %s: %w", historyPath, err)
		}
		seed.History = string(history)
	}

	return seed, nil
}
