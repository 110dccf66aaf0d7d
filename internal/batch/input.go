package batch

import (
	"errors"
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/report"
	"github.com/ziadkadry99/aliverse/internal/walker"
)

// ErrEmptyInput means a file held no birth records.
var ErrEmptyInput = errors.New("no birth records")

// Entry is one birth record from an input file.
type Entry struct {
	Source string // slash path relative to the batch root
	Index  int    // position in a list file
	List   bool   // whether the file held a list
	Input  calendar.BirthInput
}

// OutputPath is the slash path of e's report relative to the output
// directory. It keeps the full source path so distinct inputs never share a
// report: "family/mom.yml" writes "family/mom.yml.txt", and the second
// entry of a list file "family/all.yml" writes "family/all.yml/02.txt".
func (e Entry) OutputPath(f report.Format) string {
	if e.List {
		return path.Join(e.Source, fmt.Sprintf("%02d%s", e.Index+1, f.Ext()))
	}
	return e.Source + f.Ext()
}

// LoadFile reads one YAML input file. A file holds either a single birth
// mapping or a sequence of them.
func LoadFile(f walker.FileInfo) ([]Entry, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.RelPath, err)
	}
	return parseEntries(f.RelPath, data)
}

func parseEntries(source string, data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var inputs []calendar.BirthInput
		if err := root.Decode(&inputs); err != nil {
			return nil, fmt.Errorf("decode %s: %w", source, err)
		}
		if len(inputs) == 0 {
			return nil, fmt.Errorf("%s: %w", source, ErrEmptyInput)
		}
		entries := make([]Entry, len(inputs))
		for i, in := range inputs {
			entries[i] = Entry{Source: source, Index: i, List: true, Input: in}
		}
		return entries, nil
	case yaml.MappingNode:
		var in calendar.BirthInput
		if err := root.Decode(&in); err != nil {
			return nil, fmt.Errorf("decode %s: %w", source, err)
		}
		return []Entry{{Source: source, Input: in}}, nil
	default:
		return nil, fmt.Errorf("%s: expected a mapping or a list of mappings", source)
	}
}
