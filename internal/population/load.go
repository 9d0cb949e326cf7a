package population

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Population is a read-only snapshot of candidates and hiring history.
type Population struct {
	Candidates *Candidates
	Events     *HiringEvents
}

// Load reads both tables. An empty path yields an empty table.
func Load(candidatesPath, eventsPath string) (*Population, error) {
	candidates, err := LoadCandidates(candidatesPath)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}

	events, err := LoadHiringEvents(eventsPath)
	if err != nil {
		return nil, fmt.Errorf("loading hiring history: %w", err)
	}

	return &Population{Candidates: candidates, Events: events}, nil
}

func LoadCandidates(path string) (*Candidates, error) {
	var items []*Candidate
	if err := loadRows(path, &items); err != nil {
		return nil, err
	}
	return &Candidates{Items: items}, nil
}

func LoadHiringEvents(path string) (*HiringEvents, error) {
	var items []*HiringEvent
	if err := loadRows(path, &items); err != nil {
		return nil, err
	}
	return &HiringEvents{Items: items}, nil
}

func loadRows(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var rows []map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		rows, err = readJSONRows(file)
	default:
		rows, err = readCSVRows(file)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return DecodeRows(rows, out)
}

// DecodeRows maps named-field rows onto a slice of records by their mapstructure tags.
// Numbers and booleans are accepted for text fields; unknown columns are ignored.
func DecodeRows(rows []map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(rows)
}

func readCSVRows(r io.Reader) ([]map[string]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i, name := range header {
		// tolerate a UTF-8 BOM on the first column
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	var rows []map[string]any
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readJSONRows(r io.Reader) ([]map[string]any, error) {
	var rows []map[string]any
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, err
	}
	// JSON nulls would leave text fields unset anyway; drop them so weak decoding never sees nil
	for _, row := range rows {
		for key, value := range row {
			if value == nil {
				delete(row, key)
			}
		}
	}
	return rows, nil
}
