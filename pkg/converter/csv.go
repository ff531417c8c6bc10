package converter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/james-see/po12toolbox/pkg/pattern"
)

// CSVLayout selects how patterns are laid out in CSV
type CSVLayout string

const (
	CSVList CSVLayout = "list" // one row per note
	CSVGrid CSVLayout = "grid" // one row per voice, one column per step
)

var (
	csvListHeader     = []string{"Voice Short Name", "Voice Display Name", "Step"}
	csvMetadataHeader = []string{"Pattern", "Voice Short Name", "Voice Display Name", "Step", "Name", "BPM"}
	csvMultiHeader    = []string{"Pattern", "Voice Short Name", "Voice Display Name", "Step"}
)

// WriteCSV writes one row per note. With metadata each row also carries the
// pattern number, name and BPM.
func WriteCSV(w io.Writer, p pattern.Pattern, includeMetadata bool) error {
	cw := csv.NewWriter(w)

	header := csvListHeader
	if includeMetadata {
		header = csvMetadataHeader
	}
	rows := [][]string{header}

	bpm := ""
	if p.Metadata.HasBPM() {
		bpm = strconv.Itoa(p.Metadata.BPM)
	}
	for _, v := range p.UsedVoices() {
		for _, step := range p.Steps(v) {
			if includeMetadata {
				rows = append(rows, []string{
					strconv.Itoa(p.Number()), v.ShortName(), v.DisplayName(),
					strconv.Itoa(step), p.Metadata.Name, bpm,
				})
			} else {
				rows = append(rows, []string{v.ShortName(), v.DisplayName(), strconv.Itoa(step)})
			}
		}
	}
	return writeRows(cw, rows)
}

// WriteCSVGrid writes one row per voice with an X in each active step column
func WriteCSVGrid(w io.Writer, p pattern.Pattern) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, pattern.NumSteps+1)
	header = append(header, "Voice")
	for i := pattern.MinStep; i <= pattern.MaxStep; i++ {
		header = append(header, fmt.Sprintf("Step %d", i))
	}
	rows := [][]string{header}

	for _, v := range p.UsedVoices() {
		row := make([]string, pattern.NumSteps+1)
		row[0] = v.DisplayName()
		for _, step := range p.Steps(v) {
			row[step] = "X"
		}
		rows = append(rows, row)
	}
	return writeRows(cw, rows)
}

// WriteCSVMultiple writes the notes of several patterns into one list
func WriteCSVMultiple(w io.Writer, patterns []pattern.Pattern) error {
	cw := csv.NewWriter(w)
	rows := [][]string{csvMultiHeader}
	for _, p := range patterns {
		for _, v := range p.UsedVoices() {
			for _, step := range p.Steps(v) {
				rows = append(rows, []string{
					strconv.Itoa(p.Number()), v.ShortName(), v.DisplayName(), strconv.Itoa(step),
				})
			}
		}
	}
	return writeRows(cw, rows)
}

func writeRows(cw *csv.Writer, rows [][]string) error {
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
