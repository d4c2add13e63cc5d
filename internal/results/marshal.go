package results

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvHeader is the fixed column order for CSV rendering.
var csvHeader = []string{"name", "bias", "rmse", "meas_sd"}

// WriteCSV renders the table as CSV with a fixed header.
//
// Floats are formatted with strconv's shortest round-trippable form, so the
// rendering is a faithful function of the table's exact bits. Two runs that
// produce bit-identical tables produce byte-identical CSV, which is what
// the golden tests snapshot.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t {
		record := []string{
			row.Name,
			formatFloat(row.Bias),
			formatFloat(row.RMSE),
			formatFloat(row.MeasSD),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalCSV renders the table as CSV bytes.
func (t Table) MarshalCSV() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON renders the table as a JSON array with stable field order.
// HTML escaping is disabled: the output is data, not markup, and escaped
// output would not be byte-stable across encoder defaults.
func (t Table) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode results json: %w", err)
	}
	return nil
}

// ParseCSV parses a table previously rendered by WriteCSV.
// Used by tests and by tooling that round-trips exported tables.
func ParseCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read results csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("results csv is empty")
	}
	if got := strings.Join(records[0], ","); got != strings.Join(csvHeader, ",") {
		return nil, fmt.Errorf("unexpected results csv header: %s", got)
	}

	table := make(Table, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("results csv row has %d fields, want %d", len(record), len(csvHeader))
		}
		bias, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parse bias %q: %w", record[1], err)
		}
		rmse, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse rmse %q: %w", record[2], err)
		}
		measSD, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("parse meas_sd %q: %w", record[3], err)
		}
		table = append(table, Row{Name: record[0], Bias: bias, RMSE: rmse, MeasSD: measSD})
	}
	return table, nil
}

// formatFloat renders a float in its shortest form that parses back to the
// same bits.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
