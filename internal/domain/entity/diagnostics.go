package entity

const maxAnomalySamples = 3

// Diagnostics accumulates field-coercion anomalies observed during one
// ingestion run. Anomalies never interrupt processing; they are counted here
// so callers (and tests) can inspect them without scraping log output.
type Diagnostics struct {
	// Anomalies counts out-of-contract values per column header.
	Anomalies map[string]int
	// Samples keeps up to three offending raw values per column.
	Samples map[string][]string
	// RowsSeen is the number of raw rows fed through the normalizer.
	RowsSeen int
	// RowsSkipped counts structurally unusable (fully empty) rows.
	RowsSkipped int
}

// NewDiagnostics returns an empty sink.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		Anomalies: make(map[string]int),
		Samples:   make(map[string][]string),
	}
}

// Record notes one out-of-contract value for a column.
func (d *Diagnostics) Record(column, rawValue string) {
	d.Anomalies[column]++
	if len(d.Samples[column]) < maxAnomalySamples {
		d.Samples[column] = append(d.Samples[column], rawValue)
	}
}

// Total returns the number of anomalies across all columns.
func (d *Diagnostics) Total() int {
	n := 0
	for _, c := range d.Anomalies {
		n += c
	}
	return n
}
