package datagen

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
)

// BatchInsertConfig configures batch insert behavior.
type BatchInsertConfig struct {
	// BatchSize is the number of rows per COPY batch.
	BatchSize int

	// ShowProgress renders a progress bar on stderr while loading.
	ShowProgress bool
}

// DefaultBatchConfig returns default batch insert configuration.
func DefaultBatchConfig() BatchInsertConfig {
	return BatchInsertConfig{
		BatchSize:    5000,
		ShowProgress: true,
	}
}

// ProgressReporter tracks and reports loading progress for one table.
type ProgressReporter struct {
	tableName  string
	totalRows  int64
	currentRow int64
	bar        *progressbar.ProgressBar
}

// NewProgressReporter creates a progress reporter. When show is false the
// bar is discarded and only the completion log line is emitted.
func NewProgressReporter(tableName string, totalRows int64, show bool) *ProgressReporter {
	var out io.Writer = io.Discard
	if show {
		out = os.Stderr
	}
	bar := progressbar.NewOptions64(totalRows,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(tableName),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &ProgressReporter{
		tableName: tableName,
		totalRows: totalRows,
		bar:       bar,
	}
}

// Update advances the progress by rowsInserted.
func (p *ProgressReporter) Update(rowsInserted int64) {
	p.currentRow += rowsInserted
	_ = p.bar.Add64(rowsInserted)
}

// Rows returns the number of rows reported so far.
func (p *ProgressReporter) Rows() int64 {
	return p.currentRow
}

// Done finishes the bar and logs completion.
func (p *ProgressReporter) Done() {
	_ = p.bar.Finish()
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table complete")
}

// Batches calls fn for consecutive [start, end) windows of size batchSize
// covering n rows, stopping at the first error.
func Batches(n, batchSize int, fn func(start, end int) error) error {
	if batchSize <= 0 {
		batchSize = n
	}
	for start := 0; start < n; start += batchSize {
		if err := fn(start, min(start+batchSize, n)); err != nil {
			return err
		}
	}
	return nil
}
