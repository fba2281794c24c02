package export

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	good    = color.New(color.FgGreen, color.Bold).SprintFunc()
	warn    = color.New(color.FgYellow, color.Bold).SprintFunc()
	bad     = color.New(color.FgRed, color.Bold).SprintFunc()
	notable = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// labelColors highlights segment labels on the console. Labels not listed
// print plain.
var labelColors = map[string]func(a ...interface{}) string{
	"VIP":              notable,
	"High Value":       notable,
	"High Performance": notable,
	"Excellent":        good,
	"Good":             good,
	"Active":           good,
	"Frequent":         good,
	"At Risk":          warn,
	"Fair":             warn,
	"Dormant":          warn,
	"Mid Performance":  warn,
	"Poor":             bad,
	"Churned":          bad,
	"Inactive":         bad,
	"Low Performance":  bad,
}

func colorLabel(label string) string {
	if fn, ok := labelColors[label]; ok {
		return fn(label)
	}
	return label
}

func (e *Exporter) writeTable(t *Table) error {
	header, rows := t.project(e.Limit)

	segment := make(map[int]bool, len(t.Segments))
	for i, c := range t.Summary {
		for _, s := range t.Segments {
			if c == s {
				segment[i] = true
			}
		}
	}

	data := pterm.TableData{header}
	for _, row := range rows {
		for i := range row {
			if segment[i] {
				row[i] = colorLabel(row[i])
			}
		}
		data = append(data, row)
	}

	rendered, err := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Fprintln(e.Out, pterm.DefaultSection.Sprint(t.Title))
	fmt.Fprintln(e.Out, rendered)
	if len(rows) < t.Len() {
		fmt.Fprintf(e.Out, "Showing %d of %d rows\n", len(rows), t.Len())
	}
	return nil
}
