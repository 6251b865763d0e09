// Package tableprinter writes aligned text tables.
package tableprinter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory/internal/tidy"
)

const (
	tabwriterMinWidth = 6
	tabwriterWidth    = 4
	tabwriterPadding  = 3
	tabwriterPadChar  = ' '
	tabwriterFlags    = tabwriter.FilterHTML
)

// NewTabWriter returns a tabwriter that aligns tab-separated columns.
func NewTabWriter(output io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(output, tabwriterMinWidth, tabwriterWidth, tabwriterPadding, tabwriterPadChar, tabwriterFlags)
}

// PrintTable writes the upper-cased headers followed by one line per row.
func PrintTable(output io.Writer, headers []string, rows [][]string) error {
	w := NewTabWriter(output)
	if _, err := fmt.Fprintln(w, strings.ToUpper(strings.Join(headers, "\t"))); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return w.Flush()
}

// PrintItemRoles writes an ITEM / ROLE table from a map of role to items.
// Rows are sorted by role, then by item.
func PrintItemRoles(output io.Writer, roles map[string][]string, logger log.Logger) error {
	rows := tidy.SwapColumns(tidy.Unnest(roles))
	if len(rows) == 0 {
		logger.Warningf("No items to print")
		return nil
	}
	return PrintTable(output, []string{"item", "role"}, rows)
}
