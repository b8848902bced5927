// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/termenv"
	"github.com/siemens/hostverify/types"
)

var (
	onlineStyle  = termenv.Style{}.Foreground(termenv.ANSIGreen)
	offlineStyle = termenv.Style{}.Foreground(termenv.ANSIRed)
	unknownStyle = termenv.Style{}.Foreground(termenv.ANSIYellow)
	headerStyle  = termenv.Style{}.Bold()
)

const statusColumn = 2

// WriteTable renders the records as a bordered table. When styled, the
// header is set in bold and the status cells are coloured.
func WriteTable(w io.Writer, records []types.Record, styled bool) error {
	rows := make([][]string, 0, len(records))
	widths := make([]int, len(Header))
	for col, title := range Header {
		widths[col] = utf8.RuneCountInString(title)
	}
	for _, r := range records {
		row := Row(r)
		for col, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[col] {
				widths[col] = n
			}
		}
		rows = append(rows, row)
	}

	bw := bufio.NewWriter(w)
	rule := separator(widths)
	bw.WriteString(rule)
	writeRow(bw, Header, widths, func(_ int, cell string) string {
		if styled {
			return headerStyle.Styled(cell)
		}
		return cell
	})
	bw.WriteString(rule)
	for idx, row := range rows {
		status := records[idx].Status
		writeRow(bw, row, widths, func(col int, cell string) string {
			if !styled || col != statusColumn {
				return cell
			}
			return statusStyle(status).Styled(cell)
		})
	}
	if len(rows) > 0 {
		bw.WriteString(rule)
	}
	return bw.Flush()
}

func statusStyle(status types.Status) termenv.Style {
	switch status {
	case types.Online:
		return onlineStyle
	case types.Offline:
		return offlineStyle
	default:
		return unknownStyle
	}
}

// separator returns a horizontal rule such as "+-----+---+\n".
func separator(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, width := range widths {
		b.WriteString(strings.Repeat("-", width+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}

// writeRow writes the cells padded to their column widths; style gets applied
// after padding, so escape sequences don't upset the alignment.
func writeRow(w io.Writer, cells []string, widths []int, style func(col int, cell string) string) {
	fmt.Fprint(w, "|")
	for col, cell := range cells {
		fmt.Fprintf(w, " %s |", style(col, fmt.Sprintf("%-*s", widths[col], cell)))
	}
	fmt.Fprintln(w)
}
