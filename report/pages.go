package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/urbanstats/bikeshare/stats"
	"github.com/urbanstats/bikeshare/trips"
)

func newDisplayTable(out *strings.Builder, headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders:  tw.BorderNone,
			Settings: tw.Settings{Separators: tw.Separators{ShowHeader: tw.Off}},
		}),
	)
	table.Header(headers)
	return table
}

func (session *Session) renderDistribution(columnName string, distribution stats.Distribution) string {
	var rendered strings.Builder
	table := newDisplayTable(&rendered, []string{columnName, "Count"})

	rows := make([][]string, 0, len(distribution))
	for _, entry := range distribution {
		rows = append(rows, []string{entry.Value, strconv.Itoa(entry.Count)})
	}

	table.Bulk(rows)
	table.Render()
	return strings.TrimRight(rendered.String(), "\n")
}

// displayRecords shows the filtered trip records in fixed-size pages, asking
// between pages whether to continue.
func (session *Session) displayRecords(table *trips.Table) error {
	fmt.Fprint(session.Out, "\nUser trip details:\n")

	pageSize := session.Config.PageSize
	headers := table.ColumnNames()

	for start := 0; start < table.Len(); start += pageSize {
		end := start + pageSize
		if end > table.Len() {
			end = table.Len()
		}

		rows := make([][]string, 0, pageSize)
		for i := start; i < end; i++ {
			rows = append(rows, table.DisplayFields(i))
		}

		var page strings.Builder
		pageTable := newDisplayTable(&page, headers)
		pageTable.Bulk(rows)
		pageTable.Render()
		fmt.Fprint(session.Out, page.String())

		if end == table.Len() {
			break
		}

		more, err := session.Prompter.Continue()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		fmt.Fprintln(session.Out)
	}

	fmt.Fprint(session.Out, "End of trip details file.\n\n")
	return nil
}
