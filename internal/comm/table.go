package comm

import (
	"github.com/olekukonko/tablewriter"
)

// Table prints rows under a header. In JSON mode each row becomes a result
// object keyed by the header instead.
func Table(header []string, rows [][]string) {
	if settings.json {
		for _, row := range rows {
			value := make(map[string]string, len(row))
			for i, cell := range row {
				if i < len(header) {
					value[header[i]] = cell
				}
			}
			Result(value)
		}
		return
	}

	table := tablewriter.NewWriter(stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}
