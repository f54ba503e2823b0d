package cli

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"ecotracker/internal/model"
	"ecotracker/internal/repository"
	"ecotracker/internal/service"
)

const timestampLayout = "2006-01-02 15:04"

func newGrid(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func renderUsers(w io.Writer, users []model.User) {
	table := newGrid(w, []string{"ID", "Username", "Created At"})
	for _, u := range users {
		table.Append([]string{
			formatID(u.ID),
			u.Username,
			u.CreatedAt.Format(timestampLayout),
		})
	}
	table.Render()
}

func renderActivities(w io.Writer, rows []repository.ActivityRow) {
	table := newGrid(w, []string{"ID", "Activity Type", "User", "Quantity", "Emission", "Date"})
	for _, r := range rows {
		table.Append([]string{
			formatID(r.ID),
			r.ActivityType,
			r.Username,
			formatAmount(r.Quantity),
			formatAmount(r.Emission),
			r.ActivityDate.Format(timestampLayout),
		})
	}
	table.Render()
}

func renderGoals(w io.Writer, goals []model.Goal) {
	table := newGrid(w, []string{"ID", "Description", "Target (kg CO2)", "Deadline"})
	for _, g := range goals {
		table.Append([]string{
			formatID(g.ID),
			g.Description,
			formatAmount(g.TargetEmission),
			g.Deadline.Format(dateLayout),
		})
	}
	table.Render()
}

func renderChart(w io.Writer, rows []service.BarRow) {
	table := newGrid(w, []string{"Username", "Total Emission (kg CO2)", "Bar"})
	for _, r := range rows {
		table.Append([]string{r.Username, r.Total, r.Bar})
	}
	table.Render()
}
