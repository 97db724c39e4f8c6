package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskhub/internal/models"
)

// ReportGenerator renders a user's task list as a PDF document.
type ReportGenerator interface {
	TaskReport(w io.Writer, user *models.User, tasks []models.Task, stats *models.TaskStats) error
}

type reportGenerator struct{}

func NewReportGenerator() ReportGenerator {
	return &reportGenerator{}
}

func (g *reportGenerator) TaskReport(w io.Writer, user *models.User, tasks []models.Task, stats *models.TaskStats) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Task report - %s", user.Name), true)
	pdf.SetAuthor("TaskHub", false)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Task Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s <%s>", user.Name, user.Email), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if stats != nil {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Total tasks: %d", stats.Total), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, g := range stats.ByStatus {
			pdf.CellFormat(0, 5, fmt.Sprintf("  %s: %d", g.Key, g.Count), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	// table header
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(75, 7, "Title", "1", 0, "L", true, 0, "")
	pdf.CellFormat(28, 7, "Status", "1", 0, "L", true, 0, "")
	pdf.CellFormat(22, 7, "Priority", "1", 0, "L", true, 0, "")
	pdf.CellFormat(27, 7, "Due", "1", 0, "L", true, 0, "")
	pdf.CellFormat(28, 7, "Created", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range tasks {
		title := truncateTitle(t.Title)
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		pdf.CellFormat(75, 6, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, string(t.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 6, string(t.Priority), "1", 0, "L", false, 0, "")
		pdf.CellFormat(27, 6, due, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, t.CreatedAt.Format("2006-01-02"), "1", 1, "L", false, 0, "")
	}
	if len(tasks) == 0 {
		pdf.CellFormat(180, 6, "No tasks", "1", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

// truncateTitle shortens a long title for the table column without
// splitting a rune mid-sequence.
func truncateTitle(s string) string {
	r := []rune(s)
	if len(r) <= 48 {
		return s
	}
	return string(r[:45]) + "..."
}
