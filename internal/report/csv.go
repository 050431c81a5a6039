package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// DefaultCSVFilename is the download name offered for the export.
const DefaultCSVFilename = "approved_expenses.csv"

// timestampLayout renders workflow timestamps in the export.
const timestampLayout = "2006/01/02 15:04:05"

// csvHeaders are the 15 fixed export columns.
var csvHeaders = []string{
	"申請NO", "申請ID", "申請者", "申請日", "ステータス", "タイプ",
	"利用日", "定期期間", "交通機関", "出発駅", "帰着駅", "金額",
	"備考欄", "承認日", "却下日",
}

// BuildCSV renders the export: UTF-8 with BOM, the fixed header row, one
// double-quoted data row per expense line (not per submission), CRLF line
// endings. Submissions are numbered in input order; every line of a
// submission shares its number.
func BuildCSV(submissions []entity.Submission) []byte {
	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString(strings.Join(csvHeaders, ","))
	b.WriteString("\r\n")

	for _, row := range exportRows(submissions) {
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

// exportRows flattens submissions into the 15-column table shared by the
// CSV and XLSX renderings.
func exportRows(submissions []entity.Submission) [][]string {
	var rows [][]string
	counter := 0
	for _, s := range submissions {
		counter++
		for _, line := range s.Lines {
			rows = append(rows, []string{
				strconv.Itoa(counter),
				s.ID,
				s.ApplicantName(),
				s.CreatedAt.Format(timestampLayout),
				entity.StatusLabel(s.Status),
				line.KindLabel(),
				travelDateColumn(line),
				periodColumn(line),
				line.Carrier,
				line.From,
				line.To,
				line.Amount,
				line.Notes,
				formatOptional(s.ApprovedAt),
				formatOptional(s.RejectedAt),
			})
		}
	}
	return rows
}

func travelDateColumn(l entity.ExpenseLine) string {
	if l.Kind == entity.KindOneTime || l.Kind == entity.KindBusinessTrip {
		return l.TravelDate
	}
	return ""
}

func periodColumn(l entity.ExpenseLine) string {
	if l.Kind == entity.KindRegular {
		return l.PeriodStart + " ~ " + l.PeriodEnd
	}
	return ""
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timestampLayout)
}
