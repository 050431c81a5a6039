package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

func exportFixture() []entity.Submission {
	created := time.Date(2024, 5, 13, 10, 30, 0, 0, time.Local)
	approved := time.Date(2024, 5, 14, 9, 0, 0, 0, time.Local)

	return []entity.Submission{
		{
			ID:         "sub-001",
			OwnerID:    "user-1",
			Status:     entity.StatusApproved,
			CreatedAt:  created,
			ApprovedAt: &approved,
			Applicant:  &entity.Profile{UserID: "user-1", Email: "taro@example.com", Name: "山田太郎"},
			Lines: []entity.ExpenseLine{
				{
					Kind:       entity.KindOneTime,
					From:       "京都",
					To:         "大阪",
					Amount:     "560",
					TravelDate: "2024-05-10",
					Carrier:    "JR",
					Notes:      "打ち合わせ",
				},
				{
					Kind:        entity.KindRegular,
					From:        "京都",
					To:          "烏丸御池",
					Amount:      "9020",
					PeriodStart: "2024-05-01",
					PeriodEnd:   "2024-05-31",
					Carrier:     "地下鉄",
				},
			},
		},
	}
}

func TestBuildCSV(t *testing.T) {
	data := BuildCSV(exportFixture())
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "\uFEFF"), "export starts with a BOM")

	lines := strings.Split(strings.TrimSuffix(content, "\r\n"), "\r\n")
	require.Len(t, lines, 3, "header plus one row per expense line")

	header := strings.TrimPrefix(lines[0], "\uFEFF")
	assert.Equal(t,
		"申請NO,申請ID,申請者,申請日,ステータス,タイプ,利用日,定期期間,交通機関,出発駅,帰着駅,金額,備考欄,承認日,却下日",
		header)

	first := lines[1]
	assert.Contains(t, first, `"1"`)
	assert.Contains(t, first, `"sub-001"`)
	assert.Contains(t, first, `"山田太郎"`)
	assert.Contains(t, first, `"単発"`)
	assert.Contains(t, first, `"2024-05-10"`)
	assert.Contains(t, first, `"JR"`)
	assert.Contains(t, first, `"560"`)
	assert.Contains(t, first, `"承認"`)

	second := lines[2]
	assert.Contains(t, second, `"1"`, "lines of one submission share its number")
	assert.Contains(t, second, `"定期"`)
	assert.Contains(t, second, `"2024-05-01 ~ 2024-05-31"`)
	assert.NotContains(t, second, `"2024-05-01",`+`"2024-05-01`, "travel date column empty for regular lines")
}

func TestBuildCSV_EveryFieldQuoted(t *testing.T) {
	data := BuildCSV(exportFixture())
	lines := strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")

	for _, row := range lines[1:] {
		fields := strings.Split(row, ",")
		require.Len(t, fields, 15)
		for _, f := range fields {
			assert.True(t, strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`),
				"field %q is double-quote wrapped", f)
		}
	}
}

func TestBuildCSV_QuotesEscaped(t *testing.T) {
	subs := exportFixture()
	subs[0].Lines = subs[0].Lines[:1]
	subs[0].Lines[0].Notes = `要確認 "会議"`

	content := string(BuildCSV(subs))
	assert.Contains(t, content, `"要確認 ""会議"""`)
}

func TestBuildCSV_FallsBackToEmailThenUnknown(t *testing.T) {
	subs := exportFixture()
	subs[0].Applicant.Name = ""
	assert.Contains(t, string(BuildCSV(subs)), `"taro@example.com"`)

	subs[0].Applicant = nil
	assert.Contains(t, string(BuildCSV(subs)), `"不明"`)
}

func TestBuildCSV_Empty(t *testing.T) {
	content := string(BuildCSV(nil))
	lines := strings.Split(strings.TrimSuffix(content, "\r\n"), "\r\n")
	assert.Len(t, lines, 1, "header only")
}
