package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/ingest"
	"github.com/Sumatoshi-tech/senkyo/pkg/national"
	"github.com/Sumatoshi-tech/senkyo/pkg/parties"
	"github.com/Sumatoshi-tech/senkyo/pkg/precinct"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

const (
	shareDecimals = 2
	winnerMark    = "当"
	noData        = "データがありません"
)

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false

	if title != "" {
		tbl.SetTitle(title)
	}

	return tbl
}

func alignRight(cols ...int) []table.ColumnConfig {
	out := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		out[i] = table.ColumnConfig{Number: c, Align: text.AlignRight, AlignFooter: text.AlignRight}
	}

	return out
}

func pct(v float64) string {
	return election.FormatPercent(v, shareDecimals)
}

// PartyTable lists party totals.
func PartyTable(results []election.PartyResult) string {
	if len(results) == 0 {
		return noData
	}

	tbl := newTable("")
	tbl.AppendHeader(table.Row{"政党", "略称", "得票数", "得票率", "議席"})
	tbl.SetColumnConfigs(alignRight(3, 4, 5))

	total, seats := 0, 0

	for _, r := range results {
		tbl.AppendRow(table.Row{r.PartyName, parties.ShortName(r.PartyName), election.FormatVotes(r.Votes), pct(r.VoteShare), r.Seats})
		total += r.Votes
		seats += r.Seats
	}

	tbl.AppendFooter(table.Row{"合計", "", election.FormatVotes(total), "", seats})

	return tbl.Render()
}

// DistrictTable lists every candidate of every district, marking winners.
func DistrictTable(summaries []*election.DistrictSummary) string {
	if len(summaries) == 0 {
		return noData
	}

	tbl := newTable("")
	tbl.AppendHeader(table.Row{"地域", "選挙区", "", "候補者", "政党", "得票数", "得票率", "投票率"})
	tbl.SetColumnConfigs(alignRight(6, 7, 8))

	for _, s := range summaries {
		for i, r := range s.Results {
			mark, turnout := "", ""
			if r.IsWinner {
				mark = winnerMark
			}

			if i == 0 {
				turnout = pct(s.TurnoutRate)
			}

			tbl.AppendRow(table.Row{s.RegionName, s.District, mark, r.CandidateName, r.PartyName,
				election.FormatVotes(r.Votes), pct(r.VoteShare), turnout})
		}
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%d 選挙区", len(summaries))})

	return tbl.Render()
}

// WardTable lists ward rollups with the leading party of each ward.
func WardTable(summaries []*election.WardSummary) string {
	if len(summaries) == 0 {
		return noData
	}

	tbl := newTable("")
	tbl.AppendHeader(table.Row{"区", "得票数", "有権者数", "投票率", "定数", "第一党"})
	tbl.SetColumnConfigs(alignRight(2, 3, 4, 5))

	for _, s := range summaries {
		top := ""
		if len(s.PartyResults) > 0 {
			top = s.PartyResults[0].PartyName
		}

		tbl.AppendRow(table.Row{s.WardName, election.FormatVotes(s.TotalVotes),
			election.FormatVotes(s.EligibleVoters), pct(s.TurnoutRate), s.Seats, top})
	}

	return tbl.Render()
}

// HeatmapTable lists heat map values per region.
func HeatmapTable(data []election.HeatmapData) string {
	if len(data) == 0 {
		return noData
	}

	title := "投票率"
	if data[0].PartyName != "" {
		title = data[0].PartyName + " 得票率"
	}

	fills := tilemap.HeatmapFills(data)

	tbl := newTable(title)
	tbl.AppendHeader(table.Row{"ID", "地域", "値", "色"})
	tbl.SetColumnConfigs(alignRight(3))

	for i, d := range data {
		tbl.AppendRow(table.Row{d.RegionID, d.RegionName, pct(d.Value), fills[i]})
	}

	return tbl.Render()
}

// ComparisonTable lists a year-over-year comparison with coloured swings.
func ComparisonTable(comparisons []compare.PartyComparison, earlier, later string) string {
	if len(comparisons) == 0 {
		return noData
	}

	tbl := newTable(earlier + " → " + later)
	tbl.AppendHeader(table.Row{"政党", earlier, later, "増減", earlier + " 率", later + " 率", "増減 pt", "傾向"})
	tbl.SetColumnConfigs(alignRight(2, 3, 4, 5, 6, 7))

	for _, c := range comparisons {
		diff := election.FormatVotes(c.VoteDiff)
		if c.VoteDiff > 0 {
			diff = "+" + diff
		}

		tbl.AppendRow(table.Row{c.Party, election.FormatVotes(c.Votes2024), election.FormatVotes(c.Votes2026), diff,
			pct(c.Rate2024), pct(c.Rate2026), Signed(c.RateDiff), SwingLabel(c.Swing())})
	}

	return tbl.Render()
}

// CellTable lists tile map cells in grid order.
func CellTable(cells []tilemap.Cell) string {
	if len(cells) == 0 {
		return noData
	}

	tbl := newTable("")
	tbl.AppendHeader(table.Row{"コード", "都道府県", "列", "行", "色", "表示"})

	for _, c := range cells {
		tbl.AppendRow(table.Row{c.Code, c.Label, c.Position.Col, c.Position.Row, c.Fill, c.SubLabel})
	}

	return tbl.Render()
}

// HireiTable lists proportional list candidates.
func HireiTable(cands []national.HireiCandidate) string {
	if len(cands) == 0 {
		return noData
	}

	tbl := newTable("")
	tbl.AppendHeader(table.Row{"順位", "氏名", "年齢", "政党", "結果", "得票数", "惜敗率"})
	tbl.SetColumnConfigs(alignRight(1, 3, 6, 7))

	for _, c := range cands {
		votes, ratio := "", ""
		if c.Votes > 0 {
			votes = election.FormatVotes(c.Votes)
		}

		if c.Sekihairitsu > 0 {
			ratio = pct(c.Sekihairitsu)
		}

		tbl.AppendRow(table.Row{c.Rank, c.Name, c.Age, c.Party, string(c.Result), votes, ratio})
	}

	return tbl.Render()
}

// SeatTable lists nationwide district seats per party.
func SeatTable(seats []national.PartySeats) string {
	if len(seats) == 0 {
		return noData
	}

	tbl := newTable("小選挙区")
	tbl.AppendHeader(table.Row{"政党", "議席", "得票数"})
	tbl.SetColumnConfigs(alignRight(2, 3))

	total := 0

	for _, s := range seats {
		tbl.AppendRow(table.Row{s.Party, s.Seats, election.FormatVotes(s.Votes)})
		total += s.Seats
	}

	tbl.AppendFooter(table.Row{"合計", total, ""})

	return tbl.Render()
}

// SeatMatrixTable lists proportional seats per block and party.
func SeatMatrixTable(rows []national.SeatRow, names []string) string {
	if len(rows) == 0 {
		return noData
	}

	header := table.Row{"ブロック", "定数"}
	for _, n := range names {
		header = append(header, parties.ShortName(n))
	}

	tbl := newTable("比例代表")
	tbl.AppendHeader(header)

	for _, r := range rows {
		row := table.Row{r.Block, r.TotalSeats}
		for _, n := range names {
			row = append(row, r.Seats[n])
		}

		tbl.AppendRow(row)
	}

	return tbl.Render()
}

// PerformanceTable lists a party's showing per prefecture.
func PerformanceTable(party string, perf []national.Performance) string {
	if len(perf) == 0 {
		return noData
	}

	tbl := newTable(party)
	tbl.AppendHeader(table.Row{"都道府県", "議席", "選挙区数", "勝率", "得票率", "得票数"})
	tbl.SetColumnConfigs(alignRight(2, 3, 4, 5, 6))

	for _, p := range perf {
		tbl.AppendRow(table.Row{p.Prefecture, p.Seats, p.TotalDistricts, pct(p.WinRate), pct(p.VoteRate), election.FormatVotes(p.TotalVotes)})
	}

	return tbl.Render()
}

// PrecinctTable lists polling precincts and the towns they cover.
func PrecinctTable(ps []precinct.Precinct) string {
	if len(ps) == 0 {
		return noData
	}

	tbl := newTable("")
	tbl.AppendHeader(table.Row{"番号", "投票所", "選挙区", "地域", "町丁"})
	tbl.SetColumnConfigs(alignRight(1))

	for _, p := range ps {
		tbl.AppendRow(table.Row{strconv.Itoa(p.ID), p.Name, p.Constituency, p.Area, strings.Join(p.Towns, "、")})
	}

	return tbl.Render()
}

// AreaTable lists local-area rollups, then every precinct, of an area view.
// Changes are shown only when the view has a previous year.
func AreaTable(view *dashboard.AreaView) string {
	if view == nil || len(view.Precincts) == 0 {
		return noData
	}

	title := fmt.Sprintf("%s %s %d年", view.Region, view.Senkyoku, view.Year)
	if view.Prev != 0 {
		title += fmt.Sprintf(" (前回 %d年)", view.Prev)
	}

	areas := newTable(title)
	areas.AppendHeader(table.Row{"地域", "投票所", "投票者数", "構成比", "平均投票率", "前回比"})
	areas.SetColumnConfigs(alignRight(2, 3, 4, 5, 6))

	for _, a := range view.Areas {
		areas.AppendRow(table.Row{
			a.Area, a.Precincts, election.FormatVotes(a.Totals.TotalVotes), pct(a.Ratio), pct(a.Totals.AvgTurnout),
			voteChange(view.Prev != 0, a.VoteDiff),
		})
	}

	precincts := newTable("")
	precincts.AppendHeader(table.Row{"番号", "投票所", "地域", "投票者数", "構成比", "投票率", "前回比", "投票率差", "構成比差"})
	precincts.SetColumnConfigs(alignRight(1, 4, 5, 6, 7, 8, 9))

	for _, p := range view.Precincts {
		row := table.Row{strconv.Itoa(p.ID), p.Name, p.Area, election.FormatVotes(p.TotalVotes), pct(p.Ratio), pct(p.TurnoutRate)}
		if p.HasPrev {
			row = append(row, voteChange(true, p.VoteDiff), Signed(p.TurnoutDiff), Signed(p.RatioDiff))
		} else {
			row = append(row, "-", "-", "-")
		}

		precincts.AppendRow(row)
	}

	return areas.Render() + "\n\n" + precincts.Render()
}

func voteChange(known bool, diff int) string {
	switch {
	case !known:
		return "-"
	case diff > 0:
		return color.GreenString("+" + election.FormatVotes(diff))
	case diff < 0:
		return color.RedString(election.FormatVotes(diff))
	default:
		return "0"
	}
}

// WorkbookTable lists municipality totals of an imported workbook, one
// column per party.
func WorkbookTable(wb *ingest.Workbook) string {
	if wb == nil || len(wb.Municipalities) == 0 {
		return noData
	}

	header := table.Row{"市区町村", "種別"}
	cols := make([]int, 0, len(wb.Parties)+1)

	for i, p := range wb.Parties {
		header = append(header, p.Name)
		cols = append(cols, i+3)
	}

	header = append(header, "計")
	cols = append(cols, len(wb.Parties)+3)

	tbl := newTable(strings.TrimSpace(wb.ElectionType + " " + wb.ElectionDate))
	tbl.AppendHeader(header)
	tbl.SetColumnConfigs(alignRight(cols...))

	for _, m := range wb.Municipalities {
		row := table.Row{m.Name, m.Type}
		for _, p := range wb.Parties {
			row = append(row, election.FormatVotes(m.Votes[p.Name]))
		}

		tbl.AppendRow(append(row, election.FormatVotes(m.Total)))
	}

	return tbl.Render()
}

// VerdictTable lists validation outcomes, one problem per row.
func VerdictTable(verdicts []ingest.Verdict) string {
	if len(verdicts) == 0 {
		return noData
	}

	tbl := newTable("")
	tbl.AppendHeader(table.Row{"file", "kind", "rows", "result"})
	tbl.SetColumnConfigs(alignRight(3))

	for _, v := range verdicts {
		if v.Valid() {
			tbl.AppendRow(table.Row{v.Path, string(v.Kind), v.Rows, color.GreenString("ok")})

			continue
		}

		for i, p := range v.Problems {
			name := v.Path
			if i > 0 {
				name = ""
			}

			tbl.AppendRow(table.Row{name, string(v.Kind), "", color.RedString(p)})
		}
	}

	return tbl.Render()
}
