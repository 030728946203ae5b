package report

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/senkyo/pkg/compare"
	"github.com/Sumatoshi-tech/senkyo/pkg/dashboard"
	"github.com/Sumatoshi-tech/senkyo/pkg/election"
	"github.com/Sumatoshi-tech/senkyo/pkg/national"
	"github.com/Sumatoshi-tech/senkyo/pkg/parties"
	"github.com/Sumatoshi-tech/senkyo/pkg/tilemap"
)

const (
	indexID       = "index"
	radarMaxParty = 6
	dirPerm       = 0o755
)

// ErrNoPages is returned when a dataset yields nothing to draw.
var ErrNoPages = errors.New("no report pages to render")

// PageMeta describes a page for the index.
type PageMeta struct {
	ID          string
	Title       string
	Description string
}

// NamedPage is a page and its index entry.
type NamedPage struct {
	Meta PageMeta
	Page *Page
}

// Site writes a set of pages plus an index into a directory.
type Site struct {
	Dir   string
	Title string
	Theme Theme
}

// Write renders every page to <Dir>/<id>.html and an index linking them.
func (s *Site) Write(pages []NamedPage) error {
	if len(pages) == 0 {
		return ErrNoPages
	}

	if err := os.MkdirAll(s.Dir, dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", s.Dir, err)
	}

	metas := make([]PageMeta, len(pages))

	for i, np := range pages {
		metas[i] = np.Meta
		np.Page.Theme = s.Theme
		np.Page.Nav = true

		if err := s.writePage(np.Meta.ID, np.Page); err != nil {
			return err
		}
	}

	index, err := s.Index(metas)
	if err != nil {
		return err
	}

	return s.writePage(indexID, index)
}

// Index builds the landing page linking to every page in metas.
func (s *Site) Index(metas []PageMeta) (*Page, error) {
	content, err := renderTemplate("index.html", indexData{Pages: metas})
	if err != nil {
		return nil, fmt.Errorf("render index content: %w", err)
	}

	page := NewPage(s.Title, "表示するレポートを選択してください。").WithTheme(s.Theme)
	page.Add(Section{Chart: rawHTML(content)})

	return page, nil
}

func (s *Site) writePage(id string, page *Page) (err error) {
	path := filepath.Join(s.Dir, id+".html")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render %s: %w", id, err)
	}

	return nil
}

// Build turns a dataset into report pages under filter f. Pages whose data
// is missing are skipped; unavailable sources are listed on the summary page.
func Build(ds *dashboard.Dataset, f dashboard.Filter, theme Theme) []NamedPage {
	c := NewChartOpts(theme)

	var pages []NamedPage

	if p := summaryPage(c, ds, f); p != nil {
		pages = append(pages, *p)
	}

	if p := heatmapPage(c, ds, f); p != nil {
		pages = append(pages, *p)
	}

	if p := comparePage(c, ds, f); p != nil {
		pages = append(pages, *p)
	}

	if p := areaPage(c, ds); p != nil {
		pages = append(pages, *p)
	}

	if p := trendPage(c, ds); p != nil {
		pages = append(pages, *p)
	}

	if p := tilePage(c, ds); p != nil {
		pages = append(pages, *p)
	}

	if p := nationalPage(c, ds); p != nil {
		pages = append(pages, *p)
	}

	return pages
}

func unavailableNotice(ds *dashboard.Dataset) string {
	missing := ds.Unavailable()
	if len(missing) == 0 {
		return ""
	}

	paths := make([]string, len(missing))
	for i, s := range missing {
		paths[i] = s.Path
	}

	return "読み込めなかったデータ: " + strings.Join(paths, ", ")
}

func summaryPage(c *ChartOpts, ds *dashboard.Dataset, f dashboard.Filter) *NamedPage {
	rows := dashboard.Apply(ds.Rows, f)
	if len(rows) == 0 && len(ds.Unavailable()) == 0 {
		return nil
	}

	totals := election.PartyTotals(rows)
	total := 0

	for _, r := range totals {
		total += r.Votes
	}

	page := NewPage("政党別得票", fmt.Sprintf("%d年 / 総得票数 %s", f.Year, election.FormatVotes(total)))
	page.Notice = unavailableNotice(ds)
	page.Add(
		Section{Title: "政党別得票数", Chart: PartyBarChart(c, totals)},
		Section{Title: "得票率", Chart: VoteSharePie(c, totals)},
	)

	return &NamedPage{
		Meta: PageMeta{ID: "summary", Title: "政党別得票", Description: "選択した年の政党別得票数と得票率"},
		Page: page,
	}
}

// heatmapPage shades wards by turnout, and by the vote rate of the first
// selected party or else the leading party.
func heatmapPage(c *ChartOpts, ds *dashboard.Dataset, f dashboard.Filter) *NamedPage {
	rows := dashboard.Apply(ds.Rows, f)
	if len(rows) == 0 {
		return nil
	}

	page := NewPage("区市別ヒートマップ", fmt.Sprintf("%d年", f.Year))
	page.Add(Section{Title: "投票率", Chart: WardHeatmap(c, election.Heatmap(rows, ""))})

	target := ""
	if len(f.Parties) > 0 {
		target = f.Parties[0]
	} else if totals := election.PartyTotals(rows); len(totals) > 0 {
		target = totals[0].PartyName
	}

	if target != "" {
		page.Add(Section{
			Title:    target + " 得票率",
			Subtitle: "色の濃さは地域間の相対的な高さを表します",
			Chart:    WardHeatmap(c, election.Heatmap(rows, target)),
		})
	}

	return &NamedPage{
		Meta: PageMeta{ID: "heatmap", Title: "区市別ヒートマップ", Description: "区市ごとの投票率と政党得票率"},
		Page: page,
	}
}

func comparePage(c *ChartOpts, ds *dashboard.Dataset, f dashboard.Filter) *NamedPage {
	var (
		comparisons []compare.PartyComparison
		subtitle    string
	)

	switch {
	case f.ComparisonYear != 0 && f.Year != 0:
		comparisons = dashboard.CompareYears(ds.Rows, f, f.ComparisonYear, f.Year)
		subtitle = fmt.Sprintf("%d年 → %d年", f.ComparisonYear, f.Year)
	case ds.Master != nil && len(ds.Master.YearList()) >= 2: //nolint:mnd // need two years to compare.
		years := ds.Master.YearList()
		a, b := years[len(years)-2], years[len(years)-1]
		comparisons = ds.Master.Compare(a, b, compare.TierSyosenkyoku)
		subtitle = fmt.Sprintf("%s %s %d年 → %d年", ds.Master.Region, ds.Master.Senkyoku, a, b)
	}

	if len(comparisons) == 0 {
		return nil
	}

	page := NewPage("前回比較", subtitle)
	page.Add(Section{
		Title: "得票率の増減",
		Chart: SwingBar(c, comparisons),
		Hint: Hint{Title: "色の見方", Items: []string{
			compare.SwingSurge.Label() + ": +5pt以上",
			compare.SwingGain.Label() + ": +2pt以上",
			compare.SwingStable.Label() + ": -2pt以上 +2pt未満",
			compare.SwingLoss.Label() + ": -5pt以上 -2pt未満",
			compare.SwingCollapse.Label() + ": -5pt未満",
		}},
	})

	return &NamedPage{
		Meta: PageMeta{ID: "compare", Title: "前回比較", Description: "政党ごとの得票率の増減"},
		Page: page,
	}
}

func areaPage(c *ChartOpts, ds *dashboard.Dataset) *NamedPage {
	view, err := dashboard.Areas(ds.Master, dashboard.AreaQuery{})
	if err != nil || len(view.Areas) == 0 {
		return nil
	}

	subtitle := fmt.Sprintf("%s %s %d年", view.Region, view.Senkyoku, view.Year)

	page := NewPage("投票所・地域分析", subtitle)
	page.Add(Section{Title: "地域別の構成比", Chart: AreaShareBar(c, view.Areas)})

	if view.Prev != 0 {
		page.Add(Section{
			Title:    fmt.Sprintf("投票所別 投票率の増減 (%d年比)", view.Prev),
			Subtitle: "横軸は投票所番号",
			Chart:    PrecinctChangeBar(c, view.Precincts),
		})
	}

	return &NamedPage{
		Meta: PageMeta{ID: "areas", Title: "投票所・地域分析", Description: "投票所ごとの構成比と前回比"},
		Page: page,
	}
}

func trendPage(c *ChartOpts, ds *dashboard.Dataset) *NamedPage {
	if ds.Trends == nil {
		return nil
	}

	page := NewPage("得票率の推移", "")

	if s := ds.Trends.UnifiedLocal; len(s) > 0 {
		names := compare.Parties(s)
		page.Add(Section{Title: "統一地方選挙", Chart: TrendLine(c, s, names)})

		if steps := compare.Consecutive(s, names); len(steps) > 0 {
			page.Add(Section{Title: "統一地方選挙 直近の増減", Chart: SwingBar(c, steps[len(steps)-1])})
		}
	}

	if s := ds.Trends.TokyoWardHirei; len(s) > 0 {
		page.Add(Section{Title: "東京都区部 比例代表", Chart: TrendLine(c, s, compare.Parties(s))})
	}

	if len(page.Sections) == 0 {
		return nil
	}

	return &NamedPage{
		Meta: PageMeta{ID: "trend", Title: "得票率の推移", Description: "複数回の選挙にわたる政党別得票率"},
		Page: page,
	}
}

func tilePage(c *ChartOpts, ds *dashboard.Dataset) *NamedPage {
	page := NewPage("地域別", "")

	if len(ds.Tiles) > 0 {
		page.Add(Section{
			Title:    "都道府県別投票率",
			Subtitle: "タイルの色は投票率の高さを表します",
			Chart:    TileMapChart(c, tilemap.Layout(ds.Tiles, tilemap.ModeTurnout, "", nil)),
		})
	}

	if ds.Wards != nil && len(ds.Wards.Wards) > 0 {
		averages := ds.Wards.PartyAverages(localParties(ds.Wards))

		names := make([]string, 0, radarMaxParty)
		for _, a := range averages {
			if len(names) == radarMaxParty {
				break
			}

			names = append(names, a.Party)
		}

		page.Add(Section{
			Title:    ds.Wards.Name,
			Subtitle: "区別の政党得票率",
			Chart:    PartyRadar(c, ds.Wards.ByTurnout(), names),
		})
	}

	if len(page.Sections) == 0 {
		return nil
	}

	return &NamedPage{
		Meta: PageMeta{ID: "regions", Title: "地域別", Description: "都道府県タイルマップと区別レーダー"},
		Page: page,
	}
}

func localParties(e *tilemap.LocalElection) []string {
	var out []string

	seen := make(map[string]bool)

	for _, w := range e.Wards {
		for _, p := range parties.All() {
			if _, ok := w.VotesByParty[p.Name]; ok && !seen[p.Name] {
				seen[p.Name] = true
				out = append(out, p.Name)
			}
		}

		for _, name := range slices.Sorted(maps.Keys(w.VotesByParty)) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}

	return out
}

func nationalPage(c *ChartOpts, ds *dashboard.Dataset) *NamedPage {
	if ds.National == nil {
		return nil
	}

	totals := national.NationalShouTotals(ds.National.Shou.Prefectures)
	if len(totals) == 0 {
		return nil
	}

	labels := make([]string, len(totals))
	data := make([]opts.BarData, len(totals))

	for i, t := range totals {
		labels[i] = parties.ShortName(t.Party)
		data[i] = opts.BarData{Name: t.Party, Value: t.Seats, ItemStyle: &opts.ItemStyle{Color: parties.Color(t.Party)}}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(c.Init()),
		charts.WithTooltipOpts(c.Tooltip("axis")),
		charts.WithGridOpts(c.Grid()),
		charts.WithXAxisOpts(c.XAxis("")),
		charts.WithYAxisOpts(c.YAxis("議席")),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("小選挙区議席", data)

	year := strconv.Itoa(ds.National.Year)
	page := NewPage(year+"年 衆議院選挙", ds.National.ElectionDate)
	page.Add(Section{Title: "小選挙区 政党別議席", Chart: bar})

	return &NamedPage{
		Meta: PageMeta{ID: "national", Title: "衆議院選挙", Description: "小選挙区の政党別議席"},
		Page: page,
	}
}
