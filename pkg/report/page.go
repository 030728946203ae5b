package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = len("</style>")

// Style defines chart dimensions and grid margins.
type Style struct {
	Width      string
	Height     string
	GridLeft   string
	GridRight  string
	GridTop    string
	GridBottom string
}

// DefaultStyle returns the default chart style.
func DefaultStyle() Style {
	return Style{
		Width:      "100%",
		Height:     "420px",
		GridLeft:   "4%",
		GridRight:  "4%",
		GridTop:    "48",
		GridBottom: "8%",
	}
}

// Hint contains reading guidance shown under a chart.
type Hint struct {
	Title string
	Items []string
}

// Section is one chart, with its heading, on a page.
type Section struct {
	Title    string
	Subtitle string
	Hint     Hint
	Chart    Renderable
}

// Renderable is implemented by every go-echarts chart.
type Renderable interface {
	Render(w io.Writer) error
}

// Page is a complete self-contained HTML document.
type Page struct {
	Title       string
	Description string
	SiteName    string
	Notice      string
	Theme       Theme
	Nav         bool
	Sections    []Section
}

// NewPage creates a page with the light theme.
func NewPage(title, description string) *Page {
	return &Page{
		Title:       title,
		Description: description,
		SiteName:    "senkyo",
		Theme:       ThemeLight,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	var sectionsHTML bytes.Buffer

	for _, section := range p.Sections {
		html, err := renderSection(section)
		if err != nil {
			return fmt.Errorf("render section %q: %w", section.Title, err)
		}

		sectionsHTML.WriteString(string(html))
	}

	html, err := renderTemplate("page.html", pageData{
		Title:       p.Title,
		Description: p.Description,
		SiteName:    p.SiteName,
		Notice:      p.Notice,
		Nav:         p.Nav,
		Dark:        p.Theme == ThemeDark,
		Theme:       GetThemeConfig(p.Theme),
		Content:     template.HTML(sectionsHTML.String()), //nolint:gosec // rendered by our own templates.
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	if _, err := io.WriteString(w, string(html)); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func renderSection(section Section) (template.HTML, error) {
	chartHTML, err := renderChart(section.Chart)
	if err != nil {
		return "", err
	}

	data := sectionData{
		Title:    section.Title,
		Subtitle: section.Subtitle,
		Chart:    template.HTML(chartHTML), //nolint:gosec // go-echarts output.
	}

	if len(section.Hint.Items) > 0 {
		data.Hint = &section.Hint
	}

	return renderTemplate("section.html", data)
}

func renderChart(chart Renderable) (string, error) {
	if chart == nil {
		return "", nil
	}

	var buf bytes.Buffer

	if err := chart.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return extractChartContent(buf.String()), nil
}

// extractChartContent strips the document wrapper go-echarts emits so the
// chart div and its script can be embedded in our page.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	end := strings.Index(html, `</body>`)

	if start == -1 || end == -1 || end < start {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}
}

// rawHTML is a Renderable that writes pre-rendered HTML.
type rawHTML template.HTML

func (r rawHTML) Render(w io.Writer) error {
	if _, err := io.WriteString(w, string(r)); err != nil {
		return fmt.Errorf("write raw html: %w", err)
	}

	return nil
}
