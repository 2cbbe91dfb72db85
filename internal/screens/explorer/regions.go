package explorer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathfinder/internal/catalog"
	"github.com/abhisek/pathfinder/internal/explore"
	"github.com/abhisek/pathfinder/internal/ui/components"
	"github.com/abhisek/pathfinder/internal/ui/theme"
)

// renderRegion renders the non-loaded states of a region uniformly and
// hands loaded items to body.
func renderRegion[T any](r explore.Region[T], empty string, body func([]T) string) string {
	switch r.State {
	case explore.RegionLoading:
		return theme.Loading.Render("Loading…")
	case explore.RegionError:
		return theme.Failure.Render("✗ "+r.Message) + "\n" + theme.Hint.Render("Press r to retry.")
	case explore.RegionEmpty:
		return theme.Empty.Render(empty)
	case explore.RegionNeedsInstitution:
		return theme.Hint.Render("Pick an institution below to see its admission process.")
	case explore.RegionLoaded:
		if body == nil {
			return ""
		}
		return body(r.Items)
	}
	return theme.Hint.Render("Not loaded yet.")
}

func renderTabs(active explore.Tab) string {
	parts := make([]string, 0, len(explore.Tabs()))
	for i, t := range explore.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, t.Label())
		if t == active {
			parts = append(parts, theme.TabActive.Render(label))
		} else {
			parts = append(parts, theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderOverview(v explore.View, width int) string {
	if v.Pathway == nil {
		return renderRegion(v.Pathways, "", func([]catalog.Pathway) string {
			return theme.Empty.Render("This pathway is not in the current list.")
		})
	}
	p := v.Pathway

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.Name) + "\n\n")
	field(&b, "Type", string(p.Type))
	field(&b, "Duration", p.Duration)
	if p.Difficulty != "" {
		field(&b, "Difficulty", p.Difficulty)
	}
	field(&b, "Cost", costRange(p.Cost))
	if p.Placement.AverageSalary > 0 {
		field(&b, "Average salary", formatAmount(p.Placement.AverageSalary))
	}
	if len(p.Placement.TopRecruiters) > 0 {
		field(&b, "Top recruiters", strings.Join(p.Placement.TopRecruiters, ", "))
	}
	b.WriteString(components.RateBar("Placement", p.Placement.Rate, min(width, 60)) + "\n\n")

	field(&b, "Courses", summaryCount(v.Courses, "course"))
	field(&b, "Institutions", summaryCount(v.Institutions, "institution"))
	if len(p.ExamIDs) > 0 {
		field(&b, "Entrance exams", strconv.Itoa(len(p.ExamIDs)))
	}
	return b.String()
}

// summaryCount renders a region as a count for the overview.
func summaryCount[T any](r explore.Region[T], noun string) string {
	switch r.State {
	case explore.RegionLoaded:
		if len(r.Items) == 1 {
			return "1 " + noun
		}
		return fmt.Sprintf("%d %ss", len(r.Items), noun)
	case explore.RegionEmpty:
		return "none"
	case explore.RegionLoading:
		return theme.Loading.Render("loading…")
	case explore.RegionError:
		return theme.Failure.Render("unavailable")
	}
	return "–"
}

func renderCourses(courses []catalog.Course) string {
	var b strings.Builder
	for i, c := range courses {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Selected.Render(c.Name))
		if c.Duration != "" {
			b.WriteString(theme.Subtitle.Render("  " + c.Duration))
		}
		b.WriteString("\n")
		if len(c.Topics) > 0 {
			b.WriteString("  " + theme.Hint.Render("Topics: ") + strings.Join(c.Topics, ", ") + "\n")
		}
		if len(c.Skills) > 0 {
			b.WriteString("  " + theme.Hint.Render("Skills: ") + strings.Join(c.Skills, ", ") + "\n")
		}
	}
	return b.String()
}

func renderInstitutionCard(ib *catalog.InstitutionBinding) string {
	if ib == nil {
		return ""
	}
	var b strings.Builder
	field(&b, "Location", ib.Institution.Location)
	if ib.Institution.Ranking > 0 {
		field(&b, "Ranking", "#"+strconv.Itoa(ib.Institution.Ranking))
	}
	field(&b, "Fees", formatAmount(ib.Fees))
	if ib.Seats > 0 {
		field(&b, "Seats", strconv.Itoa(ib.Seats))
	}
	if len(ib.AcceptedExams) > 0 {
		field(&b, "Accepts", strings.Join(ib.AcceptedExams, ", "))
	}
	if len(ib.Institution.Facilities) > 0 {
		field(&b, "Facilities", strings.Join(ib.Institution.Facilities, ", "))
	}
	b.WriteString(theme.Hint.Render("Enter shows the admission process."))
	return b.String()
}

func renderAdmissions(processes []catalog.AdmissionProcess) string {
	var b strings.Builder
	for i, p := range processes {
		if i > 0 {
			b.WriteString("\n")
		}
		d := p.Dates
		for _, kv := range [][2]string{
			{"Applications open", d.ApplicationOpen},
			{"Applications close", d.ApplicationClose},
			{"Exam", d.Exam},
			{"Counselling", d.Counselling},
		} {
			if kv[1] != "" {
				field(&b, kv[0], kv[1])
			}
		}
		if s := prettyJSON(p.Eligibility); s != "" {
			b.WriteString(theme.Subtitle.Render("Eligibility") + "\n" + s + "\n")
		}
		if s := prettyJSON(p.PreparationResources); s != "" {
			b.WriteString(theme.Subtitle.Render("Preparation") + "\n" + s + "\n")
		}
		for _, tip := range p.Tips {
			b.WriteString("  • " + tip + "\n")
		}
	}
	return b.String()
}

func renderExams(exams []catalog.ExamInfo) string {
	var b strings.Builder
	for i, e := range exams {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Selected.Render(e.Name) + "\n")
		if e.ConductingBody != "" {
			field(&b, "Conducted by", e.ConductingBody)
		}
		if e.Frequency != "" {
			field(&b, "Held", e.Frequency)
		}
		if len(e.Syllabus) > 0 {
			field(&b, "Syllabus", strings.Join(e.Syllabus, ", "))
		}
		if s := prettyJSON(e.Pattern); s != "" {
			b.WriteString(theme.Subtitle.Render("Pattern") + "\n" + s + "\n")
		}
	}
	return b.String()
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(theme.Label.Render(label) + theme.Body.Render(value) + "\n")
}

func costRange(c catalog.CostRange) string {
	if c.Max <= c.Min {
		return formatAmount(c.Min)
	}
	return formatAmount(c.Min) + "–" + formatAmount(c.Max)
}

// formatAmount renders a whole amount with thousands separators.
func formatAmount(v float64) string {
	s := strconv.FormatInt(int64(v+0.5), 10)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	pre := len(s) % 3
	if pre > 0 {
		out = append(out, s[:pre]...)
	}
	for i := pre; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}

// prettyJSON indents a provider payload for display. Null and empty
// payloads render as nothing; payloads that are not JSON are shown as is.
func prettyJSON(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "  ", "  "); err != nil {
		return "  " + string(trimmed)
	}
	return "  " + buf.String()
}
