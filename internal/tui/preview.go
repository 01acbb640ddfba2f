package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"deskfolio/internal/catalog"
)

const previewPlaceholder = "Select an item to view details"

// previewMarkdown builds the markdown body for an item, dispatching on the preview tag.
// ok is false when there is nothing to show and the placeholder should be used.
func previewMarkdown(it catalog.Item) (string, bool) {
	p := it.Preview
	var b mdBuilder
	switch p.Kind {
	case catalog.PreviewProfile:
		writeProfile(&b, it, p.Profile)
	case catalog.PreviewEducation:
		writeEducation(&b, p.Education)
	case catalog.PreviewCertification:
		writeCertification(&b, p.Certification)
	case catalog.PreviewExperience:
		writeExperience(&b, p.Experience)
	case catalog.PreviewProject:
		writeProject(&b, p.Project)
	case catalog.PreviewEvent:
		writeEvent(&b, p.Event)
	default:
		return "", false
	}
	out := b.String()
	return out, strings.TrimSpace(out) != ""
}

type mdBuilder struct {
	strings.Builder
}

func (b *mdBuilder) heading(level int, s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	fmt.Fprintf(b, "%s %s\n\n", strings.Repeat("#", level), s)
}

func (b *mdBuilder) para(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	b.WriteString(s)
	b.WriteString("\n\n")
}

// field writes a "**Label:** value" line; empty values are skipped.
func (b *mdBuilder) field(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "**%s:** %s  \n", label, value)
}

func (b *mdBuilder) endFields() { b.WriteString("\n") }

func (b *mdBuilder) bullets(title string, xs []string) {
	if len(xs) == 0 {
		return
	}
	b.heading(3, title)
	for _, x := range xs {
		fmt.Fprintf(b, "- %s\n", x)
	}
	b.WriteString("\n")
}

func (b *mdBuilder) link(label, url string) {
	if strings.TrimSpace(url) == "" {
		return
	}
	fmt.Fprintf(b, "[%s](%s)\n\n", label, url)
}

func writeProfile(b *mdBuilder, it catalog.Item, p *catalog.Profile) {
	if p == nil {
		return
	}
	title := p.Title
	if title == "" {
		title = it.Name
	}
	b.heading(1, title)
	if info := p.Info; info != nil {
		b.heading(2, info.FullName)
		b.field("Title", info.Title)
		b.field("Location", info.Location)
		b.field("Experience", info.YearsExperience)
		b.field("Education", info.Education)
		b.field("Current Role", info.CurrentRole)
		b.endFields()
	}
	if p.Summary != "" {
		b.heading(3, "Professional Summary")
		b.para(p.Summary)
	}
	if p.DownloadURL != "" {
		b.link("Download Resume", p.DownloadURL)
	}
	if c := p.Contact; c != nil {
		b.heading(3, "Contact")
		b.field("Email", c.Email)
		b.field("Phone", c.Phone)
		b.field("Location", c.Location)
		b.field("LinkedIn", c.LinkedIn)
		b.field("GitHub", c.GitHub)
		b.endFields()
	}
	if len(p.Stats) > 0 {
		b.heading(3, "At a Glance")
		for _, s := range p.Stats {
			label := s.Label
			if s.Icon != "" {
				label = s.Icon + " " + label
			}
			b.field(label, s.Value)
		}
		b.endFields()
	}
	if len(p.Interests) > 0 {
		b.heading(3, "Interests")
	}
}

func writeEducation(b *mdBuilder, e *catalog.Education) {
	if e == nil {
		return
	}
	degree := e.Degree
	if e.Field != "" {
		degree += " in " + e.Field
	}
	b.heading(1, degree)
	b.heading(2, e.Institution)
	b.field("Location", e.Location)
	b.field("Duration", e.Duration)
	b.field("Status", e.Status)
	b.endFields()
	if e.Overview != "" {
		b.heading(3, "Overview")
		b.para(e.Overview)
	}
	b.bullets("Key Courses", e.Courses)
	b.bullets("Achievements", e.Achievements)
	if len(e.Publications) > 0 {
		b.heading(3, "Publications")
		for _, pub := range e.Publications {
			fmt.Fprintf(b, "- **%s**  \n  %s (%s)\n", pub.Title, pub.Conference, pub.Year)
		}
		b.WriteString("\n")
	}
}

func writeCertification(b *mdBuilder, c *catalog.Certification) {
	if c == nil {
		return
	}
	b.heading(1, c.Title)
	b.field("Issued by", c.Issuer)
	b.field("Issue Date", c.IssueDate)
	b.field("Expires", c.ExpiryDate)
	b.field("Status", c.Status)
	b.field("Credential ID", c.CredentialID)
	b.endFields()
	b.bullets("Description", c.Description)
	b.link("Verify Credential", c.VerificationURL)
	if len(c.Skills) > 0 {
		b.heading(3, "Skills Validated")
	}
}

func writeExperience(b *mdBuilder, e *catalog.Experience) {
	if e == nil {
		return
	}
	b.heading(1, e.Title)
	b.heading(2, e.Company)
	b.field("Location", e.Location)
	b.field("Duration", e.Duration)
	b.field("Type", e.Type)
	b.endFields()
	b.bullets("Key Responsibilities", e.Description)
	if len(e.Skills) > 0 {
		b.heading(3, "Skills & Technologies")
	}
}

func writeProject(b *mdBuilder, p *catalog.Project) {
	if p == nil {
		return
	}
	b.heading(1, p.Title)
	b.field("Organization", p.Organization)
	b.field("Duration", p.Duration)
	status := p.Status
	if p.Ongoing {
		status = strings.TrimSpace(status + " (ongoing)")
	}
	b.field("Status", status)
	b.endFields()
	if p.Summary != "" {
		b.heading(3, "Description")
		b.para(p.Summary)
	}
	b.link("View on GitHub", p.GitHubURL)
	if len(p.Skills) > 0 {
		b.heading(3, "Technologies")
	}
}

func writeEvent(b *mdBuilder, e *catalog.Event) {
	if e == nil {
		return
	}
	b.heading(1, e.Title)
	b.field("Type", e.Type)
	if e.Publication {
		b.field("Conference", e.Conference)
	}
	b.field("Location", e.Location)
	b.field("Date", e.Date)
	b.field("Duration", e.Duration)
	b.field("Status", e.Status)
	b.endFields()
	if len(e.Authors) > 0 {
		b.heading(3, "Authors")
		b.para(strings.Join(e.Authors, ", "))
	}
	if e.Abstract != "" {
		b.heading(3, "Abstract")
		b.para(e.Abstract)
	}
	b.bullets("Highlights", e.Highlights)
	if len(e.Topics) > 0 {
		if e.Publication {
			b.heading(3, "Keywords")
		} else {
			b.heading(3, "Topics Covered")
		}
	}
}

// renderSkillChips lays out tinted chips, wrapping at width.
func renderSkillChips(skills []string, width int) string {
	if len(skills) == 0 || width <= 0 {
		return ""
	}
	var (
		lines []string
		line  []string
		lineW int
	)
	for _, s := range skills {
		chip := styleSkillChip(s).Render(s)
		w := lipgloss.Width(chip)
		if lineW > 0 && lineW+1+w > width {
			lines = append(lines, strings.Join(line, " "))
			line, lineW = nil, 0
		}
		if lineW > 0 {
			lineW++
		}
		line = append(line, chip)
		lineW += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

// renderPreview produces the full preview pane content for an item.
func renderPreview(it catalog.Item, style string, width int) string {
	md, ok := previewMarkdown(it)
	if !ok {
		return renderPlaceholder(width)
	}
	out := renderMarkdown(md, style, width)
	if chips := renderSkillChips(it.Preview.Skills(), width); chips != "" {
		out += "\n" + chips
	}
	return out
}

func renderPlaceholder(width int) string {
	return lipgloss.PlaceHorizontal(max(width, 1), lipgloss.Center, styleMuted().Render(previewPlaceholder))
}
