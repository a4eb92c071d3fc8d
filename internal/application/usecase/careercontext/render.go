package careercontext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/khoahotran/career-os/internal/domain/calendar"
	"github.com/khoahotran/career-os/internal/domain/education"
	"github.com/khoahotran/career-os/internal/domain/experience"
	"github.com/khoahotran/career-os/internal/domain/profile"
	"github.com/khoahotran/career-os/internal/domain/project"
	"github.com/khoahotran/career-os/internal/domain/skill"
)

const SectionDivider = "\n\n---\n\n"

const (
	NoProfile     = "No profile recorded."
	NoExperiences = "No work experience recorded."
	NoSkills      = "No skills recorded."
	NoProjects    = "No projects recorded."
	NoEducations  = "No education recorded."
)

// Render serializes c into the context document given to the model. Output
// depends only on c, so identical records always render identically.
func Render(c *Composite) string {
	sections := []string{
		renderProfile(c.Profile),
		renderExperiences(c.Experiences),
		renderSkills(c.Skills),
		renderProjects(c.Projects),
		renderEducations(c.Educations),
	}
	return strings.Join(sections, SectionDivider)
}

func formatRange(start calendar.Date, end *calendar.Date) string {
	if end == nil {
		return start.MonthYear() + " - Present"
	}
	return start.MonthYear() + " - " + end.MonthYear()
}

func renderProfile(p *profile.Profile) string {
	var b strings.Builder
	b.WriteString("## PROFILE\n\n")
	if p == nil {
		b.WriteString(NoProfile)
		return b.String()
	}

	info := p.PersonalInfo
	line(&b, "Name", info.Name)
	line(&b, "Email", info.Email)
	optionalLine(&b, "Phone", info.Phone)
	optionalLine(&b, "Location", info.Location)
	optionalLine(&b, "LinkedIn", info.LinkedIn)
	optionalLine(&b, "GitHub", info.GitHub)
	optionalLine(&b, "Website", info.Website)

	b.WriteString("\n")
	line(&b, "Headline", p.Positioning.Headline)
	line(&b, "Summary", p.Positioning.Summary)
	listLine(&b, "Target Roles", p.Positioning.TargetRoles)
	listLine(&b, "Target Industries", p.Positioning.TargetIndustries)

	bullets(&b, "Value Propositions", p.ValuePropositions)
	if p.ProfessionalMission != "" {
		line(&b, "Professional Mission", p.ProfessionalMission)
	}
	bullets(&b, "Unique Selling Points", p.UniqueSellingPoints)

	return strings.TrimRight(b.String(), "\n")
}

func renderExperiences(items []*experience.Experience) string {
	var b strings.Builder
	b.WriteString("## WORK EXPERIENCE\n\n")
	if len(items) == 0 {
		b.WriteString(NoExperiences)
		return b.String()
	}

	blocks := make([]string, 0, len(items))
	for _, e := range items {
		var eb strings.Builder
		fmt.Fprintf(&eb, "### %s at %s\n", e.Title, e.Company)
		line(&eb, "Location", e.Location)
		optionalLine(&eb, "Industry", e.Industry)
		line(&eb, "Dates", formatRange(e.StartDate, e.EndDate))
		listLine(&eb, "Role Types", e.RoleTypes)
		bullets(&eb, "Responsibilities", e.Responsibilities)
		if len(e.Achievements) > 0 {
			eb.WriteString("Achievements:\n")
			for _, a := range e.Achievements {
				eb.WriteString("- " + a.Description)
				if a.Metric != nil && *a.Metric != "" {
					eb.WriteString(" (Metric: " + *a.Metric + ")")
				}
				if a.Impact != nil && *a.Impact != "" {
					eb.WriteString(" (Impact: " + *a.Impact + ")")
				}
				eb.WriteString("\n")
			}
		}
		listLine(&eb, "Technologies", e.Technologies)
		blocks = append(blocks, strings.TrimRight(eb.String(), "\n"))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))
	return b.String()
}

func renderSkills(items []*skill.Skill) string {
	var b strings.Builder
	b.WriteString("## SKILLS\n\n")
	if len(items) == 0 {
		b.WriteString(NoSkills)
		return b.String()
	}

	// groups keep the order in which each relevance first appears
	var order []string
	groups := make(map[string][]*skill.Skill)
	for _, s := range items {
		if _, seen := groups[s.RoleRelevance]; !seen {
			order = append(order, s.RoleRelevance)
		}
		groups[s.RoleRelevance] = append(groups[s.RoleRelevance], s)
	}

	blocks := make([]string, 0, len(order))
	for _, relevance := range order {
		var gb strings.Builder
		fmt.Fprintf(&gb, "### %s\n", relevance)
		for _, s := range groups[relevance] {
			fmt.Fprintf(&gb, "- %s: %s, rating %s/10, %s years", s.Name, s.Level, formatNumber(s.Rating), formatNumber(s.YearsOfExperience))
			if len(s.Keywords) > 0 {
				fmt.Fprintf(&gb, " (keywords: %s)", strings.Join(s.Keywords, ", "))
			}
			gb.WriteString("\n")
		}
		blocks = append(blocks, strings.TrimRight(gb.String(), "\n"))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))
	return b.String()
}

func renderProjects(items []*project.Project) string {
	var b strings.Builder
	b.WriteString("## PROJECTS\n\n")
	if len(items) == 0 {
		b.WriteString(NoProjects)
		return b.String()
	}

	blocks := make([]string, 0, len(items))
	for _, p := range items {
		var pb strings.Builder
		fmt.Fprintf(&pb, "### %s (%s)\n", p.Name, p.Type)
		if p.Date != nil {
			line(&pb, "Date", p.Date.MonthYear())
		}
		line(&pb, "Overview", p.Overview)
		optionalLine(&pb, "Challenge", p.Challenge)
		optionalLine(&pb, "Approach", p.Approach)
		optionalLine(&pb, "Outcome", p.Outcome)
		optionalLine(&pb, "Impact", p.Impact)
		listLine(&pb, "Technologies", p.Technologies)
		listLine(&pb, "Role Types", p.RoleTypes)
		blocks = append(blocks, strings.TrimRight(pb.String(), "\n"))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))
	return b.String()
}

func renderEducations(items []*education.Education) string {
	var b strings.Builder
	b.WriteString("## EDUCATION\n\n")
	if len(items) == 0 {
		b.WriteString(NoEducations)
		return b.String()
	}

	blocks := make([]string, 0, len(items))
	for _, e := range items {
		var eb strings.Builder
		fmt.Fprintf(&eb, "### %s in %s, %s (%d)\n", e.Degree, e.Field, e.Institution, e.GraduationYear)
		listLine(&eb, "Relevant Coursework", e.RelevantCoursework)
		blocks = append(blocks, strings.TrimRight(eb.String(), "\n"))
	}
	b.WriteString(strings.Join(blocks, "\n\n"))
	return b.String()
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func optionalLine(b *strings.Builder, label string, value *string) {
	if value == nil || *value == "" {
		return
	}
	line(b, label, *value)
}

func listLine(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	line(b, label, strings.Join(values, ", "))
}

func bullets(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	b.WriteString(label + ":\n")
	for _, v := range values {
		b.WriteString("- " + v + "\n")
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
