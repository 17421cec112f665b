package rendering

import (
	"strings"

	"github.com/jonathan/expert-profile/internal/types"
)

// Section labels, in document order.
const (
	LabelTitle          = "EXPERT PROFILE"
	LabelSurname        = "SURNAME:"
	LabelFirstName      = "FIRSTNAME:"
	LabelCity           = "CITY:"
	LabelNationality    = "NATIONALITY:"
	LabelYearOfBirth    = "YEAR OF BIRTH:"
	LabelAvailability   = "AVAILABILITY:"
	LabelFocusAreas     = "FOCUS AREAS"
	LabelQualification  = "QUALIFICATION"
	LabelCertifications = "CERTIFICATIONS"
	LabelLanguages      = "LANGUAGES"
	LabelHobbies        = "HOBBIES / PRIVATE"
	LabelSalary         = "SALARY / OTE EXPECTATION"
	LabelSelfAssessment = "SELF ASSESSMENT"
	LabelOurAssessment  = "OUR ASSESSMENT"
	LabelContact        = "YOUR CONTACT"
	LabelExperience     = "Professional experience"

	PhotoPlaceholder  = "[Photo placeholder]"
	TechnologiesLabel = "Technologies:"
	ProjectsLabel     = "Projects:"
	ProjectRolePrefix = "Role: "
)

// SectionLabels lists every fixed label exactly once, in document order.
var SectionLabels = []string{
	LabelTitle,
	LabelSurname, LabelFirstName, LabelCity, LabelNationality, LabelYearOfBirth, LabelAvailability,
	LabelFocusAreas, LabelQualification, LabelCertifications, LabelLanguages, LabelHobbies,
	LabelSalary, LabelSelfAssessment, LabelOurAssessment, LabelContact,
	LabelExperience,
}

// DefaultContactLines fill the contact block below the "YOUR CONTACT" label.
var DefaultContactLines = []string{"at e-aces.com", "Phone:", "Mail:"}

// Options tunes the static parts of the layout.
type Options struct {
	ContactLines []string
}

// DefaultOptions returns the standard profile options.
func DefaultOptions() Options {
	return Options{ContactLines: DefaultContactLines}
}

// Layout turns an expert into document directives. It is pure: the same
// input always yields the same document, and missing fields render empty.
func Layout(expert *types.Expert, opts Options) *Document {
	if expert == nil {
		expert = &types.Expert{}
	}

	doc := &Document{}
	doc.Blocks = append(doc.Blocks, Block{Kind: BlockTitle, Text: LabelTitle, Centered: true})
	doc.Blocks = append(doc.Blocks, Block{Kind: BlockTable, Table: identityTable(expert)})
	doc.Blocks = append(doc.Blocks, Block{Kind: BlockSpacer})
	doc.Blocks = append(doc.Blocks, Block{Kind: BlockTable, Table: detailTable(expert, opts)})
	doc.Blocks = append(doc.Blocks, Block{Kind: BlockSpacer}, Block{Kind: BlockSpacer})
	doc.Blocks = append(doc.Blocks, Block{Kind: BlockHeading, Text: LabelExperience, Centered: true})

	for i := range expert.Experiences {
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockTable, Table: experienceTable(&expert.Experiences[i])})
		doc.Blocks = append(doc.Blocks, Block{Kind: BlockSpacer})
	}

	return doc
}

func identityTable(e *types.Expert) *Table {
	rows := []struct{ label, value string }{
		{LabelSurname, e.LastName},
		{LabelFirstName, e.FirstName},
		{LabelCity, e.City},
		{LabelNationality, e.Nationality},
		{LabelYearOfBirth, e.YearOfBirth},
		{LabelAvailability, ""},
	}

	table := &Table{Widths: []float64{1.5, 3.5, 1.5}}
	for i, r := range rows {
		photo := Cell{}
		if i == 0 {
			photo = textCell(Run{Text: PhotoPlaceholder})
		}
		table.Rows = append(table.Rows, Row{Cells: []Cell{
			textCell(Run{Text: r.label, Bold: true}),
			textCell(Run{Text: r.value}),
			photo,
		}})
	}
	return table
}

func detailTable(e *types.Expert, opts Options) *Table {
	table := &Table{Widths: []float64{1.8, 4.7}}
	section := func(label string, value Cell) {
		table.Rows = append(table.Rows, Row{Cells: []Cell{textCell(Run{Text: label, Bold: true}), value}})
	}

	section(LabelFocusAreas, textCell(Run{Text: e.About}))
	section(LabelQualification, qualificationCell(e.Educations))
	section(LabelCertifications, certificationCell(e.Courses))
	section(LabelLanguages, textCell(Run{Text: e.Languages}))
	section(LabelHobbies, Cell{})
	section(LabelSalary, Cell{})
	section(LabelSelfAssessment, Cell{})
	section(LabelOurAssessment, textCell(Run{Text: e.Assessment}))

	contact := runBuilder{}
	contact.add(Run{Text: LabelContact, Bold: true})
	if len(opts.ContactLines) > 0 {
		contact.add(Run{Text: "\n\n" + strings.Join(opts.ContactLines, "\n\n")})
	}
	table.Rows = append(table.Rows, Row{Cells: []Cell{{Paragraphs: []Paragraph{contact.paragraph()}}, {}}})

	return table
}

// qualificationCell renders "years degree, field, institution" per entry with the degree in bold.
func qualificationCell(educations []types.Education) Cell {
	cell := Cell{}
	for _, edu := range educations {
		b := runBuilder{}
		b.segment("", Run{Text: edu.Years})
		b.segment(" ", Run{Text: edu.Degree, Bold: true})
		b.segment(", ", Run{Text: edu.FieldOfStudy})
		b.segment(", ", Run{Text: edu.University})
		if !b.empty() {
			cell.Paragraphs = append(cell.Paragraphs, b.paragraph())
		}
	}
	return cell
}

// certificationCell renders "year: name, organization" per course with the name in bold.
func certificationCell(courses []types.Course) Cell {
	cell := Cell{}
	for _, course := range courses {
		b := runBuilder{}
		b.segment("", Run{Text: course.Year})
		b.segment(": ", Run{Text: course.Name, Bold: true})
		b.segment(", ", Run{Text: course.Organization})
		if !b.empty() {
			cell.Paragraphs = append(cell.Paragraphs, b.paragraph())
		}
	}
	return cell
}

func experienceTable(exp *types.Experience) *Table {
	period := runBuilder{}
	period.segment("", Run{Text: exp.From, Bold: true})
	period.styledSegment(" -\n", Run{Text: exp.To, Bold: true})

	details := Cell{}
	header := runBuilder{}
	header.segment("", Run{Text: exp.Company, Bold: true})
	header.segment("\n", Run{Text: exp.Role})
	details.Paragraphs = append(details.Paragraphs, header.paragraph())

	if tasks := nonEmpty(exp.Tasks); len(tasks) > 0 {
		for _, task := range tasks {
			details.Paragraphs = append(details.Paragraphs, Paragraph{Bullet: true, Runs: []Run{{Text: task}}})
		}
		details.Paragraphs = append(details.Paragraphs, Paragraph{})
	}

	if techs := nonEmpty(exp.Technologies); len(techs) > 0 {
		details.Paragraphs = append(details.Paragraphs,
			Paragraph{Runs: []Run{{Text: TechnologiesLabel + "\n" + strings.Join(techs, ", ")}}},
			Paragraph{},
		)
	}

	if len(exp.Projects) > 0 {
		details.Paragraphs = append(details.Paragraphs, Paragraph{Runs: []Run{{Text: ProjectsLabel, Underline: true}}})
		for _, proj := range exp.Projects {
			b := runBuilder{}
			b.segment("", Run{Text: proj.Name, Bold: true})
			if proj.Role != "" {
				b.segment("\n", Run{Text: ProjectRolePrefix + proj.Role, Italic: true})
			}
			b.segment("\n", Run{Text: proj.Description, Bold: true})
			b.segment("\n", Run{Text: proj.Responsibilities})
			if !b.empty() {
				p := b.paragraph()
				p.Bullet = true
				details.Paragraphs = append(details.Paragraphs, p)
			}
		}
	}

	return &Table{
		Widths: []float64{1.5, 5.0},
		Rows: []Row{
			{Cells: []Cell{{Paragraphs: []Paragraph{period.paragraph()}}, details}},
			{Cells: []Cell{{}, {}}},
		},
	}
}

func textCell(r Run) Cell {
	if r.Text == "" {
		return Cell{}
	}
	return Cell{Paragraphs: []Paragraph{{Runs: []Run{r}}}}
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
