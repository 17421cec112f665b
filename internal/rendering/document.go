package rendering

import "strings"

// BlockKind identifies a top-level document element.
type BlockKind string

// Block kinds, in the order a reader meets them in a profile.
const (
	BlockTitle   BlockKind = "title"
	BlockHeading BlockKind = "heading"
	BlockTable   BlockKind = "table"
	BlockSpacer  BlockKind = "spacer"
)

// Document is the ordered list of directives produced by Layout.
type Document struct {
	Blocks []Block
}

// Block is a title, heading, table or empty spacer paragraph.
type Block struct {
	Kind     BlockKind
	Text     string // title and heading only
	Centered bool
	Table    *Table
}

// Table is a bordered grid. Widths are column widths in inches.
type Table struct {
	Widths []float64
	Rows   []Row
}

// Row is one table row.
type Row struct {
	Cells []Cell
}

// Cell holds paragraphs; an empty cell has none.
type Cell struct {
	Paragraphs []Paragraph
}

// Paragraph is a run sequence, optionally rendered as a list bullet.
type Paragraph struct {
	Bullet bool
	Runs   []Run
}

// Run is styled text. A '\n' inside Text is a line break.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

func (r Run) sameStyle(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Underline == o.Underline
}

// Text returns the paragraph's runs concatenated.
func (p Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Text returns the cell's paragraphs joined by newlines.
func (c Cell) Text() string {
	lines := make([]string, len(c.Paragraphs))
	for i, p := range c.Paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// Text returns the plain text stream of the whole document, one line per
// paragraph and one tab-separated line per table row.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		switch b.Kind {
		case BlockTitle, BlockHeading:
			sb.WriteString(b.Text)
		case BlockTable:
			for i, row := range b.Table.Rows {
				if i > 0 {
					sb.WriteString("\n")
				}
				for j, cell := range row.Cells {
					if j > 0 {
						sb.WriteString("\t")
					}
					sb.WriteString(cell.Text())
				}
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// runBuilder accumulates runs, merging neighbours that share a style and
// inserting a separator only between non-empty segments.
type runBuilder struct {
	runs []Run
}

func (b *runBuilder) add(r Run) {
	if r.Text == "" {
		return
	}
	if n := len(b.runs); n > 0 && b.runs[n-1].sameStyle(r) {
		b.runs[n-1].Text += r.Text
		return
	}
	b.runs = append(b.runs, r)
}

// segment adds r, preceded by a plain sep when something was already added.
func (b *runBuilder) segment(sep string, r Run) {
	if r.Text == "" {
		return
	}
	if len(b.runs) > 0 {
		b.add(Run{Text: sep})
	}
	b.add(r)
}

// styledSegment is segment with sep carrying the style of r.
func (b *runBuilder) styledSegment(sep string, r Run) {
	if r.Text == "" {
		return
	}
	if len(b.runs) > 0 {
		styled := r
		styled.Text = sep
		b.add(styled)
	}
	b.add(r)
}

func (b *runBuilder) empty() bool {
	return len(b.runs) == 0
}

func (b *runBuilder) paragraph() Paragraph {
	return Paragraph{Runs: b.runs}
}
