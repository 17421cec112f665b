package rendering

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"
)

// DOCX package parts.
const (
	partContentTypes = "[Content_Types].xml"
	partRels         = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partStyles       = "word/styles.xml"
	partNumbering    = "word/numbering.xml"
)

const twipsPerInch = 1440

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// WriteDOCX packages doc as a WordprocessingML (.docx) file.
func WriteDOCX(doc *Document) ([]byte, error) {
	var body bytes.Buffer
	w := &docxWriter{buf: &body}
	for _, b := range doc.Blocks {
		w.block(b)
	}

	parts := []struct {
		name    string
		content string
	}{
		{partContentTypes, contentTypesXML},
		{partRels, relsXML},
		{partDocumentRels, documentRelsXML},
		{partStyles, stylesXML},
		{partNumbering, numberingXML},
		{partDocument, fmt.Sprintf(documentXML, wordNamespace, body.String())},
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return nil, &RenderError{Format: FormatDOCX, Message: "failed to create " + p.name, Cause: err}
		}
		if _, err := f.Write([]byte(p.content)); err != nil {
			return nil, &RenderError{Format: FormatDOCX, Message: "failed to write " + p.name, Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &RenderError{Format: FormatDOCX, Message: "failed to finalize docx archive", Cause: err}
	}
	return out.Bytes(), nil
}

type docxWriter struct {
	buf *bytes.Buffer
}

func (w *docxWriter) block(b Block) {
	switch b.Kind {
	case BlockTitle:
		w.styledParagraph("Title", b.Centered, Run{Text: b.Text})
	case BlockHeading:
		w.styledParagraph("Heading1", b.Centered, Run{Text: b.Text})
	case BlockSpacer:
		w.buf.WriteString("<w:p/>")
	case BlockTable:
		if b.Table != nil {
			w.table(b.Table)
		}
	}
}

func (w *docxWriter) styledParagraph(style string, centered bool, r Run) {
	w.buf.WriteString(`<w:p><w:pPr><w:pStyle w:val="` + style + `"/>`)
	if centered {
		w.buf.WriteString(`<w:jc w:val="center"/>`)
	}
	w.buf.WriteString("</w:pPr>")
	w.run(r)
	w.buf.WriteString("</w:p>")
}

func (w *docxWriter) table(t *Table) {
	total := 0
	for _, width := range t.Widths {
		total += twips(width)
	}

	fmt.Fprintf(w.buf, `<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="%d" w:type="dxa"/><w:tblLayout w:type="fixed"/></w:tblPr><w:tblGrid>`, total)
	for _, width := range t.Widths {
		fmt.Fprintf(w.buf, `<w:gridCol w:w="%d"/>`, twips(width))
	}
	w.buf.WriteString("</w:tblGrid>")

	for _, row := range t.Rows {
		w.buf.WriteString("<w:tr>")
		for i, cell := range row.Cells {
			w.buf.WriteString("<w:tc>")
			if i < len(t.Widths) {
				fmt.Fprintf(w.buf, `<w:tcPr><w:tcW w:w="%d" w:type="dxa"/></w:tcPr>`, twips(t.Widths[i]))
			}
			// a cell must hold at least one paragraph
			if len(cell.Paragraphs) == 0 {
				w.buf.WriteString("<w:p/>")
			}
			for _, p := range cell.Paragraphs {
				w.paragraph(p)
			}
			w.buf.WriteString("</w:tc>")
		}
		w.buf.WriteString("</w:tr>")
	}
	w.buf.WriteString("</w:tbl>")
}

func (w *docxWriter) paragraph(p Paragraph) {
	w.buf.WriteString("<w:p>")
	if p.Bullet {
		w.buf.WriteString(`<w:pPr><w:pStyle w:val="ListBullet"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>`)
	}
	for _, r := range p.Runs {
		w.run(r)
	}
	w.buf.WriteString("</w:p>")
}

func (w *docxWriter) run(r Run) {
	w.buf.WriteString("<w:r>")
	if r.Bold || r.Italic || r.Underline {
		w.buf.WriteString("<w:rPr>")
		if r.Bold {
			w.buf.WriteString("<w:b/>")
		}
		if r.Italic {
			w.buf.WriteString("<w:i/>")
		}
		if r.Underline {
			w.buf.WriteString(`<w:u w:val="single"/>`)
		}
		w.buf.WriteString("</w:rPr>")
	}
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			w.buf.WriteString("<w:br/>")
		}
		if line == "" {
			continue
		}
		w.buf.WriteString(`<w:t xml:space="preserve">`)
		_ = xml.EscapeText(w.buf, []byte(line))
		w.buf.WriteString("</w:t>")
	}
	w.buf.WriteString("</w:r>")
}

func twips(inches float64) int {
	return int(math.Round(inches * twipsPerInch))
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:cs="Calibri"/><w:sz w:val="20"/></w:rPr></w:rPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:pPr><w:spacing w:after="0"/></w:pPr></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:pPr><w:spacing w:after="240"/></w:pPr><w:rPr><w:b/><w:sz w:val="36"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:pPr><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/><w:pPr><w:numPr><w:numId w:val="1"/></w:numPr><w:ind w:left="360" w:hanging="360"/></w:pPr></w:style>
<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders><w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/></w:tblBorders><w:tblCellMar><w:left w:w="108" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>
</w:styles>`

const numberingXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="360" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
</w:numbering>`

// A4 page, 1 inch margins.
const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="%s"><w:body>%s<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/></w:sectPr></w:body></w:document>`
