package serviceImp

import (
	"bytes"
	"embed"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"evergraze/entities"
)

type reportSection struct {
	Heading string
	Lines   []string
}

// report is the content of the document export, independent of layout.
type report struct {
	Title    string
	Subtitle string
	Sections []reportSection
	Footer   string
}

func buildReport(farm string, h history, now time.Time) report {
	rep := report{
		Title:    farm,
		Subtitle: "Livestock Health & History Certificate",
		Footer:   fmt.Sprintf("Generated on: %s | %s", now.Format("2006-01-02 15:04"), farm),
	}

	ls, _ := entities.SchemaOf(entities.KindLivestock)
	profile := reportSection{Heading: "Animal Profile"}
	p := h.Profiles[0]
	for _, c := range ls.Columns {
		profile.Lines = append(profile.Lines, fmt.Sprintf("%s: %s", c.Label, p.Get(c.Name)))
	}

	weights := reportSection{Heading: "Weight Tracking"}
	for _, w := range h.Weights {
		weights.Lines = append(weights.Lines, fmt.Sprintf("Date: %s  |  Weight: %s kg  |  Notes: %s",
			w.Get("date"), w.Get("weight"), w.Get("notes")))
	}
	if len(weights.Lines) == 0 {
		weights.Lines = []string{"No weight entries recorded."}
	}

	vaccines := reportSection{Heading: "Vaccination Records"}
	for _, v := range h.Vaccinations {
		vaccines.Lines = append(vaccines.Lines, fmt.Sprintf("Vaccine: %s  |  Given: %s  |  Next Due: %s  |  Vet: %s",
			v.Get("vaccine_name"), v.Get("date_given"), v.Get("next_due"), v.Get("vet_name")))
	}
	if len(vaccines.Lines) == 0 {
		vaccines.Lines = []string{"No vaccinations recorded."}
	}

	rep.Sections = []reportSection{profile, weights, vaccines}
	return rep
}

func (r report) String() string {
	var b strings.Builder
	b.WriteString(r.Title + "\n" + r.Subtitle + "\n")
	for _, s := range r.Sections {
		b.WriteString("\n" + s.Heading + "\n")
		for _, l := range s.Lines {
			b.WriteString(l + "\n")
		}
	}
	b.WriteString("\n" + r.Footer + "\n")
	return b.String()
}

const inch = 72.0

//go:embed fonts/*.ttf
var fontFS embed.FS

const fontFamily = "DejaVu"

// loadFonts registers a UTF-8 font family so field values in any script are
// written as-is. fontPath, when set, replaces all three faces.
func loadFonts(pdf *fpdf.Fpdf, fontPath string) error {
	var custom []byte
	if fontPath != "" {
		b, err := os.ReadFile(fontPath)
		if err != nil {
			return fmt.Errorf("load font: %w", err)
		}
		custom = b
	}
	for _, face := range []struct{ style, file string }{
		{"", "fonts/DejaVuSansCondensed.ttf"},
		{"B", "fonts/DejaVuSansCondensed-Bold.ttf"},
		{"I", "fonts/DejaVuSansCondensed-Oblique.ttf"},
	} {
		data := custom
		if data == nil {
			b, err := fontFS.ReadFile(face.file)
			if err != nil {
				return fmt.Errorf("load font: %w", err)
			}
			data = b
		}
		pdf.AddUTF8FontFromBytes(fontFamily, face.style, data)
	}
	return pdf.Error()
}

// renderPDF lays the report out on A4: cream background, optional logo,
// boxed section headings and a footer on every page.
func renderPDF(r report, logoPath, fontPath string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0.4*inch, 0.5*inch, 0.4*inch)
	pdf.SetAutoPageBreak(true, 0.8*inch)
	if err := loadFonts(pdf, fontPath); err != nil {
		return nil, err
	}
	width, height := pdf.GetPageSize()

	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(0xfd, 0xfb, 0xf6)
		pdf.Rect(0, 0, width, height, "F")
		pdf.SetFillColor(255, 255, 255)
		pdf.SetY(0.5 * inch)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-0.5*inch - 10)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, r.Footer, "", 0, "L", false, 0, "")
	})
	pdf.AddPage()

	y := inch
	if logoPath != "" {
		if _, err := os.Stat(logoPath); err == nil {
			pdf.ImageOptions(logoPath, width/2-inch, y-0.5*inch, 2*inch, 0, false,
				fpdf.ImageOptions{ReadDpi: true}, 0, "")
			if err := pdf.Error(); err != nil {
				log.Printf("[export] logo %s skipped: %v", logoPath, err)
				pdf.ClearError()
			} else {
				y += 0.5 * inch
			}
		}
	}

	pdf.SetFont(fontFamily, "B", 25)
	pdf.SetXY(0, y)
	pdf.CellFormat(width, 30, r.Title, "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 15)
	pdf.SetX(0)
	pdf.CellFormat(width, 20, r.Subtitle, "", 1, "C", false, 0, "")
	pdf.Ln(20)

	boxWidth := width - 0.8*inch
	for _, s := range r.Sections {
		pdf.SetFont(fontFamily, "B", 12)
		pdf.SetDrawColor(51, 51, 51)
		pdf.SetX(0.4 * inch)
		pdf.CellFormat(boxWidth, 20, " "+s.Heading, "1", 1, "L", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont(fontFamily, "", 10)
		for _, line := range s.Lines {
			pdf.SetX(0.6 * inch)
			pdf.CellFormat(boxWidth-0.2*inch, 15, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(15)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
