package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"partnerleads/internal/models"
)

// Exporter renders lead summaries. Interface so handlers can be tested
// without gofpdf.
type Exporter interface {
	LeadSummary(lead *models.Lead) ([]byte, error)
}

type LeadExporter struct {
	fontName string
}

func NewLeadExporter() *LeadExporter {
	return &LeadExporter{fontName: "Helvetica"}
}

// LeadSummary renders a one-page overview: header, contact block, pipeline
// block and the tail of the activity timeline.
func (g *LeadExporter) LeadSummary(lead *models.Lead) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Lead #%d — %s", lead.ID, lead.CompanyName), false)
	pdf.SetAuthor("Partner Leads", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "LEAD SUMMARY", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("#%06d  —  %s", lead.ID, lead.CreatedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Contact")
	g.kvLine(pdf, "Company", lead.CompanyName)
	g.kvLine(pdf, "Contact", lead.ContactName)
	g.kvLine(pdf, "Email", lead.Email)
	g.kvLine(pdf, "Phone", lead.Phone)
	if lead.Industry != "" {
		g.kvLine(pdf, "Industry", lead.Industry)
	}
	if lead.ERPSystem != "" {
		g.kvLine(pdf, "ERP system", lead.ERPSystem)
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Pipeline")
	g.kvLine(pdf, "Status", string(lead.Status))
	g.kvLine(pdf, "Source", string(lead.Source))
	if lead.ReferralCode != "" {
		g.kvLine(pdf, "Referral code", lead.ReferralCode)
	}
	if lead.PartnerName != "" {
		g.kvLine(pdf, "Partner", lead.PartnerName)
	}
	g.kvLine(pdf, "Estimated value", fmt.Sprintf("%.2f", lead.EstimatedValue))
	if lead.Timeline != "" {
		g.kvLine(pdf, "Timeline", lead.Timeline)
	}
	if lead.LastContact != nil {
		g.kvLine(pdf, "Last contact", lead.LastContact.Format("02.01.2006 15:04"))
	}
	pdf.Ln(2)
	g.hr(pdf)

	if len(lead.Activities) > 0 {
		g.sectionTitle(pdf, "Recent activity")
		pdf.SetFont(g.fontName, "", 10)
		max := len(lead.Activities)
		if max > 8 {
			max = 8
		}
		for _, a := range lead.Activities[:max] {
			line := fmt.Sprintf("%s  [%s]  %s",
				a.CreatedAt.Format("02.01.2006"), a.Type, a.Notes)
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
		pdf.Ln(2)
	}

	pdf.SetFont(g.fontName, "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("02.01.2006 15:04")),
		"", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render lead pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *LeadExporter) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(g.fontName, "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (g *LeadExporter) kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(50, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *LeadExporter) hr(pdf *gofpdf.Fpdf) {
	x, y := pdf.GetXY()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(20, y, 190, y)
	pdf.SetXY(x, y+2)
}
