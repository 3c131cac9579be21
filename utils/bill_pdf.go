package utils

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"sangamtransport/models"

	"github.com/go-pdf/fpdf"
)

// Print templates for the monthly bill.
const (
	TemplatePortrait  = "portrait"
	TemplateLandscape = "landscape"
)

type BillOptions struct {
	BillType   string     `json:"bill_type"`
	CustomName string     `json:"custom_name"`
	Template   string     `json:"template"` // portrait | landscape
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
}

type BillTotals struct {
	Total float64 `json:"total"`
	Paid  float64 `json:"paid"`
	ToPay float64 `json:"to_pay"`
}

type billColumn struct {
	title string
	frac  float64 // share of the content width
	align string
}

// BillLayout fixes the page geometry. The defaults match the printed bill;
// tests inject their own to pin down rows-per-page.
type BillLayout struct {
	Orientation  string // "P" | "L"
	Margin       float64
	TitleBlockH  float64
	HeaderH      float64
	RowH         float64
	BottomMargin float64 // reserved strip for the totals footer
	columns      []billColumn
}

func portraitColumns() []billColumn {
	return []billColumn{
		{"GR No", 0.10, "C"},
		{"Date", 0.12, "C"},
		{"Consignee", 0.26, "L"},
		{"City", 0.16, "L"},
		{"Pkts", 0.07, "C"},
		{"Weight", 0.09, "R"},
		{"Payment", 0.09, "C"},
		{"Amount", 0.11, "R"},
	}
}

// The landscape template has room for a consignor column.
func landscapeColumns() []billColumn {
	return []billColumn{
		{"GR No", 0.08, "C"},
		{"Date", 0.10, "C"},
		{"Consignor", 0.20, "L"},
		{"Consignee", 0.20, "L"},
		{"City", 0.13, "L"},
		{"Pkts", 0.06, "C"},
		{"Weight", 0.07, "R"},
		{"Payment", 0.07, "C"},
		{"Amount", 0.09, "R"},
	}
}

func DefaultLayout(template string) BillLayout {
	if template == TemplateLandscape {
		return BillLayout{
			Orientation:  "L",
			Margin:       10,
			TitleBlockH:  24,
			HeaderH:      8,
			RowH:         7,
			BottomMargin: 26,
			columns:      landscapeColumns(),
		}
	}
	return BillLayout{
		Orientation:  "P",
		Margin:       10,
		TitleBlockH:  24,
		HeaderH:      8,
		RowH:         7,
		BottomMargin: 26,
		columns:      portraitColumns(),
	}
}

// ComputeBillTotals partitions row amounts by payment mode. Paid and to-pay
// are matched case-insensitively; every row counts toward the grand total
// whatever its payment value.
func ComputeBillTotals(rows []models.Consignment, overrides map[models.ConsignmentKey]float64) BillTotals {
	var t BillTotals
	for _, c := range rows {
		amount := c.Amount
		if v, ok := overrides[c.Key()]; ok {
			amount = v
		}
		t.Total += amount
		switch {
		case strings.EqualFold(c.PaymentMode, "paid"):
			t.Paid += amount
		case strings.EqualFold(c.PaymentMode, "to-pay"):
			t.ToPay += amount
		}
	}
	return t
}

// fitText trims s character by character, re-measuring each candidate against
// the current font, until it fits maxW, then appends an ellipsis.
func fitText(pdf *fpdf.Fpdf, s string, maxW float64) string {
	if pdf.GetStringWidth(s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if candidate := string(r) + "..."; pdf.GetStringWidth(candidate) <= maxW {
			return candidate
		}
	}
	return ""
}

// GenerateBillPDF renders the monthly bill with the default layout.
func GenerateBillPDF(rows []models.Consignment, overrides map[models.ConsignmentKey]float64, branch *models.Branch, opts BillOptions) ([]byte, BillTotals, error) {
	return GenerateBillPDFWithLayout(rows, overrides, branch, opts, DefaultLayout(opts.Template))
}

// GenerateBillPDFWithLayout draws the tabular statement: letterhead and
// column header on every page, one row per consignment, a new page whenever
// the next row would cross into the reserved footer strip, and the totals
// footer at a fixed position on the last page.
func GenerateBillPDFWithLayout(rows []models.Consignment, overrides map[models.ConsignmentKey]float64, branch *models.Branch, opts BillOptions, layout BillLayout) ([]byte, BillTotals, error) {
	pdf := fpdf.New(layout.Orientation, "mm", "A4", "")
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*layout.Margin
	bottomLimit := pageH - layout.BottomMargin

	widths := make([]float64, len(layout.columns))
	for i, col := range layout.columns {
		widths[i] = contentW * col.frac
	}

	title := "Monthly Bill"
	if opts.CustomName != "" {
		title = opts.CustomName
	}
	var rangeLine string
	if opts.DateFrom != nil && opts.DateTo != nil {
		rangeLine = fmt.Sprintf("%s to %s", opts.DateFrom.Format("02-01-2006"), opts.DateTo.Format("02-01-2006"))
	}

	newPage := func() {
		pdf.AddPage()

		// Letterhead
		pdf.SetXY(layout.Margin, layout.Margin)
		pdf.SetFont("Helvetica", "B", 14)
		name := "Sangam Transport Co."
		if branch != nil {
			name = branch.Name
		}
		pdf.CellFormat(contentW, 7, name, "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		if branch != nil {
			pdf.CellFormat(contentW, 5, branch.Address, "", 1, "C", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 10)
		line := title
		if rangeLine != "" {
			line = title + "  (" + rangeLine + ")"
		}
		pdf.CellFormat(contentW, 6, line, "", 1, "C", false, 0, "")

		// Column header
		pdf.SetXY(layout.Margin, layout.Margin+layout.TitleBlockH)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range layout.columns {
			pdf.CellFormat(widths[i], layout.HeaderH, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)

		// Page footer, fixed position
		y := pdf.GetY()
		pdf.SetXY(layout.Margin, pageH-8)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(contentW, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(layout.Margin, y)
	}

	newPage()

	for _, c := range rows {
		if pdf.GetY()+layout.RowH > bottomLimit {
			newPage()
		}
		amount := c.Amount
		if v, ok := overrides[c.Key()]; ok {
			amount = v
		}
		cells := rowCells(layout.columns, c, amount)
		pdf.SetX(layout.Margin)
		for i, col := range layout.columns {
			text := fitText(pdf, cells[i], widths[i]-2)
			pdf.CellFormat(widths[i], layout.RowH, text, "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	totals := ComputeBillTotals(rows, overrides)

	// Totals footer in the reserved strip of the last page.
	pdf.SetXY(layout.Margin, bottomLimit+2)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf(
		"Total: %d    Paid: %d    To-Pay: %d    (%d consignments)",
		int(math.Round(totals.Total)), int(math.Round(totals.Paid)),
		int(math.Round(totals.ToPay)), len(rows),
	), "", 1, "L", false, 0, "")
	pdf.SetX(layout.Margin)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, RupeesInWords(totals.Total), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, BillTotals{}, err
	}
	return buf.Bytes(), totals, nil
}

func rowCells(columns []billColumn, c models.Consignment, amount float64) []string {
	cells := make([]string, 0, len(columns))
	for _, col := range columns {
		switch col.title {
		case "GR No":
			cells = append(cells, fmt.Sprintf("%d", c.GRNo))
		case "Date":
			cells = append(cells, c.BiltyDate.Format("02-01-2006"))
		case "Consignor":
			cells = append(cells, c.Consignor)
		case "Consignee":
			cells = append(cells, c.Consignee)
		case "City":
			cells = append(cells, c.CityName)
		case "Pkts":
			cells = append(cells, fmt.Sprintf("%d", c.NoOfPackets))
		case "Weight":
			cells = append(cells, trimFloat(c.WeightKG))
		case "Payment":
			cells = append(cells, c.PaymentMode)
		case "Amount":
			cells = append(cells, fmt.Sprintf("%d", int(math.Round(amount))))
		}
	}
	return cells
}

// PageCountForRows reports how many pages a row count needs under a layout,
// mirroring the pagination rule of the drawing loop.
func PageCountForRows(layout BillLayout, pageH float64, rowCount int) int {
	contentStart := layout.Margin + layout.TitleBlockH + layout.HeaderH
	perPage := int((pageH - layout.BottomMargin - contentStart) / layout.RowH)
	if perPage <= 0 {
		return rowCount
	}
	pages := (rowCount + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}
	return pages
}
