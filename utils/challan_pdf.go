package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"sangamtransport/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChallanPDFData feeds the manifest template.
type ChallanPDFData struct {
	Challan      *models.Challan
	Branch       *models.Branch
	Rows         []models.Consignment
	DispatchDate string
	Date         string
	RowCount     int
	TotalWeight  float64
}

// GenerateChallanPDF renders the trip manifest from the HTML template and
// prints it to PDF with headless Chrome.
func GenerateChallanPDF(challan *models.Challan, branch *models.Branch, rows []models.Consignment) ([]byte, error) {
	tmpl, err := template.ParseFiles("templates/challan_template.html")
	if err != nil {
		return nil, err
	}

	dispatch := "-"
	if challan.DispatchDate != nil {
		dispatch = challan.DispatchDate.Format("02-Jan-2006")
	}

	data := ChallanPDFData{
		Challan:      challan,
		Branch:       branch,
		Rows:         rows,
		DispatchDate: dispatch,
		Date:         challan.CreatedAt.Format("02-Jan-2006"),
		RowCount:     len(rows),
		TotalWeight:  challan.TotalWeight,
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		table {
			width: 100%;
			border-collapse: collapse;
		}
		th, td {
			border: 1px solid #444;
			padding: 3px 5px;
		}
		tr {
			page-break-inside: avoid;
		}
		</style>
		</head>
		<body>` + body.String() + `</body></html>`

	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "challan_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
