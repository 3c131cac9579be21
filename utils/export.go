package utils

import (
	"strconv"
	"strings"
	"unicode"

	"sangamtransport/models"
)

func formatInt64(v int64) string { return strconv.FormatInt(v, 10) }
func formatInt(v int) string     { return strconv.Itoa(v) }
func trimFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// CSV and clipboard serialization of consignment rows. The quoting rule is
// deliberately narrower than encoding/csv: a field is quoted only when it
// contains a comma or a double quote, with internal quotes doubled, so the
// output matches what spreadsheet tools expect from the legacy exports.

var exportHeader = []string{
	"GR No", "Date", "Consignor", "Consignee", "City", "Weight (kg)",
	"Packets", "Payment", "Amount", "Challan No",
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func exportRow(c models.Consignment) []string {
	return []string{
		formatInt64(c.GRNo),
		c.BiltyDate.Format("02-01-2006"),
		c.Consignor,
		c.Consignee,
		c.CityName,
		trimFloat(c.WeightKG),
		formatInt(c.NoOfPackets),
		c.PaymentMode,
		trimFloat(c.Amount),
		c.ChallanNo,
	}
}

// ConsignmentsCSV serializes rows to CSV with a header line.
func ConsignmentsCSV(rows []models.Consignment) string {
	var b strings.Builder
	writeCSVLine(&b, exportHeader)
	for _, c := range rows {
		writeCSVLine(&b, exportRow(c))
	}
	return b.String()
}

func writeCSVLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(csvField(f))
	}
	b.WriteByte('\n')
}

// ConsignmentsClipboard serializes rows as tab-separated text for pasting
// into spreadsheet tools. Control characters and punctuation that would break
// a paste are stripped from every field.
func ConsignmentsClipboard(rows []models.Consignment) string {
	var b strings.Builder
	writeTabLine(&b, exportHeader)
	for _, c := range rows {
		writeTabLine(&b, exportRow(c))
	}
	return b.String()
}

func writeTabLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(cleanClipboardField(f))
	}
	b.WriteByte('\n')
}

func cleanClipboardField(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		switch r {
		case ',', '"', '\'', ';', '\t':
			return -1
		}
		return r
	}, s)
}
