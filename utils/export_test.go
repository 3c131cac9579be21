package utils

import (
	"strings"
	"testing"
	"time"

	"sangamtransport/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVFieldQuoting(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"with space", "with space"},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{`both, "quoted"`, `"both, ""quoted"""`},
		{"semi;colon", "semi;colon"}, // only comma and quote trigger quoting
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, csvField(tc.in), "input %q", tc.in)
	}
}

func TestConsignmentsCSV(t *testing.T) {
	rows := []models.Consignment{
		{
			GRNo:        101,
			BiltyDate:   time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
			Consignor:   "Agrawal, Traders",
			Consignee:   `Sharma "Bros"`,
			CityName:    "Nagpur",
			WeightKG:    120.5,
			NoOfPackets: 4,
			PaymentMode: "to-pay",
			Amount:      950,
			ChallanNo:   "CH-77",
		},
	}

	out := ConsignmentsCSV(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "GR No,Date,Consignor,Consignee,City,Weight (kg),Packets,Payment,Amount,Challan No", lines[0])
	assert.Equal(t, `101,03-02-2025,"Agrawal, Traders","Sharma ""Bros""",Nagpur,120.5,4,to-pay,950,CH-77`, lines[1])
}

func TestConsignmentsClipboardStripsBreakingCharacters(t *testing.T) {
	rows := []models.Consignment{
		{
			GRNo:        7,
			BiltyDate:   time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
			Consignor:   "A,B\t\"C';D\nE",
			Consignee:   "Plain",
			CityName:    "N/A",
			PaymentMode: "paid",
		},
	}

	out := ConsignmentsClipboard(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 10)
	assert.Equal(t, "ABCDE", fields[2])
	assert.Equal(t, "Plain", fields[3])
}

func TestCleanClipboardField(t *testing.T) {
	assert.Equal(t, "abc", cleanClipboardField("a,b\"c"))
	assert.Equal(t, "xy", cleanClipboardField("x;'\ty"))
	assert.Equal(t, "ab", cleanClipboardField("a\r\nb"))
	assert.Equal(t, "untouched", cleanClipboardField("untouched"))
}
