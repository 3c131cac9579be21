package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, ""},
		{7, "Seven"},
		{13, "Thirteen"},
		{40, "Forty"},
		{42, "Forty Two"},
		{100, "One Hundred"},
		{256, "Two Hundred Fifty Six"},
		{1000, "One Thousand"},
		{1205, "One Thousand Two Hundred Five"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{100000, "One Lakh"},
		{250000, "Two Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NumberToWords(tc.in), "input %d", tc.in)
	}
}

func TestRupeesInWords(t *testing.T) {
	assert.Equal(t, "Zero Rupees Only", RupeesInWords(0))
	assert.Equal(t, "Zero Rupees Only", RupeesInWords(-12))
	assert.Equal(t, "Five Rupees Only", RupeesInWords(5.4))
	assert.Equal(t, "Six Rupees Only", RupeesInWords(5.5))
	assert.Equal(t, "One Thousand Rupees Only", RupeesInWords(1000))
}
