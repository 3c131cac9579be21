package utils

import (
	"fmt"
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords spells an amount in the Indian numbering system
// (thousand, lakh, crore).
func NumberToWords(num int) string {
	switch {
	case num == 0:
		return ""
	case num < 20:
		return ones[num]
	case num < 100:
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	case num < 1000:
		if num%100 == 0 {
			return ones[num/100] + " Hundred"
		}
		return ones[num/100] + " Hundred " + NumberToWords(num%100)
	case num < 100000:
		if num%1000 == 0 {
			return NumberToWords(num/1000) + " Thousand"
		}
		return NumberToWords(num/1000) + " Thousand " + NumberToWords(num%1000)
	case num < 10000000:
		if num%100000 == 0 {
			return NumberToWords(num/100000) + " Lakh"
		}
		return NumberToWords(num/100000) + " Lakh " + NumberToWords(num%100000)
	default:
		if num%10000000 == 0 {
			return NumberToWords(num/10000000) + " Crore"
		}
		return NumberToWords(num/10000000) + " Crore " + NumberToWords(num%10000000)
	}
}

// RupeesInWords renders a whole-rupee amount for the bill footer. Bill
// amounts are rounded to whole rupees before printing, so paise never appear.
func RupeesInWords(amount float64) string {
	rupees := int(math.Round(amount))
	if rupees <= 0 {
		return "Zero Rupees Only"
	}
	return fmt.Sprintf("%s Rupees Only", strings.TrimSpace(NumberToWords(rupees)))
}
