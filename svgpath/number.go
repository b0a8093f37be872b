package svgpath

import (
	"math"
	"strconv"
	"strings"
)

// NoPrecision disables rounding in Stringify.
const NoPrecision = -1

// FormatNumber returns the shortest decimal representation of x which
// parses back to x, using an exponent for very small and very large
// magnitudes, the way web browsers print numbers.
func FormatNumber(x float64) string {
	if x == 0 { // also for -0
		return "0"
	}
	abs := math.Abs(x)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(x, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		exp = strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + string(sign) + exp
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// Round rounds x to precision decimal digits, halfway values being
// rounded up. A negative precision returns x unchanged.
func Round(x float64, precision int) float64 {
	if precision < 0 {
		return x
	}
	ratio := math.Pow(10, float64(precision))
	return math.Floor(x*ratio+0.5) / ratio
}

// ToFixed rounds x to precision decimal digits, using the decimal
// representation of x.
func ToFixed(x float64, precision int) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', precision, 64), 64)
	return v
}

// RemoveLeadingZero formats x, dropping the 0 before the decimal point
// for magnitudes lower than 1 : 0.5 is written .5 and -0.5 is written -.5
func RemoveLeadingZero(x float64) string {
	s := FormatNumber(x)
	if 0 < x && x < 1 && s[0] == '0' {
		return s[1:]
	}
	if -1 < x && x < 0 && s[1] == '0' {
		return "-" + s[2:]
	}
	return s
}

// CleanupOutData writes a list of numbers with the minimum of
// delimiters, as used in transform lists.
func CleanupOutData(data []float64, precision int) string {
	var sb strings.Builder
	prev := 0.
	for i, item := range data {
		item = Round(item, precision)
		itemStr := RemoveLeadingZero(item)
		if i != 0 && !(item < 0 || (itemStr[0] == '.' && math.Mod(prev, 1) != 0)) {
			sb.WriteByte(' ')
		}
		sb.WriteString(itemStr)
		prev = item
	}
	return sb.String()
}
