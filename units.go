package csc

import (
	"math/big"
	"strconv"
)

// unitThresholds lists the currency unit labels largest first. A value is
// labelled with the first unit whose threshold it exceeds.
var unitThresholds = []struct {
	threshold float64
	divisor   float64
	label     string
}{
	{999_999_999_999, 1e12, "TCr"},
	{999_999_999, 1e9, "BCr"},
	{999_999, 1e6, "MCr"},
	{999, 1e3, "KCr"},
}

// FormatUnits labels a credit amount with the largest unit it exceeds.
// When shorten is true the divided value is printed with exactly three
// fractional digits; otherwise the quotient is printed as is. Amounts of
// 999 or less (including zero and all negative amounts) are printed
// undivided with the "Cr" label in both modes.
//
// Unshortened values are always printed in plain decimal notation, so very
// small or very large amounts (1e-7, 1e21) never switch to exponent form.
func FormatUnits(value float64, shorten bool) string {
	for _, u := range unitThresholds {
		if value > u.threshold {
			q := value / u.divisor
			if shorten {
				return fixed3(q) + " " + u.label
			}
			return formatNumber(q) + " " + u.label
		}
	}
	return formatNumber(value) + " Cr"
}

// formatNumber prints the shortest decimal form of v without an exponent.
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fixed3 prints v with three fractional digits, rounding the exact binary
// value. Exact halves round away from zero; strconv rounds them to even.
func fixed3(v float64) string {
	r := new(big.Rat).SetFloat64(v)
	r.Mul(r, big.NewRat(2000, 1))
	if !r.IsInt() || r.Num().Bit(0) == 0 {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}

	// r is an odd multiple of 1/2000; round its magnitude up to the next
	// thousandth.
	n := new(big.Int).Abs(r.Num())
	n.Add(n, big.NewInt(1))
	n.Rsh(n, 1)

	whole, frac := new(big.Int).QuoRem(n, big.NewInt(1000), new(big.Int))
	s := whole.String() + "." + pad3(frac.String())
	if v < 0 {
		s = "-" + s
	}
	return s
}

func pad3(s string) string {
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
