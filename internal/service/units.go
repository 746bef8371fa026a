package service

import (
	"math/big"
	"strings"
)

// tokenDecimals is the precision of the tracked token (WETH).
const tokenDecimals = 18

// formatUnits renders an integer amount of base units as a decimal string
// with decimals fractional digits, trailing zeros trimmed to at least one
// digit: 1500000000000000000 -> "1.5", 0 -> "0.0".
func formatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		amount = new(big.Int)
	}

	digits := new(big.Int).Abs(amount).String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	frac := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if frac == "" {
		frac = "0"
	}

	if amount.Sign() < 0 {
		return "-" + whole + "." + frac
	}
	return whole + "." + frac
}
