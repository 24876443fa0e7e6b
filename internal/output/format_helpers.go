package output

import (
	"strconv"

	moneyutil "github.com/rpgo/nestegg/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	return moneyutil.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// yesNo renders a sustainability flag for people rather than parsers.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
