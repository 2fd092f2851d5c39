package trade

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"tradesim/internal/domain/price"
	"tradesim/internal/domain/token"
)

// AmountDecimals is the number of fixed decimals the derived amount is rendered with.
const AmountDecimals = 6

var amountPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// ValidAmountText reports whether text may be stored as the typed amount. Partially
// typed values such as "12." or "." are accepted here; parsing decides later.
func ValidAmountText(text string) bool {
	return text == "" || amountPattern.MatchString(text)
}

// ParseAmount parses typed amount text. Leading zeros are allowed ("007" is 7), a
// trailing or leading point is allowed ("5." is 5, ".5" is 0.5), and text without any
// digit is unparseable.
func ParseAmount(text string) (decimal.Decimal, bool) {
	if !ValidAmountText(text) || !strings.ContainsAny(text, "0123456789") {
		return decimal.Zero, false
	}
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	text = strings.TrimSuffix(text, ".")

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// AmountTo converts amountFrom of from into to at their USD prices. It returns ""
// for empty or unparseable input, for identical tokens, and when either price is
// unusable.
func AmountTo(amountFrom string, from, to token.Token) string {
	if amountFrom == "" || from.ID == to.ID || to.PriceUSD <= 0 {
		return ""
	}
	if !price.Finite(from.PriceUSD) || !price.Finite(to.PriceUSD) {
		return ""
	}
	value, ok := ParseAmount(amountFrom)
	if !ok {
		return ""
	}

	usd := value.Mul(decimal.NewFromFloat(from.PriceUSD))
	return usd.Div(decimal.NewFromFloat(to.PriceUSD)).StringFixed(AmountDecimals)
}

// USDValue is the USD equivalent of the typed amount, zero when unparseable or when
// from has no usable price.
func USDValue(amountFrom string, from token.Token) decimal.Decimal {
	value, ok := ParseAmount(amountFrom)
	if !ok || !price.Finite(from.PriceUSD) {
		return decimal.Zero
	}
	return value.Mul(decimal.NewFromFloat(from.PriceUSD))
}

type labelTier struct {
	below decimal.Decimal
	label string
}

func usd(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

var labelTiers = []labelTier{
	{usd(1), "B🫠y IT"},
	{usd(10), "B🥲y IT"},
	{usd(100), "B😬y IT"},
	{usd(500), "B😏y IT"},
	{usd(1000), "B😎y IT"},
	{usd(5000), "B🤡y IT"},
	{usd(10000), "B🤩y IT"},
	{usd(25000), "B🤑y IT"},
	{usd(50000), "B🤯y IT"},
	{usd(100000), "B💰y IT"},
	{usd(300000), "B🧨💸 IT"},
}

// ButtonLabel picks the confirm button caption for a trade worth usdValue.
func ButtonLabel(usdValue decimal.Decimal) string {
	if usdValue.Sign() <= 0 {
		return "B🫡y IT"
	}
	for _, tier := range labelTiers {
		if usdValue.LessThan(tier.below) {
			return tier.label
		}
	}

	switch {
	case usdValue.LessThan(usd(1000000)):
		bags := usdValue.Div(usd(100000)).IntPart()
		if bags > 6 {
			bags = 6
		}
		return "D🤣 " + strings.Repeat("💰", int(bags)) + " IT"
	case usdValue.LessThan(usd(5000000)):
		return "B🤩y 🚀 IT"
	case usdValue.LessThan(usd(10000000)):
		return "B🤯y IT"
	default:
		return "B💎y IT"
	}
}
