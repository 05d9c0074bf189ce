// Package format renders numbers and names the way listing and player views
// display them.
package format

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Time renders seconds as MM:SS. Negative and NaN input render as 00:00.
// Minutes are not wrapped into hours.
func Time(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	minutes := math.Floor(seconds / 60)
	secs := math.Floor(math.Mod(seconds, 60))
	return fmt.Sprintf("%02d:%02d", int64(minutes), int64(secs))
}

// ViewCount abbreviates a view count. Billions and millions keep one decimal
// place, thousands keep none.
func ViewCount(n uint64) string {
	switch {
	case n >= 1_000_000_000:
		return toFixed(float64(n)/1_000_000_000, 1) + "B"
	case n >= 1_000_000:
		return toFixed(float64(n)/1_000_000, 1) + "M"
	case n >= 1_000:
		return toFixed(float64(n)/1_000, 0) + "K"
	default:
		return strconv.FormatUint(n, 10)
	}
}

// toFixed rounds the exact binary value of a non-negative v to places
// decimals. Only true ties round up: 1.25 gives "1.3" but 1.45, stored as
// 1.4499..., gives "1.4".
func toFixed(v float64, places int) string {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)

	r := new(big.Rat).SetFloat64(v)
	r.Mul(r, new(big.Rat).SetInt(scale))

	q, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	if places == 0 {
		return q.String()
	}

	whole, frac := new(big.Int).QuoRem(q, scale, new(big.Int))
	return fmt.Sprintf("%d.%0*d", whole, places, frac.Int64())
}

var countPrinter = message.NewPrinter(language.English)

// Count renders an exact count with thousands separators, as in 12,503.
func Count(n uint64) string {
	return countPrinter.Sprintf("%d", n)
}

// Initials takes the first character of every whitespace separated word.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ChannelGlyph is the single letter avatar fallback used on video cards.
func ChannelGlyph(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func RateLabel(rate float64) string {
	if rate == 1 {
		return "Normal"
	}
	return strconv.FormatFloat(rate, 'f', -1, 64) + "x"
}
