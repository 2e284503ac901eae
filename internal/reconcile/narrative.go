package reconcile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Narrative describes which games produced the profit since the anchor.
// It is empty when no game is dominant.
func Narrative(anchor Anchor, dominant []GameProfit) string {
	switch len(dominant) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s (%s) → %s produced %s net profit",
			anchor.Type.Label(),
			FormatAmount(anchor.Amount),
			dominant[0].Game,
			FormatAmount(dominant[0].NetProfit))
	}

	games := make([]string, len(dominant))
	sum := decimal.Zero
	for i, game := range dominant {
		games[i] = game.Game
		sum = sum.Add(game.NetProfit)
	}
	return fmt.Sprintf("%s (%s) → %s produced %s net profit",
		anchor.Type.Label(),
		FormatAmount(anchor.Amount),
		strings.Join(games, ", "),
		FormatAmount(sum))
}

// FormatAmount renders d with two decimals and comma thousands grouping.
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
