package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/rollover/internal/model"
)

// GameProfit is one row of the per-game breakdown.
type GameProfit struct {
	Game      string          `json:"game"`
	Wagered   decimal.Decimal `json:"wagered"`
	Payout    decimal.Decimal `json:"payout"`
	NetProfit decimal.Decimal `json:"net_profit"`
}

// AttributeGames groups windowed wagers and payouts by game, ranks games by
// net profit and returns the games whose profit exceeds threshold times the
// total positive profit. Entries without a game label are left out.
func AttributeGames(window []model.Entry, threshold float64) (perGame, dominant []GameProfit) {
	index := make(map[string]int)
	for _, entry := range window {
		if !entry.Category.IsGameplay() || entry.Game == "" {
			continue
		}

		i, ok := index[entry.Game]
		if !ok {
			i = len(perGame)
			index[entry.Game] = i
			perGame = append(perGame, GameProfit{
				Game:    entry.Game,
				Wagered: decimal.Zero,
				Payout:  decimal.Zero,
			})
		}

		if entry.Category == model.CategoryWager {
			perGame[i].Wagered = perGame[i].Wagered.Add(entry.Amount)
		} else {
			perGame[i].Payout = perGame[i].Payout.Add(entry.Amount)
		}
	}

	totalPositive := decimal.Zero
	for i := range perGame {
		perGame[i].NetProfit = perGame[i].Payout.Sub(perGame[i].Wagered)
		if perGame[i].NetProfit.IsPositive() {
			totalPositive = totalPositive.Add(perGame[i].NetProfit)
		}
	}

	sort.SliceStable(perGame, func(i, j int) bool {
		if cmp := perGame[i].NetProfit.Cmp(perGame[j].NetProfit); cmp != 0 {
			return cmp > 0
		}
		return perGame[i].Game < perGame[j].Game
	})

	if !totalPositive.IsPositive() {
		return perGame, nil
	}

	cutoff := totalPositive.Mul(decimal.NewFromFloat(threshold))
	for _, game := range perGame {
		if game.NetProfit.GreaterThan(cutoff) {
			dominant = append(dominant, game)
		}
	}
	return perGame, dominant
}
