package normalize

import (
	"strings"

	"github.com/Veraticus/rollover/internal/model"
)

// exactLabels maps vendor category labels to categories, matched verbatim.
var exactLabels = map[string]model.Category{
	"Deposit":            model.CategoryDeposit,
	"Yatırım":            model.CategoryDeposit,
	"Bet":                model.CategoryWager,
	"Wager":              model.CategoryWager,
	"Bahis":              model.CategoryWager,
	"Win":                model.CategoryPayout,
	"Payout":             model.CategoryPayout,
	"Kazanç":             model.CategoryPayout,
	"Loss Bonus":         model.CategoryLossRebateBonus,
	"Loss Rebate":        model.CategoryLossRebateBonus,
	"Kayıp Bonusu":       model.CategoryLossRebateBonus,
	"Withdrawal Request": model.CategoryWithdrawalRequest,
	"Çekim Talebi":       model.CategoryWithdrawalRequest,
}

// caselessLabels is exactLabels keyed by lower-case label.
var caselessLabels = func() map[string]model.Category {
	m := make(map[string]model.Category, len(exactLabels))
	for label, category := range exactLabels {
		m[strings.ToLower(label)] = category
	}
	return m
}()

// categoryAlias resolves labels containing substring.
type categoryAlias struct {
	substring string
	category  model.Category
}

// defaultAliases is checked in order, so rebates come before generic words.
var defaultAliases = []categoryAlias{
	{"kayıp bonus", model.CategoryLossRebateBonus},
	{"loss bonus", model.CategoryLossRebateBonus},
	{"rebate", model.CategoryLossRebateBonus},
	{"çekim", model.CategoryWithdrawalRequest},
	{"withdraw", model.CategoryWithdrawalRequest},
	{"yatırım", model.CategoryDeposit},
	{"deposit", model.CategoryDeposit},
	{"bahis", model.CategoryWager},
	{"wager", model.CategoryWager},
	{"bet", model.CategoryWager},
	{"kazanç", model.CategoryPayout},
	{"payout", model.CategoryPayout},
	{"win", model.CategoryPayout},
}

// documentTypes maps vendor document type ids, used when no label is present.
var documentTypes = map[int]model.Category{
	10:  model.CategoryWager,
	15:  model.CategoryPayout,
	309: model.CategoryLossRebateBonus,
}

// ResolveCategory maps a raw label using exact, case-insensitive and substring matching.
func ResolveCategory(label string) model.Category {
	return resolveCategory(label, defaultAliases)
}

func resolveCategory(label string, aliases []categoryAlias) model.Category {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.CategoryOther
	}
	if category, ok := exactLabels[label]; ok {
		return category
	}

	lower := strings.ToLower(label)
	if category, ok := caselessLabels[lower]; ok {
		return category
	}

	for _, alias := range aliases {
		if strings.Contains(lower, alias.substring) {
			return alias.category
		}
	}
	return model.CategoryOther
}
