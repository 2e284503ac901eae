package normalize

import (
	"sort"
	"time"

	"github.com/Veraticus/rollover/internal/model"
)

var (
	bonusDateKeys    = []string{"ResultDateLocal", "CreatedLocal", "Created", "AcceptanceDateLocal", "CreationDateLocal"}
	bonusCreatorKeys = []string{"CreatedBy", "CreatedByLogin", "CreatedByUserName", "ManagerName", "UserName", "CreatorName", "CreatedById"}
)

// ClientBonuses converts raw bonus records, newest first.
func ClientBonuses(records []model.RawRecord, loc *time.Location) []model.ClientBonus {
	bonuses := make([]model.ClientBonus, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		bonus := model.ClientBonus{
			ID:          lookupString(rec, "Id", "ClientBonusId"),
			Name:        lookupString(rec, "Name", "BonusName"),
			Description: lookupString(rec, "Description", "BonusDescription"),
			CreatedBy:   lookupString(rec, bonusCreatorKeys...),
			BonusType:   lookupString(rec, "BonusType"),
		}
		if v, ok := lookupKeys(rec, []string{"Amount"}); ok {
			bonus.Amount = ParseAmount(v)
		}
		if v, ok := lookupKeys(rec, []string{"WageredAmount"}); ok {
			bonus.WageredAmount = ParseAmount(v)
		}
		if v, ok := lookupKeys(rec, []string{"ToWagerAmount"}); ok {
			bonus.ToWagerAmount = ParseAmount(v)
		}
		if v, ok := lookupKeys(rec, []string{"PaidAmount"}); ok {
			paid := ParseAmount(v)
			bonus.PaidAmount = &paid
		}
		if v, ok := lookupKeys(rec, []string{"ResultType"}); ok {
			if code, ok := toInt(v); ok {
				bonus.ResultType = &code
			}
		}
		if v, ok := lookupKeys(rec, bonusDateKeys); ok {
			if ts, ok := parseTimestampValue(v, loc); ok {
				bonus.CreatedAt = ts
			}
		}
		bonuses = append(bonuses, bonus)
	}

	sort.SliceStable(bonuses, func(i, j int) bool {
		return bonuses[i].CreatedAt.After(bonuses[j].CreatedAt)
	})
	return bonuses
}
