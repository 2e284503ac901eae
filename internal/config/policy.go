package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // zone names must resolve on hosts without a zoneinfo database

	"github.com/spf13/viper"

	"github.com/Veraticus/rollover/internal/backoffice"
	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/reconcile"
)

// LoadPolicy loads the wagering policy from the policy.* keys.
// Unset keys keep the reconcile defaults.
func LoadPolicy() (reconcile.Policy, error) {
	return loadPolicy(viper.GetViper())
}

func loadPolicy(v *viper.Viper) (reconcile.Policy, error) {
	policy := reconcile.DefaultPolicy()

	if v.IsSet("policy.turnover_target_multiple") {
		policy.TurnoverTargetMultiple = v.GetFloat64("policy.turnover_target_multiple")
	}
	if v.IsSet("policy.withdrawal_cap_multiple") {
		policy.WithdrawalCapMultiple = v.GetFloat64("policy.withdrawal_cap_multiple")
	}
	if v.IsSet("policy.dominant_game_threshold") {
		policy.DominantGameThreshold = v.GetFloat64("policy.dominant_game_threshold")
	}
	if v.IsSet("policy.recent_activity_window") {
		policy.RecentActivityWindow = v.GetDuration("policy.recent_activity_window")
	}
	if v.IsSet("policy.paid_bonus_result_types") {
		policy.PaidBonusResultTypes = v.GetIntSlice("policy.paid_bonus_result_types")
	}

	loc, err := loadLocation(v)
	if err != nil {
		return reconcile.Policy{}, err
	}
	policy.Location = loc

	if aliases := v.GetStringMapString("policy.category_aliases"); len(aliases) > 0 {
		policy.CategoryAliases = make(map[string]model.Category, len(aliases))
		for substring, category := range aliases {
			policy.CategoryAliases[substring] = model.Category(strings.ToLower(strings.TrimSpace(category)))
		}
	}

	if err := policy.Validate(); err != nil {
		return reconcile.Policy{}, err
	}
	return policy, nil
}

// LoadBackofficeConfig loads the back-office client configuration.
// It follows this precedence:
// 1. Viper configuration (from config file or ROLLOVER_ env vars)
// 2. The BACKOFFICE_TOKEN environment variable for the token
// 3. Default values
func LoadBackofficeConfig() (*backoffice.Config, error) {
	return loadBackofficeConfig(viper.GetViper())
}

func loadBackofficeConfig(v *viper.Viper) (*backoffice.Config, error) {
	cfg := backoffice.DefaultConfig()

	if s := v.GetString("backoffice.base_url"); s != "" {
		cfg.BaseURL = s
	}
	cfg.Token = v.GetString("backoffice.token")
	if cfg.Token == "" {
		cfg.Token = os.Getenv("BACKOFFICE_TOKEN")
	}
	if v.IsSet("backoffice.timeout") {
		cfg.Timeout = v.GetDuration("backoffice.timeout")
	}
	if v.IsSet("backoffice.page_size") {
		cfg.PageSize = v.GetInt("backoffice.page_size")
	}

	loc, err := loadLocation(v)
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadLocation reads policy.timezone; zone-less feed timestamps are local
// back-office time.
func loadLocation(v *viper.Viper) (*time.Location, error) {
	name := v.GetString("policy.timezone")
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: policy.timezone %q: %w", common.ErrInvalidConfig, name, err)
	}
	return loc, nil
}
