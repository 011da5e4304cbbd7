package tournament

import (
	"cricket-registration-backend/internal/config"
	"cricket-registration-backend/internal/database/models"
)

// FeeSchedule holds registration fees in rupees per category tier
type FeeSchedule struct {
	Open      int `json:"open"`
	Corporate int `json:"corporate"`
	Default   int `json:"default"`
}

// DefaultFees is the published fee schedule
func DefaultFees() FeeSchedule {
	return FeeSchedule{Open: 5000, Corporate: 4000, Default: 3000}
}

// FeeFor derives the fee for a category. Youth and any unrecognized category
// share the default tier.
func (f FeeSchedule) FeeFor(category models.TournamentCategory) int {
	switch category {
	case models.CategoryOpen:
		return f.Open
	case models.CategoryCorporate:
		return f.Corporate
	default:
		return f.Default
	}
}

// Rules are the team requirements a roster must meet
type Rules struct {
	MinPlayers int `json:"minPlayers"`
	MaxPlayers int `json:"maxPlayers"`
	MinAge     int `json:"minAge"`
	MaxAge     int `json:"maxAge"`
}

// DefaultRules returns 11 to 15 players aged 16 to 50
func DefaultRules() Rules {
	return Rules{MinPlayers: 11, MaxPlayers: 15, MinAge: 16, MaxAge: 50}
}

// RulesFromConfig reads the roster bounds from cfg
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		MinPlayers: cfg.RosterMinPlayers,
		MaxPlayers: cfg.RosterMaxPlayers,
		MinAge:     cfg.PlayerMinAge,
		MaxAge:     cfg.PlayerMaxAge,
	}
}

// FeesFromConfig reads the fee schedule from cfg
func FeesFromConfig(cfg *config.Config) FeeSchedule {
	return FeeSchedule{
		Open:      cfg.FeeOpen,
		Corporate: cfg.FeeCorporate,
		Default:   cfg.FeeDefault,
	}
}

// RosterComplete reports whether size players satisfy the roster bounds
func (r Rules) RosterComplete(size int) bool {
	return size >= r.MinPlayers && size <= r.MaxPlayers
}
