package tournament

import (
	"cricket-registration-backend/internal/config"
)

// Prizes lists prize money in rupees
type Prizes struct {
	Winner     int `json:"winner"`
	RunnerUp   int `json:"runnerUp"`
	BestPlayer int `json:"bestPlayer"`
	BestBowler int `json:"bestBowler"`
}

// Venue describes where matches are played
type Venue struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Contact lists the organisers' contact channels
type Contact struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp"`
}

// OfficeHours lists when the organisers can be reached
type OfficeHours struct {
	Weekdays string `json:"weekdays"`
	Saturday string `json:"saturday"`
	Sunday   string `json:"sunday"`
}

// RuleBook holds the published rules text
type RuleBook struct {
	TeamRequirements []string `json:"teamRequirements"`
	MatchRules       []string `json:"matchRules"`
}

// Info is the public tournament configuration served to the pages
type Info struct {
	Name                 string      `json:"name"`
	Year                 string      `json:"year"`
	RegistrationDeadline string      `json:"registrationDeadline"`
	TournamentDates      string      `json:"tournamentDates"`
	Format               string      `json:"format"`
	MaxTeams             int         `json:"maxTeams"`
	RegistrationFee      int         `json:"registrationFee"`
	Fees                 FeeSchedule `json:"fees"`
	PrizePool            int         `json:"prizePool"`
	Prizes               Prizes      `json:"prizes"`
	Venue                Venue       `json:"venue"`
	Contact              Contact     `json:"contact"`
	OfficeHours          OfficeHours `json:"officeHours"`
	TeamRequirements     Rules       `json:"teamRequirements"`
	Facilities           []string    `json:"facilities"`
	Rules                RuleBook    `json:"rules"`
}

// DefaultInfo returns the published facts for the current season
func DefaultInfo() Info {
	prizes := Prizes{Winner: 25000, RunnerUp: 15000, BestPlayer: 5000, BestBowler: 5000}
	fees := DefaultFees()
	return Info{
		Name:                 "All-Star Cricket",
		Year:                 "2024",
		RegistrationDeadline: "March 15, 2024",
		TournamentDates:      "March 20-25, 2024",
		Format:               "T20 (20 overs per side)",
		MaxTeams:             16,
		RegistrationFee:      fees.Open,
		Fees:                 fees,
		PrizePool:            prizes.Winner + prizes.RunnerUp + prizes.BestPlayer + prizes.BestBowler,
		Prizes:               prizes,
		Venue: Venue{
			Name:    "Sports Complex Ground",
			Address: "Andheri East",
			City:    "Mumbai",
			State:   "Maharashtra",
			Pincode: "400069",
		},
		Contact: Contact{
			Phone:    "+91 98765 43210",
			Email:    "info@allstarcricket.com",
			WhatsApp: "+91 98765 43210",
		},
		OfficeHours: OfficeHours{
			Weekdays: "9:00 AM - 6:00 PM",
			Saturday: "9:00 AM - 4:00 PM",
			Sunday:   "Closed",
		},
		TeamRequirements: DefaultRules(),
		Facilities: []string{
			"Professional turf wicket",
			"Floodlights for day-night matches",
			"Changing rooms and shower facilities",
			"Refreshment stalls",
			"Parking facilities",
			"First aid medical support",
		},
		Rules: RuleBook{
			TeamRequirements: []string{
				"Minimum 11 players, maximum 15 players per team",
				"All players must be between 16-50 years of age",
				"Valid ID proof required for all players",
				"Team captain must be present during registration",
			},
			MatchRules: []string{
				"T20 format - 20 overs per side",
				"Powerplay: First 6 overs",
				"Maximum 4 overs per bowler",
				"DRS not available",
			},
		},
	}
}

// InfoFromConfig overlays the configurable values of cfg on DefaultInfo
func InfoFromConfig(cfg *config.Config) Info {
	info := DefaultInfo()
	if cfg == nil {
		return info
	}
	if cfg.TournamentName != "" {
		info.Name = cfg.TournamentName
	}
	if cfg.TournamentMaxTeams > 0 {
		info.MaxTeams = cfg.TournamentMaxTeams
	}
	info.Fees = FeesFromConfig(cfg)
	info.RegistrationFee = info.Fees.Open
	info.TeamRequirements = RulesFromConfig(cfg)
	return info
}
