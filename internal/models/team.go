package models

// DivisionAlphabet is the 24-symbol ordered alphabet subdivisions are
// labeled from, overflowing to "<letter>_N" once exhausted (spec §3, GLOSSARY).
var DivisionAlphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWX")

// SubdivisionCapacity returns the capacity for a division's subdivisions:
// 16 for divisions 1-2, 8 for divisions 3-8.
func SubdivisionCapacity(division int) int {
	if division == 1 || division == 2 {
		return 16
	}
	return 8
}

// Team is a managed roster competing within one subdivision at a time.
type Team struct {
	ID            string        `db:"id"`
	OwnerID       string        `db:"owner_id"`
	Name          string        `db:"name"`
	Division      int           `db:"division"`
	Subdivision   string        `db:"subdivision"`
	TacticalFocus TacticalFocus `db:"tactical_focus"`
	HomeFieldSize FieldSize     `db:"home_field_size"`
	Camaraderie   int           `db:"camaraderie"` // [0,100]
	FanLoyalty    int           `db:"fan_loyalty"`  // [0,100]
	Wins          int           `db:"wins"`
	Losses        int           `db:"losses"`
	Draws         int           `db:"draws"`
	Points        int           `db:"points"`
	IsAI          bool          `db:"is_ai"`
	StadiumInvestment int64     `db:"stadium_investment"`
}

// RosterSizeValid enforces the spec §3 invariant: roster ∈ [12,15], at most
// 2 taxi-squad members within that 15.
func RosterSizeValid(rosterSize, taxiSquadCount int) bool {
	if rosterSize < 12 || rosterSize > 15 {
		return false
	}
	if taxiSquadCount > 2 {
		return false
	}
	return true
}

// CamaraderieModifier maps camaraderie [0,100] onto the small additive
// modifier used throughout C3/C7 probability formulas: roughly -5..+5.
func CamaraderieModifier(camaraderie int) float64 {
	return (float64(camaraderie) - 50) / 10
}

// StadiumMaintenancePercent is the daily charge against a team's total
// facility investment (spec §4.8 step 1d).
const StadiumMaintenancePercent = 0.01

// MaintenanceCharge returns the credits owed for one day's stadium upkeep.
func MaintenanceCharge(stadiumInvestment int64) int64 {
	return int64(float64(stadiumInvestment) * StadiumMaintenancePercent)
}

// fieldSizeRevenueFactor scales attendance revenue by home field
// configuration: a larger field seats more fans per point of fan loyalty,
// a smaller one concentrates a livelier atmosphere into fewer seats.
func fieldSizeRevenueFactor(size FieldSize) float64 {
	switch size {
	case FieldLarge:
		return 1.25
	case FieldSmall:
		return 0.85
	default:
		return 1.0
	}
}

// StadiumRevenue computes a home LEAGUE match's gate revenue from the
// host's fan loyalty and field size, applied when C4 completes a home
// league fixture (spec §4.2 complete()).
func StadiumRevenue(fanLoyalty int, size FieldSize) int64 {
	return int64(float64(fanLoyalty) * 20 * fieldSizeRevenueFactor(size))
}
