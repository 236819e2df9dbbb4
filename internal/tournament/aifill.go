package tournament

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/domeball/core/internal/models"
)

const (
	aiRosterSize       = 13
	aiStartingCredits  = 50000
	aiStartingGems     = 50
	aiBaseAttribute    = 15 // balanced midpoint, out of the [1,40] attribute range
	aiAttributeJitter  = 4  // +/- spread applied per attribute
	aiDefaultPotential = 2.5
)

var aiRoles = []models.Role{models.RolePasser, models.RoleRunner, models.RoleBlocker}
var aiRaces = []models.Race{models.RaceHuman, models.RaceSylvan, models.RaceGryll, models.RaceLumina, models.RaceUmbra}

// GenerateAITeam builds a balanced AI-controlled team with a full roster and
// standard starting finances, used when registration can't fill a bracket
// from real managers (spec §4.5 AI fill policy: "generate new AI teams
// (balanced attributes, full roster, standard finances) only if needed").
func GenerateAITeam(rng *rand.Rand, division int, subdivision string, nameSeed int) (models.Team, []models.Player, models.TeamFinances) {
	team := models.Team{
		ID: uuid.NewString(), OwnerID: "", Name: fmt.Sprintf("AI Franchise %d-%s-%d", division, subdivision, nameSeed),
		Division: division, Subdivision: subdivision,
		TacticalFocus: models.TacticsBalanced, HomeFieldSize: models.FieldStandard,
		Camaraderie: 50, FanLoyalty: 50, IsAI: true,
	}

	roster := make([]models.Player, 0, aiRosterSize)
	for i := 0; i < aiRosterSize; i++ {
		role := aiRoles[i%len(aiRoles)]
		race := aiRaces[i%len(aiRaces)]
		roster = append(roster, models.Player{
			ID: uuid.NewString(), TeamID: team.ID,
			Name: fmt.Sprintf("AI Player %d-%d", nameSeed, i),
			Role: role, Race: race, Age: 20 + rng.Intn(10),
			Attributes:  jitteredAttributes(rng),
			Potential:   aiDefaultPotential,
			Injury:      models.InjuryHealthy,
			IsTaxiSquad: i >= aiRosterSize-2,
		})
	}

	finances := models.TeamFinances{TeamID: team.ID, Credits: aiStartingCredits, Gems: aiStartingGems}
	return team, roster, finances
}

func jitteredAttributes(rng *rand.Rand) models.Attributes {
	jitter := func() int {
		v := aiBaseAttribute + rng.Intn(2*aiAttributeJitter+1) - aiAttributeJitter
		if v < 1 {
			v = 1
		}
		return v
	}
	return models.Attributes{
		Speed: jitter(), Power: jitter(), Agility: jitter(), Throwing: jitter(),
		Catching: jitter(), Kicking: jitter(), Stamina: jitter(), Leadership: jitter(),
	}
}
