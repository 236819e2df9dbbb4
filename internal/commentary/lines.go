package commentary

import "github.com/domeball/core/internal/models"

// defaultLines is the built-in commentary database. Entries with no Race
// are neutral and eligible everywhere in their category; entries with a
// Race are only eligible for an actor of that race, and compete with
// neutral lines under raceVariantProbability.
var defaultLines = []Line{
	{Category: CategoryPreGame, Text: "Both teams take the field as the dome lights come up."},
	{Category: CategoryPreGame, Text: "The crowd is on its feet before the opening whistle."},

	{Category: CategoryFlow, Text: "Possession changes hands in the midfield scramble."},
	{Category: CategoryFlow, Text: "A measured build-up as both sides probe for an opening."},

	{Category: CategoryUrgency, Text: "Clock winding down and it's anyone's game."},
	{Category: CategoryUrgency, Text: "Every second matters now."},

	{Category: CategoryLooseBall, Text: "The ball pops loose in the scrum!"},
	{Category: CategoryLooseBall, Text: "Loose ball, and it's a scramble to recover it."},

	{Category: CategoryRun, Text: "A burst up the middle picks up good yardage."},
	{Category: CategoryRun, Race: models.RaceSylvan, Text: "That Sylvan footwork makes the angle look easy."},
	{Category: CategoryRun, Race: models.RaceGryll, Text: "Sheer Gryll power drives through two defenders."},

	{Category: CategoryPass, Text: "A quick release finds the target in stride."},
	{Category: CategoryPass, Race: models.RaceLumina, Text: "Lumina precision thread that one through a tight window."},

	{Category: CategoryDefense, Text: "Textbook tackle stops the play cold."},
	{Category: CategoryDefense, Race: models.RaceUmbra, Text: "The Umbra defender reads it a step ahead of everyone."},
	{Category: CategoryDefense, Text: "Knockdown at the line, whistle blows."},

	{Category: CategorySkill, Text: "A flash of individual brilliance there."},

	{Category: CategoryInjury, Text: "Play stops as the medical staff comes out."},
	{Category: CategoryInjury, Text: "That looked painful, he's slow to get up."},

	{Category: CategoryFatigue, Text: "You can see the legs going on that last rep."},
	{Category: CategoryFatigue, Text: "Stamina is becoming a factor out there."},

	{Category: CategoryAtmosphere, Text: "The home crowd roars with every possession."},

	{Category: CategoryCamaraderie, Text: "That was a well-drilled play, everyone on the same page."},

	{Category: CategoryScoring, Text: "Score! The crowd erupts."},
	{Category: CategoryScoring, Race: models.RaceHuman, Text: "Grit and determination pay off with a score."},

	{Category: CategoryContextual, Text: "Play continues at a measured pace."},
}
