// Package commentary selects a deterministic prompt for a MatchEvent from a
// categorized line database (C10). Given the same event and PRNG draw, the
// selection is always identical, so commentary replays byte-for-byte
// alongside the event stream it narrates.
package commentary

import (
	"math/rand"

	"github.com/domeball/core/internal/models"
)

// Category groups lines by narrative purpose.
type Category string

const (
	CategoryPreGame     Category = "PRE_GAME"
	CategoryFlow        Category = "FLOW"
	CategoryUrgency     Category = "URGENCY"
	CategoryLooseBall   Category = "LOOSE_BALL"
	CategoryRun         Category = "RUN"
	CategoryPass        Category = "PASS"
	CategoryDefense     Category = "DEFENSE"
	CategorySkill       Category = "SKILL"
	CategoryInjury      Category = "INJURY"
	CategoryFatigue     Category = "FATIGUE"
	CategoryAtmosphere  Category = "ATMOSPHERE"
	CategoryCamaraderie Category = "CAMARADERIE"
	CategoryScoring     Category = "SCORING"
	CategoryContextual  Category = "CONTEXTUAL"
)

// Line is a single commentary template, optionally specific to a race.
type Line struct {
	Category Category
	Race     models.Race // empty Race means race-neutral
	Text     string
}

// Selector chooses commentary from a fixed, in-memory line database.
type Selector struct {
	byCategory map[Category][]Line
}

func New() *Selector {
	s := &Selector{byCategory: make(map[Category][]Line)}
	for _, l := range defaultLines {
		s.byCategory[l.Category] = append(s.byCategory[l.Category], l)
	}
	return s
}

// SelectionContext carries everything Select needs to pick and personalize
// a line.
type SelectionContext struct {
	Event            models.MatchEvent
	ActorRace        models.Race
	ScoreDifferential int
	SecondsRemaining int
}

func categoryFor(evt models.MatchEventType) Category {
	switch evt {
	case models.EventPass:
		return CategoryPass
	case models.EventRun:
		return CategoryRun
	case models.EventTackle, models.EventKnockdown:
		return CategoryDefense
	case models.EventFumble:
		return CategoryLooseBall
	case models.EventScore:
		return CategoryScoring
	case models.EventInjury:
		return CategoryInjury
	default:
		return CategoryFlow
	}
}

// raceVariantProbability is the chance a race-specific variant is chosen
// over a race-neutral line when both exist for the category (spec §4.10).
const raceVariantProbability = 0.30

// Select deterministically picks a commentary line for a ctx given rng. The
// same (ctx, rng-state) pair always yields the same line index, satisfying
// the replay-determinism property (spec §8).
func (s *Selector) Select(ctx SelectionContext, rng *rand.Rand) string {
	category := categoryFor(ctx.Event.Type)
	if ctx.SecondsRemaining <= 120 && abs(ctx.ScoreDifferential) <= 1 {
		category = CategoryUrgency
	}

	lines := s.byCategory[category]
	if len(lines) == 0 {
		lines = s.byCategory[CategoryContextual]
	}
	if len(lines) == 0 {
		return ""
	}

	var raceVariants, neutral []Line
	for _, l := range lines {
		if l.Race != "" && l.Race == ctx.ActorRace {
			raceVariants = append(raceVariants, l)
		} else if l.Race == "" {
			neutral = append(neutral, l)
		}
	}

	if len(raceVariants) > 0 && rng.Float64() < raceVariantProbability {
		return raceVariants[rng.Intn(len(raceVariants))].Text
	}
	if len(neutral) == 0 {
		neutral = lines
	}
	return neutral[rng.Intn(len(neutral))].Text
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
