package season

// Pairing is one scheduled home/away matchup within a round.
type Pairing struct {
	Home string
	Away string
}

// RoundRobin produces a single round-robin schedule for an even number of
// teams using the standard circle method: fix teams[0], rotate the rest
// one position each round. Returns len(teams)-1 rounds of len(teams)/2
// pairings each; home/away alternates by (round+slot) parity so no team
// plays lopsidedly home or away across the full schedule. Returns nil for
// an odd or too-small input -- every subdivision this is used against (8 or
// 16 teams, post AI-fill) is guaranteed even.
func RoundRobin(teamIDs []string) [][]Pairing {
	n := len(teamIDs)
	if n < 2 || n%2 != 0 {
		return nil
	}

	rotation := make([]string, n)
	copy(rotation, teamIDs)

	rounds := make([][]Pairing, n-1)
	for r := 0; r < n-1; r++ {
		pairings := make([]Pairing, 0, n/2)
		for i := 0; i < n/2; i++ {
			a, b := rotation[i], rotation[n-1-i]
			if (r+i)%2 == 0 {
				pairings = append(pairings, Pairing{Home: a, Away: b})
			} else {
				pairings = append(pairings, Pairing{Home: b, Away: a})
			}
		}
		rounds[r] = pairings

		last := rotation[n-1]
		copy(rotation[2:], rotation[1:n-1])
		rotation[1] = last
	}
	return rounds
}

// DoubleRoundRobin plays RoundRobin twice with each pairing's home/away
// reversed on the second pass, producing 2*(n-1) rounds -- 14 for an
// 8-team subdivision, exactly the league's 14-match regular season (spec
// §4.7 "for each team" / §4.8 step 5 "each team plays 14 league matches").
func DoubleRoundRobin(teamIDs []string) [][]Pairing {
	first := RoundRobin(teamIDs)
	if first == nil {
		return nil
	}
	out := make([][]Pairing, 0, 2*len(first))
	out = append(out, first...)
	for _, round := range first {
		reversed := make([]Pairing, len(round))
		for i, p := range round {
			reversed[i] = Pairing{Home: p.Away, Away: p.Home}
		}
		out = append(out, reversed)
	}
	return out
}

// AssignRoundsToDays spreads a schedule's rounds across a fixed run of
// match days starting at startDay, used when a division's bracket size
// produces more rounds than there are match days -- divisions 1-2 run a
// single 16-team RoundRobin (15 rounds) across the 14-day window, so one
// day carries two rounds' worth of fixtures (spec §4.8 step 5: "divisions
// 1-2 play 2 per day for a subset of days"). Rounds beyond totalDays wrap
// onto day startDay, startDay+1, ... in order, so the surplus concentrates
// on the earliest days rather than scattering across the whole window.
func AssignRoundsToDays(rounds [][]Pairing, startDay, totalDays int) map[int][]Pairing {
	byDay := make(map[int][]Pairing, totalDays)
	if totalDays <= 0 {
		return byDay
	}
	for i, round := range rounds {
		day := startDay + i%totalDays
		byDay[day] = append(byDay[day], round...)
	}
	return byDay
}
