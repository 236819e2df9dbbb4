package season

import "sort"

// promotionRelegationCount is how many teams move between adjacent
// divisions at rollover, ranked by a subdivision's final points table
// (spec §4.8 step 5: "top 2 of each subdivision up, bottom 2 down").
const promotionRelegationCount = 2

// minDivision and maxDivision bound where promotion/relegation can move a
// team: division 1 has nothing above it, division 8 (the late-signup open
// division) has nothing below it.
const (
	minDivision = 1
	maxDivision = 8
)

// relocationInput is the subset of models.Team promotion/relegation needs,
// kept narrow so the pure allocator below has no store dependency.
type relocationInput struct {
	ID          string
	Division    int
	Subdivision string
	Points      int
}

// Relocation is one team's division/subdivision move decided at rollover.
type Relocation struct {
	TeamID        string
	ToDivision    int
	ToSubdivision string
}

// computeRelocations implements spec §4.8 step 5's promotion/relegation
// with a promotion-pool mechanic: rather than a promoted or relegated team
// keeping its origin subdivision's letter, every team crossing the same
// division boundary in the same direction is pooled together and
// redistributed round-robin across the target division's existing
// subdivisions. This is what lets a division with few, large subdivisions
// (1-2, at 16 teams) feed or drain a division with many, small ones (3-8,
// at 8 teams) without concentrating all the volume onto whichever single
// subdivision happens to share a letter.
func computeRelocations(teams []relocationInput) []Relocation {
	type boundary struct {
		fromDivision int
		direction    int // -1 promote (up a division), +1 relegate (down a division)
	}
	pools := make(map[boundary][]relocationInput)

	type subKey struct {
		division    int
		subdivision string
	}
	groups := make(map[subKey][]relocationInput)
	for _, t := range teams {
		k := subKey{t.Division, t.Subdivision}
		groups[k] = append(groups[k], t)
	}

	existingSubdivisions := make(map[int][]string)
	for k := range groups {
		existingSubdivisions[k.division] = append(existingSubdivisions[k.division], k.subdivision)
	}
	for d := range existingSubdivisions {
		sort.Strings(existingSubdivisions[d])
	}

	for k, group := range groups {
		sort.Slice(group, func(i, j int) bool { return group[i].Points > group[j].Points })
		n := len(group)
		count := promotionRelegationCount
		if count*2 > n {
			count = n / 2
		}
		if k.division > minDivision {
			b := boundary{k.division, -1}
			pools[b] = append(pools[b], group[:count]...)
		}
		if k.division < maxDivision {
			b := boundary{k.division, 1}
			pools[b] = append(pools[b], group[n-count:]...)
		}
	}

	var out []Relocation
	for b, pooled := range pools {
		target := b.fromDivision + b.direction
		subs := existingSubdivisions[target]
		if len(subs) == 0 {
			subs = []string{"A"}
		}
		for i, t := range pooled {
			out = append(out, Relocation{TeamID: t.ID, ToDivision: target, ToSubdivision: subs[i%len(subs)]})
		}
	}
	return out
}
