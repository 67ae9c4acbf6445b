package scoring

import (
	"fairway/repository"
	"fmt"
	"math"
)

// roundHalfUp rounds to the nearest integer with .5 always rounding up,
// matching the reference handicap formula (so -0.5 rounds to 0, not -1).
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// CourseHandicap converts a handicap index into whole strokes for a specific
// course and tee. The same formula covers plus-handicap players, whose index
// is negative.
func CourseHandicap(handicapIndex float64, slopeRating int, courseRating float64, par int) int {
	return roundHalfUp(handicapIndex*float64(slopeRating)/float64(repository.DefaultSlopeRating) + (courseRating - float64(par)))
}

// ValidateStrokeIndex checks that a stroke index covers all 18 holes and is a
// permutation of 1..18.
func ValidateStrokeIndex(strokeIndex []int) error {
	if len(strokeIndex) != repository.HolesPerRound {
		return fmt.Errorf("stroke index has %d entries, expected %d", len(strokeIndex), repository.HolesPerRound)
	}
	seen := make(map[int]bool)
	for _, value := range strokeIndex {
		if value < 1 || value > repository.HolesPerRound || seen[value] {
			return fmt.Errorf("stroke index is not a permutation of 1..%d", repository.HolesPerRound)
		}
		seen[value] = true
	}
	return nil
}

// DistributeStrokes allocates a course handicap across the 18 holes.
//
// Without a stroke index, strokes go out in hole order and the sign of the
// handicap is ignored. With a stroke index, extra strokes go to the hardest
// holes first, and a plus handicap gives strokes back starting from the
// easiest hole.
func DistributeStrokes(courseHandicap int, strokeIndex []int) ([]int, error) {
	strokes := make([]int, repository.HolesPerRound)
	if strokeIndex == nil {
		total := courseHandicap
		if total < 0 {
			total = -total
		}
		base := total / repository.HolesPerRound
		remainder := total % repository.HolesPerRound
		for hole := range strokes {
			strokes[hole] = base
			if hole < remainder {
				strokes[hole]++
			}
		}
		return strokes, nil
	}
	if err := ValidateStrokeIndex(strokeIndex); err != nil {
		return nil, err
	}
	if courseHandicap < 0 {
		given := -courseHandicap
		if given > repository.HolesPerRound {
			given = repository.HolesPerRound
		}
		for i := 0; i < given; i++ {
			for hole, index := range strokeIndex {
				if index == repository.HolesPerRound-i {
					strokes[hole] = -1
					break
				}
			}
		}
		return strokes, nil
	}
	base := courseHandicap / repository.HolesPerRound
	remainder := courseHandicap % repository.HolesPerRound
	for hole, index := range strokeIndex {
		strokes[hole] = base
		if index <= remainder {
			strokes[hole]++
		}
	}
	return strokes, nil
}
