package scoring

import (
	"fairway/repository"
	"sort"
)

// RankedEntry is a ScoreCard annotated with its leaderboard position and
// awarded points. Unfinished, DNF and disqualified participants keep
// position 0 and 0 points.
type RankedEntry struct {
	*ScoreCard
	Position int
	Points   int
}

type RankOptions struct {
	ScoringType repository.ScoringType
	// Template is consulted first; without one the default formula applies.
	Template   repository.PointTemplate
	Multiplier float64
	// EntryCount is the N of the default points formula. On finalize this is
	// the tour enrollee count when available, otherwise the finisher count.
	EntryCount int
	// Finalize switches tie handling to point-averaging across the tie group.
	Finalize bool
}

// comparisonScore returns the value the ranking compares on and whether the
// card has one at all for this scoring type.
func comparisonScore(card *ScoreCard, scoringType repository.ScoringType) (int, bool) {
	if scoringType == repository.ScoringTypeNet {
		if card.NetRelativeToPar == nil {
			return 0, false
		}
		return *card.NetRelativeToPar, true
	}
	return card.RelativeToPar, true
}

// eligible reports whether a card competes for a position and points.
func eligible(card *ScoreCard, scoringType repository.ScoringType) bool {
	if !card.Finished {
		return false
	}
	_, ok := comparisonScore(card, scoringType)
	return ok
}

func rankLess(a *ScoreCard, b *ScoreCard, scoringType repository.ScoringType) bool {
	if a.DQ != b.DQ {
		return !a.DQ
	}
	if a.DQ {
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ParticipantId < b.ParticipantId
	}
	if a.DNF != b.DNF {
		return !a.DNF
	}
	if a.DNF {
		if a.HolesPlayed != b.HolesPlayed {
			return a.HolesPlayed > b.HolesPlayed
		}
		return a.Name < b.Name
	}
	scoreA, okA := comparisonScore(a, scoringType)
	scoreB, okB := comparisonScore(b, scoringType)
	if okA != okB {
		return okA
	}
	if okA && scoreA != scoreB {
		return scoreA < scoreB
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ParticipantId < b.ParticipantId
}

func defaultPoints(position int, entryCount int) int {
	switch {
	case position == 1:
		return entryCount + 2
	case position == 2:
		return entryCount
	default:
		points := entryCount - (position - 1)
		if points < 0 {
			return 0
		}
		return points
	}
}

func pointsForPosition(position int, opts RankOptions) int {
	if opts.Template != nil {
		points, _ := opts.Template.PointsForPosition(position)
		return points
	}
	multiplier := opts.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}
	return roundHalfUp(float64(defaultPoints(position, opts.EntryCount)) * multiplier)
}

// Rank sorts the cards into leaderboard order and assigns positions and
// points. Ties share the lower position (1,1,3); on finalize a tie group is
// awarded the rounded average of the points its run of positions would earn
// individually.
func Rank(cards []*ScoreCard, opts RankOptions) []*RankedEntry {
	entries := make([]*RankedEntry, len(cards))
	for i, card := range cards {
		entries[i] = &RankedEntry{ScoreCard: card}
	}
	sort.Slice(entries, func(i, j int) bool {
		return rankLess(entries[i].ScoreCard, entries[j].ScoreCard, opts.ScoringType)
	})

	// Group consecutive eligible entries with equal comparison scores.
	groups := make([][]*RankedEntry, 0)
	for _, entry := range entries {
		if !eligible(entry.ScoreCard, opts.ScoringType) {
			continue
		}
		score, _ := comparisonScore(entry.ScoreCard, opts.ScoringType)
		if len(groups) > 0 {
			last := groups[len(groups)-1]
			lastScore, _ := comparisonScore(last[0].ScoreCard, opts.ScoringType)
			if score == lastScore {
				groups[len(groups)-1] = append(last, entry)
				continue
			}
		}
		groups = append(groups, []*RankedEntry{entry})
	}

	position := 1
	for _, group := range groups {
		points := pointsForPosition(position, opts)
		if opts.Finalize && len(group) > 1 {
			sum := 0
			for i := range group {
				sum += pointsForPosition(position+i, opts)
			}
			points = roundHalfUp(float64(sum) / float64(len(group)))
		}
		for _, entry := range group {
			entry.Position = position
			entry.Points = points
		}
		position += len(group)
	}
	return entries
}
