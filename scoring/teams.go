package scoring

import (
	"fairway/repository"
	"sort"
	"time"
)

type TeamStatus string

const (
	TeamStatusNotStarted TeamStatus = "NOT_STARTED"
	TeamStatusInProgress TeamStatus = "IN_PROGRESS"
	TeamStatusFinished   TeamStatus = "FINISHED"
)

var teamStatusOrder = map[TeamStatus]int{
	TeamStatusFinished:   0,
	TeamStatusInProgress: 1,
	TeamStatusNotStarted: 2,
}

// TeamStanding is derived from the current score cards on every request,
// never stored.
type TeamStanding struct {
	TeamId             int
	Name               string
	Status             TeamStatus
	TotalShots         int
	TotalRelativeScore int
	HolesPlayed        int
	StartTime          *time.Time
	Position           int
	Points             int
	// relative-to-par of every counted member, sorted ascending, used as the
	// final tie breaker.
	memberRelatives []int
}

// AggregateTeams groups the score cards by team, classifies each team and
// ranks them. Only members who have started and have no unreported hole
// contribute to the totals.
func AggregateTeams(cards []*ScoreCard, teams []*repository.Team) []*TeamStanding {
	standingsByTeam := make(map[int]*TeamStanding)
	membersByTeam := make(map[int][]*ScoreCard)
	for _, team := range teams {
		standingsByTeam[team.Id] = &TeamStanding{TeamId: team.Id, Name: team.Name, Status: TeamStatusNotStarted}
		membersByTeam[team.Id] = make([]*ScoreCard, 0)
	}
	for _, card := range cards {
		if card.TeamId == nil {
			continue
		}
		if _, ok := standingsByTeam[*card.TeamId]; !ok {
			continue
		}
		membersByTeam[*card.TeamId] = append(membersByTeam[*card.TeamId], card)
	}

	for teamId, members := range membersByTeam {
		standing := standingsByTeam[teamId]
		started := 0
		allLocked := len(members) > 0
		anyUnreported := false
		for _, member := range members {
			if member.StartTime != nil && (standing.StartTime == nil || member.StartTime.Before(*standing.StartTime)) {
				standing.StartTime = member.StartTime
			}
			if !member.Locked {
				allLocked = false
			}
			if member.HasUnreported {
				anyUnreported = true
			}
			if !member.HasStarted() {
				continue
			}
			started++
			if member.HolesPlayed > standing.HolesPlayed {
				standing.HolesPlayed = member.HolesPlayed
			}
			if member.HasUnreported {
				continue
			}
			standing.TotalShots += member.GrossTotal
			standing.TotalRelativeScore += member.RelativeToPar
			standing.memberRelatives = append(standing.memberRelatives, member.RelativeToPar)
		}
		sort.Ints(standing.memberRelatives)
		if started == 0 {
			standing.Status = TeamStatusNotStarted
		} else if allLocked && !anyUnreported {
			standing.Status = TeamStatusFinished
		} else {
			standing.Status = TeamStatusInProgress
		}
	}

	standings := make([]*TeamStanding, 0, len(standingsByTeam))
	for _, standing := range standingsByTeam {
		standings = append(standings, standing)
	}
	sort.Slice(standings, func(i, j int) bool {
		return teamLess(standings[i], standings[j])
	})

	// Team positions are strictly sequential: equal scores do not share a
	// position here, unlike the individual ranking.
	for i, standing := range standings {
		standing.Position = i + 1
		standing.Points = defaultPoints(i+1, len(standings))
	}
	return standings
}

func teamLess(a *TeamStanding, b *TeamStanding) bool {
	if teamStatusOrder[a.Status] != teamStatusOrder[b.Status] {
		return teamStatusOrder[a.Status] < teamStatusOrder[b.Status]
	}
	if a.TotalRelativeScore != b.TotalRelativeScore {
		return a.TotalRelativeScore < b.TotalRelativeScore
	}
	// Compare counted members best-to-worst; a team with fewer comparable
	// members loses the tie to one with more.
	for i := 0; i < len(a.memberRelatives) && i < len(b.memberRelatives); i++ {
		if a.memberRelatives[i] != b.memberRelatives[i] {
			return a.memberRelatives[i] < b.memberRelatives[i]
		}
	}
	if len(a.memberRelatives) != len(b.memberRelatives) {
		return len(a.memberRelatives) > len(b.memberRelatives)
	}
	return a.Name < b.Name
}
