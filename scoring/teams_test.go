package scoring

import (
	"testing"
	"time"

	"fairway/repository"

	"github.com/stretchr/testify/assert"
)

func teamCard(id int, teamId int, relative int, holes int, locked bool) *ScoreCard {
	return &ScoreCard{
		ParticipantId: id,
		Name:          "P" + string(rune('0'+id)),
		TeamId:        &teamId,
		HolesPlayed:   holes,
		GrossTotal:    72 + relative,
		RelativeToPar: relative,
		Locked:        locked,
		Finished:      locked,
	}
}

func TestAggregateTeamsStatus(t *testing.T) {
	teams := []*repository.Team{
		{Id: 1, Name: "Eagles"},
		{Id: 2, Name: "Birdies"},
		{Id: 3, Name: "Bogeys"},
	}
	cards := []*ScoreCard{
		teamCard(1, 1, -2, 18, true),
		teamCard(2, 1, 3, 18, true),
		teamCard(3, 2, 0, 18, true),
		teamCard(4, 2, 1, 9, false),
		teamCard(5, 3, 0, 0, false),
	}
	standings := AggregateTeams(cards, teams)

	byName := make(map[string]*TeamStanding)
	for _, standing := range standings {
		byName[standing.Name] = standing
	}
	assert.Equal(t, TeamStatusFinished, byName["Eagles"].Status)
	assert.Equal(t, TeamStatusInProgress, byName["Birdies"].Status)
	assert.Equal(t, TeamStatusNotStarted, byName["Bogeys"].Status)
	assert.Equal(t, 1, byName["Eagles"].TotalRelativeScore)
	assert.Equal(t, 145, byName["Eagles"].TotalShots)
	assert.Equal(t, 18, byName["Eagles"].HolesPlayed)
}

func TestFinishedTeamsRankAheadRegardlessOfScore(t *testing.T) {
	teams := []*repository.Team{{Id: 1, Name: "Slow"}, {Id: 2, Name: "Done"}}
	cards := []*ScoreCard{
		// better score, but still on the course
		teamCard(1, 1, -6, 12, false),
		teamCard(2, 2, 4, 18, true),
	}
	standings := AggregateTeams(cards, teams)

	assert.Equal(t, "Done", standings[0].Name)
	assert.Equal(t, 1, standings[0].Position)
	assert.Equal(t, "Slow", standings[1].Name)
	assert.Equal(t, 2, standings[1].Position)
}

func TestTeamTieBrokenByBestMembers(t *testing.T) {
	teams := []*repository.Team{{Id: 1, Name: "Alpha"}, {Id: 2, Name: "Beta"}}
	cards := []*ScoreCard{
		// both teams total +2, but Beta's best member is better
		teamCard(1, 1, 1, 18, true),
		teamCard(2, 1, 1, 18, true),
		teamCard(3, 2, -1, 18, true),
		teamCard(4, 2, 3, 18, true),
	}
	standings := AggregateTeams(cards, teams)

	assert.Equal(t, "Beta", standings[0].Name)
	assert.Equal(t, "Alpha", standings[1].Name)
}

func TestTeamWithMoreCountedMembersWinsTie(t *testing.T) {
	teams := []*repository.Team{{Id: 1, Name: "Duo"}, {Id: 2, Name: "Solo"}}
	cards := []*ScoreCard{
		teamCard(1, 1, 0, 18, true),
		teamCard(2, 1, 0, 18, true),
		teamCard(3, 2, 0, 18, true),
	}
	standings := AggregateTeams(cards, teams)

	assert.Equal(t, "Duo", standings[0].Name)
	assert.Equal(t, "Solo", standings[1].Name)
}

func TestTeamPositionsAreStrictlySequential(t *testing.T) {
	teams := []*repository.Team{{Id: 1, Name: "Alpha"}, {Id: 2, Name: "Beta"}}
	cards := []*ScoreCard{
		teamCard(1, 1, 2, 18, true),
		teamCard(2, 2, 2, 18, true),
	}
	standings := AggregateTeams(cards, teams)

	// identical totals still get distinct positions, broken alphabetically
	assert.Equal(t, "Alpha", standings[0].Name)
	assert.Equal(t, 1, standings[0].Position)
	assert.Equal(t, 4, standings[0].Points)
	assert.Equal(t, "Beta", standings[1].Name)
	assert.Equal(t, 2, standings[1].Position)
	assert.Equal(t, 2, standings[1].Points)
}

func TestUnreportedMemberBlocksTotalsAndFinish(t *testing.T) {
	teams := []*repository.Team{{Id: 1, Name: "Alpha"}}
	unreported := teamCard(1, 1, 3, 18, true)
	unreported.HasUnreported = true
	unreported.Finished = false
	cards := []*ScoreCard{
		teamCard(2, 1, -1, 18, true),
		unreported,
	}
	standings := AggregateTeams(cards, teams)

	assert.Equal(t, TeamStatusInProgress, standings[0].Status)
	assert.Equal(t, -1, standings[0].TotalRelativeScore)
	assert.Equal(t, 71, standings[0].TotalShots)
}

func TestTeamStartTimeIsEarliestMember(t *testing.T) {
	teams := []*repository.Team{{Id: 1, Name: "Alpha"}}
	early := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	late := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	first := teamCard(1, 1, 0, 9, false)
	first.StartTime = &late
	second := teamCard(2, 1, 0, 9, false)
	second.StartTime = &early
	standings := AggregateTeams([]*ScoreCard{first, second}, teams)

	assert.Equal(t, early, *standings[0].StartTime)
}
