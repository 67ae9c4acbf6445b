package service

import (
	"errors"
	"fairway/app_error"
	"fairway/repository"
	"fairway/scoring"
	"log"
	"time"

	"gorm.io/gorm"
)

// LeaderboardEntry is the live, projected view of one participant. It is
// recomputed from current data on every request and never persisted.
type LeaderboardEntry struct {
	ParticipantId    int    `json:"participant_id"`
	PlayerId         int    `json:"player_id"`
	Name             string `json:"name"`
	GrossTotal       int    `json:"gross_total"`
	RelativeToPar    int    `json:"relative_to_par"`
	NetTotal         *int   `json:"net_total,omitempty"`
	NetRelativeToPar *int   `json:"net_relative_to_par,omitempty"`
	HolesPlayed      int    `json:"holes_played"`
	Position         int    `json:"position"`
	NetPosition      *int   `json:"net_position,omitempty"`
	Points           int    `json:"points"`
	NetPoints        *int   `json:"net_points,omitempty"`
	IsProjected      bool   `json:"is_projected"`
	IsDNF            bool   `json:"is_dnf"`
}

type Difftype string

const (
	Added     Difftype = "Added"
	Removed   Difftype = "Removed"
	Changed   Difftype = "Changed"
	Unchanged Difftype = "Unchanged"
)

type EntryDifference struct {
	Entry     *LeaderboardEntry
	FieldDiff []string
	DiffType  Difftype
}

// BoardMap holds the latest known entry per participant id.
type BoardMap map[int]*EntryDifference

type LeaderboardService struct {
	LatestBoards          map[int]BoardMap
	competitionRepository *repository.CompetitionRepository
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{
		LatestBoards:          make(map[int]BoardMap),
		competitionRepository: repository.NewCompetitionRepository(db),
	}
}

var competitionPreloads = []string{"Course", "Tee", "CategoryTees.Tee", "Participants"}

// GetLeaderboard recomputes the projected leaderboard for a competition.
// Gross and net rankings are computed independently from the same cards and
// merged into one entry per participant.
func (s *LeaderboardService) GetLeaderboard(competitionId int, now time.Time) ([]*LeaderboardEntry, error) {
	competition, err := s.competitionRepository.GetCompetitionById(competitionId, competitionPreloads...)
	if err != nil {
		return nil, err
	}
	if competition.Course == nil {
		return nil, app_error.New("competition has no course assigned", 409)
	}
	cards, err := scoring.AggregateCompetition(competition, competition.Course, competition.Participants, now)
	if err != nil {
		return nil, err
	}
	return buildEntries(competition, cards), nil
}

func buildEntries(competition *repository.Competition, cards []*scoring.ScoreCard) []*LeaderboardEntry {
	finishers := 0
	for _, card := range cards {
		if card.Finished {
			finishers++
		}
	}
	grossRanking := scoring.Rank(cards, scoring.RankOptions{
		ScoringType: repository.ScoringTypeGross,
		Template:    competition.PointTemplate,
		Multiplier:  competition.PointsMultiplier,
		EntryCount:  finishers,
	})

	entries := make([]*LeaderboardEntry, 0, len(grossRanking))
	entryByParticipant := make(map[int]*LeaderboardEntry)
	for _, ranked := range grossRanking {
		entry := &LeaderboardEntry{
			ParticipantId:    ranked.ParticipantId,
			PlayerId:         ranked.PlayerId,
			Name:             ranked.Name,
			GrossTotal:       ranked.GrossTotal,
			RelativeToPar:    ranked.RelativeToPar,
			NetTotal:         ranked.NetTotal,
			NetRelativeToPar: ranked.NetRelativeToPar,
			HolesPlayed:      ranked.HolesPlayed,
			Position:         ranked.Position,
			Points:           ranked.Points,
			IsProjected:      true,
			IsDNF:            ranked.DNF,
		}
		entries = append(entries, entry)
		entryByParticipant[ranked.ParticipantId] = entry
	}

	if competition.ScoringMode != repository.ScoringModeGross {
		netRanking := scoring.Rank(cards, scoring.RankOptions{
			ScoringType: repository.ScoringTypeNet,
			Template:    competition.PointTemplate,
			Multiplier:  competition.PointsMultiplier,
			EntryCount:  finishers,
		})
		for _, ranked := range netRanking {
			entry, ok := entryByParticipant[ranked.ParticipantId]
			if !ok || ranked.NetRelativeToPar == nil {
				continue
			}
			position := ranked.Position
			points := ranked.Points
			entry.NetPosition = &position
			entry.NetPoints = &points
		}
	}
	return entries
}

func GetEntryDifference(prevDiff *EntryDifference, entry *LeaderboardEntry) *EntryDifference {
	if prevDiff == nil {
		return &EntryDifference{Entry: entry, DiffType: Added}
	}
	prev := prevDiff.Entry
	fieldDiff := make([]string, 0)
	if prev.GrossTotal != entry.GrossTotal {
		fieldDiff = append(fieldDiff, "GrossTotal")
	}
	if prev.HolesPlayed != entry.HolesPlayed {
		fieldDiff = append(fieldDiff, "HolesPlayed")
	}
	if prev.Position != entry.Position {
		fieldDiff = append(fieldDiff, "Position")
	}
	if prev.Points != entry.Points {
		fieldDiff = append(fieldDiff, "Points")
	}
	if !intPointersEqual(prev.NetTotal, entry.NetTotal) {
		fieldDiff = append(fieldDiff, "NetTotal")
	}
	if !intPointersEqual(prev.NetPosition, entry.NetPosition) {
		fieldDiff = append(fieldDiff, "NetPosition")
	}
	if !intPointersEqual(prev.NetPoints, entry.NetPoints) {
		fieldDiff = append(fieldDiff, "NetPoints")
	}
	if prev.IsDNF != entry.IsDNF {
		fieldDiff = append(fieldDiff, "IsDNF")
	}
	if len(fieldDiff) == 0 {
		return &EntryDifference{Entry: entry, DiffType: Unchanged}
	}
	return &EntryDifference{Entry: entry, FieldDiff: fieldDiff, DiffType: Changed}
}

func intPointersEqual(a *int, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func Diff(boardMap BoardMap, entries []*LeaderboardEntry) (BoardMap, BoardMap) {
	newMap := make(BoardMap)
	diffMap := make(BoardMap)
	for _, entry := range entries {
		entryDiff := GetEntryDifference(boardMap[entry.ParticipantId], entry)
		newMap[entry.ParticipantId] = entryDiff
		if entryDiff.DiffType != Unchanged {
			diffMap[entry.ParticipantId] = entryDiff
		}
	}
	for participantId, oldEntry := range boardMap {
		if _, ok := newMap[participantId]; !ok {
			diffMap[participantId] = &EntryDifference{Entry: oldEntry.Entry, DiffType: Removed}
		}
	}
	return newMap, diffMap
}

// GetNewDiff recomputes the leaderboard and returns only what changed since
// the last computation for this competition.
func (s *LeaderboardService) GetNewDiff(competitionId int) (BoardMap, error) {
	t := time.Now()
	entries, err := s.GetLeaderboard(competitionId, t)
	if err != nil {
		return nil, err
	}
	oldBoard := s.LatestBoards[competitionId]
	newBoard, diff := Diff(oldBoard, entries)
	s.LatestBoards[competitionId] = newBoard
	log.Printf("Calculated leaderboard for competition %d in %d milliseconds", competitionId, time.Since(t).Milliseconds())
	if len(diff) == 0 {
		return nil, errors.New("no changes in leaderboard")
	}
	return diff, nil
}
