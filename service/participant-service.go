package service

import (
	"fairway/app_error"
	"fairway/repository"
	"fmt"

	"gorm.io/gorm"
)

type ParticipantService struct {
	participantRepository *repository.ParticipantRepository
	competitionRepository *repository.CompetitionRepository
}

func NewParticipantService(db *gorm.DB) *ParticipantService {
	return &ParticipantService{
		participantRepository: repository.NewParticipantRepository(db),
		competitionRepository: repository.NewCompetitionRepository(db),
	}
}

// snapshotHandicap captures the handicap index on the first recorded score.
// Later handicap changes must not retroactively alter the round.
func snapshotHandicap(participant *repository.Participant, currentIndex *float64) {
	if participant.HandicapIndex != nil || currentIndex == nil {
		return
	}
	hasScore := participant.HasManualScore()
	for _, score := range participant.Score {
		if score != 0 {
			hasScore = true
			break
		}
	}
	if !hasScore {
		participant.HandicapIndex = currentIndex
	}
}

// RecordHoleScore stores the strokes for one hole (1-based). strokes may be
// the unreported sentinel.
func (s *ParticipantService) RecordHoleScore(participantId int, hole int, strokes int, currentIndex *float64) (*repository.Participant, error) {
	if hole < 1 || hole > repository.HolesPerRound {
		return nil, app_error.New(fmt.Sprintf("hole %d is out of range", hole), 400)
	}
	participant, err := s.participantRepository.GetParticipantById(participantId)
	if err != nil {
		return nil, err
	}
	if participant.IsLocked {
		return nil, app_error.New(fmt.Sprintf("participant %d is locked", participantId), 409)
	}
	snapshotHandicap(participant, currentIndex)
	if len(participant.Score) == 0 {
		participant.Score = make([]int64, repository.HolesPerRound)
	}
	participant.Score[hole-1] = int64(strokes)
	return s.participantRepository.Save(participant)
}

// RecordManualScore stores a manually entered total, optionally split into
// out/in halves.
func (s *ParticipantService) RecordManualScore(participantId int, total *int, out *int, in *int, currentIndex *float64) (*repository.Participant, error) {
	participant, err := s.participantRepository.GetParticipantById(participantId)
	if err != nil {
		return nil, err
	}
	if participant.IsLocked {
		return nil, app_error.New(fmt.Sprintf("participant %d is locked", participantId), 409)
	}
	snapshotHandicap(participant, currentIndex)
	participant.ManualTotal = total
	participant.ManualOut = out
	participant.ManualIn = in
	return s.participantRepository.Save(participant)
}

func (s *ParticipantService) SetLocked(participantId int, locked bool) (*repository.Participant, error) {
	participant, err := s.participantRepository.GetParticipantById(participantId)
	if err != nil {
		return nil, err
	}
	participant.IsLocked = locked
	return s.participantRepository.Save(participant)
}

func (s *ParticipantService) SetDisqualified(participantId int, disqualified bool) (*repository.Participant, error) {
	participant, err := s.participantRepository.GetParticipantById(participantId)
	if err != nil {
		return nil, err
	}
	participant.IsDQ = disqualified
	return s.participantRepository.Save(participant)
}

func (s *ParticipantService) GetParticipantsForCompetition(competitionId int) ([]*repository.Participant, error) {
	return s.participantRepository.GetParticipantsForCompetition(competitionId)
}
