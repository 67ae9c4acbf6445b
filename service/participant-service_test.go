package service

import (
	"fairway/repository"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seedParticipant() *repository.Participant {
	course := parFourCourse()
	competition := &repository.Competition{
		Name:     "Casual Friday",
		CourseId: &course.Id,
		Participants: []*repository.Participant{
			{PlayerId: 101, Name: "Ann"},
		},
	}
	if err := db.Create(competition).Error; err != nil {
		panic(err)
	}
	return competition.Participants[0]
}

func TestRecordHoleScoreSnapshotsHandicap(t *testing.T) {
	defer TearDown()
	participant := seedParticipant()
	service := NewParticipantService(db)

	updated, err := service.RecordHoleScore(participant.Id, 1, 5, floatPtr(12.3))
	assert.NoError(t, err)
	assert.Equal(t, int64(5), updated.Score[0])
	assert.Equal(t, 12.3, *updated.HandicapIndex)

	// the index was snapshotted on the first score and stays put
	updated, err = service.RecordHoleScore(participant.Id, 2, 4, floatPtr(9.8))
	assert.NoError(t, err)
	assert.Equal(t, 12.3, *updated.HandicapIndex)
}

func TestRecordHoleScoreValidation(t *testing.T) {
	defer TearDown()
	participant := seedParticipant()
	service := NewParticipantService(db)

	_, err := service.RecordHoleScore(participant.Id, 0, 5, nil)
	assert.Error(t, err)
	_, err = service.RecordHoleScore(participant.Id, 19, 5, nil)
	assert.Error(t, err)
	_, err = service.RecordHoleScore(participant.Id, 1, -3, nil)
	assert.Error(t, err)

	// the unreported sentinel is a legal entry
	updated, err := service.RecordHoleScore(participant.Id, 3, repository.UnreportedHole, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(repository.UnreportedHole), updated.Score[2])
}

func TestLockedParticipantRejectsScores(t *testing.T) {
	defer TearDown()
	participant := seedParticipant()
	service := NewParticipantService(db)

	_, err := service.SetLocked(participant.Id, true)
	assert.NoError(t, err)

	_, err = service.RecordHoleScore(participant.Id, 1, 5, nil)
	assert.Error(t, err)
	_, err = service.RecordManualScore(participant.Id, intPtr(80), nil, nil, nil)
	assert.Error(t, err)

	_, err = service.SetLocked(participant.Id, false)
	assert.NoError(t, err)
	_, err = service.RecordHoleScore(participant.Id, 1, 5, nil)
	assert.NoError(t, err)
}

func TestRecordManualScore(t *testing.T) {
	defer TearDown()
	participant := seedParticipant()
	service := NewParticipantService(db)

	updated, err := service.RecordManualScore(participant.Id, nil, intPtr(41), intPtr(39), floatPtr(8.0))
	assert.NoError(t, err)
	assert.True(t, updated.HasManualScore())
	assert.Equal(t, 80, updated.ManualGross())
	assert.Equal(t, 8.0, *updated.HandicapIndex)
}
