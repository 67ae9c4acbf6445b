package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sequentialIndex() []int {
	index := make([]int, 18)
	for i := range index {
		index[i] = i + 1
	}
	return index
}

func TestCourseHandicap(t *testing.T) {
	// round(9.4*128/113 + (71.2-72)) = round(9.84) = 10
	assert.Equal(t, 10, CourseHandicap(9.4, 128, 71.2, 72))
	// scratch golfer on a course rated below par
	assert.Equal(t, -1, CourseHandicap(0, 113, 71.2, 72))
	// plus handicap uses the same formula
	assert.Equal(t, -2, CourseHandicap(-2.0, 113, 72, 72))
	// halves round up, so -0.5 becomes 0 rather than -1
	assert.Equal(t, 0, CourseHandicap(-0.5, 113, 72, 72))
	assert.Equal(t, 1, CourseHandicap(0.5, 113, 72, 72))
}

func TestValidateStrokeIndex(t *testing.T) {
	assert.NoError(t, ValidateStrokeIndex(sequentialIndex()))

	short := sequentialIndex()[:17]
	assert.Error(t, ValidateStrokeIndex(short))

	duplicate := sequentialIndex()
	duplicate[5] = 1
	assert.Error(t, ValidateStrokeIndex(duplicate))

	outOfRange := sequentialIndex()
	outOfRange[0] = 19
	assert.Error(t, ValidateStrokeIndex(outOfRange))
}

func TestDistributeStrokesWithoutIndex(t *testing.T) {
	strokes, err := DistributeStrokes(20, nil)
	assert.NoError(t, err)
	assert.Equal(t, 2, strokes[0])
	assert.Equal(t, 2, strokes[1])
	assert.Equal(t, 1, strokes[2])
	assert.Equal(t, 1, strokes[17])

	// the sign is ignored on this path
	strokes, err = DistributeStrokes(-3, nil)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1}, strokes[:3])
	assert.Equal(t, 0, strokes[3])
}

func TestDistributeStrokesHardestHolesFirst(t *testing.T) {
	strokes, err := DistributeStrokes(10, sequentialIndex())
	assert.NoError(t, err)
	for hole := 0; hole < 10; hole++ {
		assert.Equal(t, 1, strokes[hole])
	}
	for hole := 10; hole < 18; hole++ {
		assert.Equal(t, 0, strokes[hole])
	}

	strokes, err = DistributeStrokes(22, sequentialIndex())
	assert.NoError(t, err)
	assert.Equal(t, 2, strokes[0])
	assert.Equal(t, 2, strokes[3])
	assert.Equal(t, 1, strokes[4])
	assert.Equal(t, 1, strokes[17])
}

func TestDistributeStrokesPlusHandicapGivesBackEasiestFirst(t *testing.T) {
	strokes, err := DistributeStrokes(-2, sequentialIndex())
	assert.NoError(t, err)
	assert.Equal(t, -1, strokes[17])
	assert.Equal(t, -1, strokes[16])
	assert.Equal(t, 0, strokes[15])
	assert.Equal(t, 0, strokes[0])
}

func TestDistributeStrokesSumsToHandicap(t *testing.T) {
	index := sequentialIndex()
	for courseHandicap := -18; courseHandicap <= 40; courseHandicap++ {
		strokes, err := DistributeStrokes(courseHandicap, index)
		assert.NoError(t, err)
		sum := 0
		for _, s := range strokes {
			sum += s
			assert.GreaterOrEqual(t, s, -1)
		}
		assert.Equal(t, courseHandicap, sum, "courseHandicap %d", courseHandicap)
	}
}

func TestDistributeStrokesRejectsBadIndex(t *testing.T) {
	_, err := DistributeStrokes(10, []int{1, 2, 3})
	assert.Error(t, err)
}
