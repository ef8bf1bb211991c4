package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguaplatform/backend/models"
)

func twoTopicCourse() models.Course {
	return models.Course{
		ID: "es-101",
		Topics: []models.Topic{
			{ID: "t2", Lessons: []models.Lesson{{ID: "l3", Order: 3}, {ID: "l4", Order: 4}}},
			{ID: "t1", Lessons: []models.Lesson{{ID: "l2", Order: 2}, {ID: "l1", Order: 1}}},
		},
	}
}

func TestComputeLockState(t *testing.T) {
	tests := []struct {
		name    string
		watched map[int]bool
		locked  []bool
	}{
		{"nothing watched", map[int]bool{}, []bool{false, true, true, true}},
		{"first watched", map[int]bool{1: true}, []bool{false, false, true, true}},
		{"gap in the middle", map[int]bool{1: true, 3: true}, []bool{false, false, true, false}},
		{"all watched", map[int]bool{1: true, 2: true, 3: true, 4: true}, []bool{false, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []models.LessonState{}
			for _, order := range []int{4, 2, 1, 3} {
				in = append(in, models.LessonState{
					Lesson:  models.Lesson{ID: "l", Order: order},
					Watched: tt.watched[order],
					Locked:  true,
				})
			}

			out := ComputeLockState(in)
			require.Len(t, out, 4)
			for i, st := range out {
				assert.Equal(t, i+1, st.Order)
				assert.Equal(t, tt.locked[i], st.Locked, "order %d", st.Order)
			}
		})
	}
}

func TestComputeLockStateDoesNotMutateInput(t *testing.T) {
	in := []models.LessonState{
		{Lesson: models.Lesson{Order: 2}, Locked: false},
		{Lesson: models.Lesson{Order: 1}, Locked: true},
	}
	ComputeLockState(in)
	assert.Equal(t, 2, in[0].Order)
	assert.True(t, in[1].Locked)
}

func TestLessonStatesFlattensAcrossTopics(t *testing.T) {
	states := LessonStates(twoTopicCourse(), models.LessonProgress{
		"l1": {IsWatched: true},
		"l2": {IsWatched: true, IsSkipped: true},
	})

	ids := []string{}
	for _, st := range states {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []string{"l1", "l2", "l3", "l4"}, ids)
	assert.Equal(t, "t1", states[0].TopicID)
	assert.True(t, states[1].Skipped)
	assert.False(t, states[2].Locked)
	assert.True(t, states[3].Locked)
}

func TestRecompute(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	course := twoTopicCourse()

	p, newly := Recompute(course, models.CourseProgress{Lessons: models.LessonProgress{
		"l1":    {IsWatched: true},
		"l2":    {IsWatched: false},
		"stale": {IsWatched: true},
	}}, now)
	assert.False(t, newly)
	assert.Equal(t, 4, p.TotalLessons)
	assert.Equal(t, 1, p.CompletedLessons)
	assert.False(t, p.IsCompleted)
	assert.Nil(t, p.CompletionDate)

	for _, id := range []string{"l2", "l3", "l4"} {
		p.Lessons[id] = models.LessonRecord{IsWatched: true}
	}
	p, newly = Recompute(course, p, now)
	assert.True(t, newly)
	assert.True(t, p.IsCompleted)
	require.NotNil(t, p.CompletionDate)
	assert.Equal(t, now, *p.CompletionDate)

	later := now.Add(time.Hour)
	p, newly = Recompute(course, p, later)
	assert.False(t, newly)
	assert.Equal(t, now, *p.CompletionDate)
	assert.Equal(t, later, p.LastUpdated)
}

func TestRecomputeEmptyCourseIsNeverComplete(t *testing.T) {
	p, newly := Recompute(models.Course{}, models.CourseProgress{}, time.Now())
	assert.False(t, newly)
	assert.False(t, p.IsCompleted)
	assert.Equal(t, 0, p.TotalLessons)
}

func TestNextUnlockedAndFirstOpen(t *testing.T) {
	states := LessonStates(twoTopicCourse(), models.LessonProgress{"l1": {IsWatched: true}})
	assert.Equal(t, "l2", NextUnlocked(states, "l1"))
	assert.Equal(t, "", NextUnlocked(states, "l2"))
	assert.Equal(t, "l2", FirstOpen(states))
	assert.Equal(t, "", FirstOpen(nil))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(3, 0))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(4, 4))
}
