package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/abhisek/skillpath/internal/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "dsn", logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}

func TestCourseRepo_GetScopedToOwner(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	owner := uuid.New()
	course := &Course{
		UserID:   owner,
		Name:     "Rust Fundamentals",
		Duration: "2 weeks",
		Roadmap:  datatypes.JSON(`{}`),
	}
	require.NoError(t, st.Courses().Create(ctx, course))
	require.NotEqual(t, uuid.Nil, course.ID)
	assert.Equal(t, CourseStatusActive, course.Status)

	got, err := st.Courses().Get(ctx, owner, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rust Fundamentals", got.Name)

	_, err = st.Courses().Get(ctx, uuid.New(), course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseRepo_SetStatus(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	owner := uuid.New()
	course := &Course{UserID: owner, Name: "Go", Duration: "1 week", Roadmap: datatypes.JSON(`{}`)}
	require.NoError(t, st.Courses().Create(ctx, course))

	require.NoError(t, st.Courses().SetStatus(ctx, course.ID, CourseStatusCompleted))

	got, err := st.Courses().Get(ctx, owner, course.ID)
	require.NoError(t, err)
	assert.Equal(t, CourseStatusCompleted, got.Status)
}

func TestMilestoneRepo_ListByCourseOrdersByIndex(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	courseID := uuid.New()
	milestones := []*Milestone{
		{CourseID: courseID, Title: "Third", OrderIndex: 3, Resources: datatypes.JSON(`{}`), Quiz: datatypes.JSON(`[]`)},
		{CourseID: courseID, Title: "First", OrderIndex: 1, Resources: datatypes.JSON(`{}`), Quiz: datatypes.JSON(`[]`)},
		{CourseID: courseID, Title: "Second", OrderIndex: 2, Resources: datatypes.JSON(`{}`), Quiz: datatypes.JSON(`[]`)},
	}
	require.NoError(t, st.Milestones().CreateBatch(ctx, milestones))

	got, err := st.Milestones().ListByCourse(ctx, courseID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, title := range []string{"First", "Second", "Third"} {
		assert.Equal(t, i+1, got[i].OrderIndex)
		assert.Equal(t, title, got[i].Title)
	}
}

func TestMilestoneRepo_DuplicateOrderRejected(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	courseID := uuid.New()
	first := []*Milestone{{CourseID: courseID, Title: "A", OrderIndex: 1, Resources: datatypes.JSON(`{}`), Quiz: datatypes.JSON(`[]`)}}
	require.NoError(t, st.Milestones().CreateBatch(ctx, first))

	dup := []*Milestone{{CourseID: courseID, Title: "B", OrderIndex: 1, Resources: datatypes.JSON(`{}`), Quiz: datatypes.JSON(`[]`)}}
	assert.Error(t, st.Milestones().CreateBatch(ctx, dup))
}

func TestProgressRepo_SetStatusStoresScore(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	userID := uuid.New()
	rec := &ProgressRecord{
		UserID:      userID,
		CourseID:    uuid.New(),
		MilestoneID: uuid.New(),
		Status:      ProgressActive,
	}
	require.NoError(t, st.Progress().CreateBatch(ctx, []*ProgressRecord{rec}))

	score := 100
	require.NoError(t, st.Progress().SetStatus(ctx, rec.ID, ProgressCompleted, &score))

	got, err := st.Progress().Get(ctx, userID, rec.MilestoneID)
	require.NoError(t, err)
	assert.Equal(t, ProgressCompleted, got.Status)
	require.NotNil(t, got.QuizScore)
	assert.Equal(t, 100, *got.QuizScore)
}

func TestCertificateRepo_UniquePerUserCourse(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	userID := uuid.New()
	courseID := uuid.New()
	cert := &Certificate{UserID: userID, CourseID: courseID, Data: datatypes.JSON(`{}`)}
	require.NoError(t, st.Certificates().Create(ctx, cert))

	dup := &Certificate{UserID: userID, CourseID: courseID, Data: datatypes.JSON(`{}`)}
	assert.Error(t, st.Certificates().Create(ctx, dup))

	got, err := st.Certificates().GetByCourse(ctx, userID, courseID)
	require.NoError(t, err)
	assert.Equal(t, cert.ID, got.ID)
}

func TestTx_RollsBackOnError(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	owner := uuid.New()
	courseID := uuid.New()
	err := st.Tx(ctx, func(tx *Store) error {
		course := &Course{ID: courseID, UserID: owner, Name: "Doomed", Duration: "1 week", Roadmap: datatypes.JSON(`{}`)}
		if err := tx.Courses().Create(ctx, course); err != nil {
			return err
		}
		return context.Canceled
	})
	require.Error(t, err)

	_, err = st.Courses().Get(ctx, owner, courseID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLLMLogRepo_AppendAndRecent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	st.LLMLogs().Append(ctx, LLMLogData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "roadmap-gen",
		InputTokens: 120, OutputTokens: 800, LatencyMs: 1400, Success: true,
	})
	st.LLMLogs().Append(ctx, LLMLogData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "suggest-next",
		Success: false, ErrorMessage: "rate limited",
	})

	rows, err := st.LLMLogs().Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byPurpose := map[string]*LLMRequestLog{}
	for _, r := range rows {
		byPurpose[r.Purpose] = r
	}
	require.Contains(t, byPurpose, "roadmap-gen")
	require.Contains(t, byPurpose, "suggest-next")
	assert.True(t, byPurpose["roadmap-gen"].Success)
	assert.Equal(t, "rate limited", byPurpose["suggest-next"].ErrorMessage)
}
