package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/moodflix/internal/domain"
	"github.com/alexanderramin/moodflix/internal/repository"
	"github.com/alexanderramin/moodflix/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_RecordAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewHistoryService(database, 0, nil)
	ctx := context.Background()

	require.NoError(t, svc.RecordTurn(ctx, *testutil.NewTestTurn("u1", "hola")))
	require.NoError(t, svc.RecordTurn(ctx, *testutil.NewTestTurn("u1", "quiero una serie")))

	turns, err := svc.ListByUser(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "quiero una serie", turns[0].UserMessage)
}

func TestHistoryService_TrimsToMaxTurns(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewHistoryService(database, 3, nil)
	ctx := context.Background()

	for _, msg := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, svc.RecordTurn(ctx, *testutil.NewTestTurn("u1", msg)))
	}

	turns, err := svc.ListByUser(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "5", turns[0].UserMessage)
	assert.Equal(t, "3", turns[2].UserMessage)
}

func TestHistoryService_TrimFailureRollsBackInsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Match: "DELETE", Err: errors.New("disk full")}
	repo := repository.NewSQLiteHistoryRepo(database)
	svc := NewHistoryServiceWithUoW(uow, repo, 10, nil)
	ctx := context.Background()

	err := svc.RecordTurn(ctx, *testutil.NewTestTurn("u1", "perdido"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	n, err := repo.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHistoryService_EmptyUserID(t *testing.T) {
	svc := NewHistoryService(testutil.NewTestDB(t), 0, nil)

	_, err := svc.ListByUser(context.Background(), "", 5)
	assert.ErrorIs(t, err, ErrEmptyUserID)
}

func TestChatService_RecordsTurnsThroughHistoryService(t *testing.T) {
	database := testutil.NewTestDB(t)
	history := NewHistoryService(database, 0, nil)
	h := newHarness(t, &scriptedExtractor{}, WithTurnRecorder(history))

	h.send(t, "hola")

	turns, err := history.ListByUser(context.Background(), "user-1", 0)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "hola", turns[0].UserMessage)
	assert.Equal(t, string(ReplyWelcome), turns[0].ReplyKind)
	assert.Equal(t, domain.IntentNone, turns[0].Intent)
}
