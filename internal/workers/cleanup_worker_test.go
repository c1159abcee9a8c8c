package workers

import (
	"context"
	"testing"
	"time"

	"appointly/internal/models"
	"appointly/internal/repositories"
	"appointly/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupWorker_RunOnceRemovesOnlyExpired(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, testutil.UserFixture{Password: "password123"})
	now := time.Now()

	require.NoError(t, db.Create(&[]models.Session{
		{SessionToken: "old", UserID: user.ID, Expires: now.Add(-time.Hour)},
		{SessionToken: "live", UserID: user.ID, Expires: now.Add(time.Hour)},
	}).Error)
	require.NoError(t, db.Create(&[]models.VerificationToken{
		{Identifier: user.Email, Token: "old-token", Expires: now.Add(-time.Minute)},
		{Identifier: user.Email, Token: "live-token", Expires: now.Add(time.Hour)},
	}).Error)

	w := NewCleanupWorker(db, repositories.NewSessionRepository(), repositories.NewVerificationTokenRepository(), time.Minute)
	w.now = func() time.Time { return now }

	sessions, tokens := w.RunOnce(context.Background())
	assert.Equal(t, int64(1), sessions)
	assert.Equal(t, int64(1), tokens)

	var left []models.Session
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "live", left[0].SessionToken)

	var leftTokens []models.VerificationToken
	require.NoError(t, db.Find(&leftTokens).Error)
	require.Len(t, leftTokens, 1)
	assert.Equal(t, "live-token", leftTokens[0].Token)
}

func TestCleanupWorker_StopsOnCancel(t *testing.T) {
	db := testutil.NewTestDB(t)
	w := NewCleanupWorker(db, repositories.NewSessionRepository(), repositories.NewVerificationTokenRepository(), 0)
	assert.Equal(t, DefaultCleanupInterval, w.interval)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
