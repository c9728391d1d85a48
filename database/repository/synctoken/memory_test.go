package synctokenRepo

import (
	"context"
	"sync"
	"testing"

	"huddle/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumeIsOneShot(t *testing.T) {
	repo := NewMemorySyncTokenRepo()
	ctx := context.Background()

	data := models.SyncTokenData{
		Token:     "tok-abc",
		MemberID:  "m1",
		TeamID:    "t1",
		DateStart: "2026-03-02",
		DateEnd:   "2026-03-06",
	}
	require.NoError(t, repo.Issue(ctx, data))

	first, err := repo.Consume(ctx, "tok-abc")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "m1", first.MemberID)
	assert.Equal(t, "2026-03-02", first.DateStart)

	second, err := repo.Consume(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Nil(t, second, "a token must never be consumable twice")
}

func TestConsumeUnknownToken(t *testing.T) {
	repo := NewMemorySyncTokenRepo()

	data, err := repo.Consume(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestConcurrentConsumeYieldsOneWinner(t *testing.T) {
	repo := NewMemorySyncTokenRepo()
	ctx := context.Background()
	require.NoError(t, repo.Issue(ctx, models.SyncTokenData{Token: "tok-race", MemberID: "m1"}))

	const callers = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := repo.Consume(ctx, "tok-race")
			if err == nil && data != nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	count := 0
	for range wins {
		count++
	}
	assert.Equal(t, 1, count)
}
