package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikogura/career-kit/pkg/interview"
	"github.com/nikogura/career-kit/pkg/questions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() (t time.Time) {
	t = c.t
	return t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func testRegistry(limit int) (r *registry, clock *fakeClock) {
	clock = &fakeClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	r = newRegistry()
	r.now = clock.now
	r.limit = limit
	return r, clock
}

func oneQuestion() (list []questions.Question) {
	list = []questions.Question{{Question: "Why Go?", Answer: "Simplicity."}}
	return list
}

func TestRegistryExpiresIdleSessions(t *testing.T) {
	r, clock := testRegistry(maxSessions)

	idle, err := r.start(oneQuestion())
	require.NoError(t, err)
	active, err := r.start(oneQuestion())
	require.NoError(t, err)

	clock.advance(sessionIdleTTL / 2)
	_, ok, err := r.do(uuid.MustParse(active.ID), (*interview.Session).Reveal)
	require.NoError(t, err)
	require.True(t, ok)

	clock.advance(sessionIdleTTL/2 + time.Minute)

	_, ok, _ = r.do(uuid.MustParse(idle.ID), nil)
	assert.False(t, ok, "idle session should have expired")

	st, ok, err := r.do(uuid.MustParse(active.ID), nil)
	require.NoError(t, err)
	require.True(t, ok, "recently used session should survive")
	assert.Equal(t, interview.AnswerRevealed, st.Phase)
}

func TestRegistrySweepsOnStart(t *testing.T) {
	r, clock := testRegistry(maxSessions)

	for i := 0; i < 3; i++ {
		_, err := r.start(oneQuestion())
		require.NoError(t, err)
	}
	require.Equal(t, 3, r.count())

	clock.advance(sessionIdleTTL + time.Second)
	_, err := r.start(oneQuestion())
	require.NoError(t, err)

	assert.Equal(t, 1, r.count())
}

func TestRegistryEvictsLeastRecentlyUsedAtCapacity(t *testing.T) {
	r, clock := testRegistry(2)

	first, err := r.start(oneQuestion())
	require.NoError(t, err)
	clock.advance(time.Minute)
	second, err := r.start(oneQuestion())
	require.NoError(t, err)
	clock.advance(time.Minute)

	_, ok, _ := r.do(uuid.MustParse(first.ID), nil)
	require.True(t, ok)
	clock.advance(time.Minute)

	third, err := r.start(oneQuestion())
	require.NoError(t, err)
	assert.Equal(t, 2, r.count())

	_, ok, _ = r.do(uuid.MustParse(second.ID), nil)
	assert.False(t, ok, "least recently used session should be evicted")
	_, ok, _ = r.do(uuid.MustParse(first.ID), nil)
	assert.True(t, ok)
	_, ok, _ = r.do(uuid.MustParse(third.ID), nil)
	assert.True(t, ok)
}
