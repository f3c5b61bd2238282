package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/evjourney-backend-go/internal/ingest"
	"github.com/jengzang/evjourney-backend-go/internal/models"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStore_CreateGetExpire(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewStore(time.Hour)
	store.now = clock.now

	trips := []models.Trip{{ID: 1}}
	sess := store.Create("log.csv", trips, ingest.Report{Rows: 2, Kept: 1, Dropped: 1})
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, clock.t.Add(time.Hour), sess.ExpiresAt)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "log.csv", got.Filename)
	assert.Equal(t, 1, got.Report.Dropped)

	clock.advance(time.Hour)
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, store.Len())

	_, err = store.Get("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Sweep(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewStore(time.Minute)
	store.now = clock.now

	store.Create("a.csv", nil, ingest.Report{})
	clock.advance(30 * time.Second)
	live := store.Create("b.csv", nil, ingest.Report{})
	clock.advance(45 * time.Second)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())
	_, err := store.Get(live.ID)
	assert.NoError(t, err)
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	store := NewStore(time.Nanosecond)
	store.Create("a.csv", nil, ingest.Report{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Issue("abc-123")
	require.NoError(t, err)

	sid, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", sid)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := NewTokenIssuer("secret", time.Hour)
	issuer.now = clock.now

	token, err := issuer.Issue("abc")
	require.NoError(t, err)

	other := NewTokenIssuer("other-secret", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sid": "abc"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	clock.advance(2 * time.Hour)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
