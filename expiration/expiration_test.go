package expiration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/krisalay/tablesort/expiration"
	"github.com/krisalay/tablesort/types"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestAbsolute(t *testing.T) {
	t.Run("Should expire exactly at the deadline", func(t *testing.T) {
		var s expiration.Absolute
		env := &types.Envelope{}
		s.OnWrite(env, now, time.Minute)

		assert.False(t, s.IsExpired(env, now.Add(59*time.Second)))
		assert.True(t, s.IsExpired(env, now.Add(time.Minute)))
	})

	t.Run("Should not extend on access", func(t *testing.T) {
		var s expiration.Absolute
		env := &types.Envelope{}
		s.OnWrite(env, now, time.Minute)
		assert.False(t, s.OnAccess(env, now.Add(30*time.Second)))
		assert.Equal(t, now.Add(time.Minute), env.Expires)
	})

	t.Run("Should produce an expired entry for a negative ttl", func(t *testing.T) {
		var s expiration.Absolute
		env := &types.Envelope{}
		s.OnWrite(env, now, -time.Minute)
		assert.True(t, s.IsExpired(env, now))
	})
}

func TestSliding(t *testing.T) {
	t.Run("Should push expiry forward on access", func(t *testing.T) {
		s := &expiration.Sliding{TTL: time.Minute}
		env := &types.Envelope{}
		s.OnWrite(env, now, time.Minute)
		assert.Equal(t, now.Add(time.Minute), env.Expires)

		later := now.Add(50 * time.Second)
		assert.True(t, s.OnAccess(env, later))
		assert.Equal(t, later.Add(time.Minute), env.Expires)
		assert.False(t, s.IsExpired(env, now.Add(90*time.Second)))
	})

	t.Run("Should keep an explicit ttl from the caller", func(t *testing.T) {
		s := &expiration.Sliding{TTL: time.Minute}
		env := &types.Envelope{}
		s.OnWrite(env, now, 10*time.Minute)
		assert.Equal(t, now.Add(10*time.Minute), env.Expires)
	})

	t.Run("Should not shorten a longer ttl on access", func(t *testing.T) {
		s := &expiration.Sliding{TTL: time.Minute}
		env := &types.Envelope{}
		s.OnWrite(env, now, time.Hour)

		later := now.Add(2 * time.Minute)
		assert.False(t, s.OnAccess(env, later))
		assert.Equal(t, now.Add(time.Hour), env.Expires)
		assert.False(t, s.IsExpired(env, later))
	})

	t.Run("Should take over once the written ttl is closer than TTL", func(t *testing.T) {
		s := &expiration.Sliding{TTL: time.Minute}
		env := &types.Envelope{}
		s.OnWrite(env, now, 90*time.Second)

		later := now.Add(45 * time.Second)
		assert.True(t, s.OnAccess(env, later))
		assert.Equal(t, later.Add(time.Minute), env.Expires)
	})

	t.Run("Should store an expired entry for a zero ttl", func(t *testing.T) {
		s := &expiration.Sliding{TTL: time.Minute}
		env := &types.Envelope{}
		s.OnWrite(env, now, 0)
		assert.True(t, s.IsExpired(env, now))
	})
}
