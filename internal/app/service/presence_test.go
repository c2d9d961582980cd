package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakec/mute-deafen-bot/internal/domain"
)

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name       string
		prev, next voiceFlags
		want       domain.VoiceAction
		wantAction bool
	}{
		{
			name:       "mute edge",
			prev:       voiceFlags{},
			next:       voiceFlags{Muted: true},
			want:       domain.ActionMuted,
			wantAction: true,
		},
		{
			name:       "unmute edge",
			prev:       voiceFlags{Muted: true},
			next:       voiceFlags{},
			want:       domain.ActionUnmuted,
			wantAction: true,
		},
		{
			name:       "deafen edge",
			prev:       voiceFlags{},
			next:       voiceFlags{Deafened: true},
			want:       domain.ActionDeafened,
			wantAction: true,
		},
		{
			name:       "undeafen edge",
			prev:       voiceFlags{Deafened: true},
			next:       voiceFlags{},
			want:       domain.ActionUndeafened,
			wantAction: true,
		},
		{
			name:       "both flags flip on - mute wins",
			prev:       voiceFlags{},
			next:       voiceFlags{Muted: true, Deafened: true},
			want:       domain.ActionMuted,
			wantAction: true,
		},
		{
			name:       "both flags flip off - unmute wins",
			prev:       voiceFlags{Muted: true, Deafened: true},
			next:       voiceFlags{},
			want:       domain.ActionUnmuted,
			wantAction: true,
		},
		{
			name:       "no change",
			prev:       voiceFlags{Muted: true},
			next:       voiceFlags{Muted: true},
			wantAction: false,
		},
		{
			name:       "no change both set",
			prev:       voiceFlags{Muted: true, Deafened: true},
			next:       voiceFlags{Muted: true, Deafened: true},
			wantAction: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classify(tt.prev, tt.next)
			assert.Equal(t, tt.wantAction, ok)
			if tt.wantAction {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestObserveIdempotence(t *testing.T) {
	tr := NewPresenceTracker()

	action, ok := tr.Observe("u1", true, false)
	require.True(t, ok)
	assert.Equal(t, domain.ActionMuted, action)

	// Mismo estado otra vez: ninguna segunda acción.
	_, ok = tr.Observe("u1", true, false)
	assert.False(t, ok)
}

func TestObserveCacheReflectsGroundTruth(t *testing.T) {
	tr := NewPresenceTracker()

	// Update sin acción (ya estaba "unmuted") igual pisa el cache.
	_, ok := tr.Observe("u1", false, false)
	require.False(t, ok)

	// Deafen sin pasar por mute: clasifica contra el cache actualizado.
	action, ok := tr.Observe("u1", false, true)
	require.True(t, ok)
	assert.Equal(t, domain.ActionDeafened, action)
}

func TestObserveEmitsOneActionPerEdge(t *testing.T) {
	tr := NewPresenceTracker()

	// 4 flancos booleanos en la secuencia → exactamente 4 acciones.
	seq := []struct{ muted, deafened bool }{
		{true, false},  // mute edge
		{true, false},  // repetido, sin flanco
		{false, false}, // unmute edge
		{false, true},  // deafen edge
		{false, true},  // repetido
		{false, false}, // undeafen edge
	}
	var emitted []domain.VoiceAction
	for _, s := range seq {
		if a, ok := tr.Observe("u1", s.muted, s.deafened); ok {
			emitted = append(emitted, a)
		}
	}
	assert.Equal(t, []domain.VoiceAction{
		domain.ActionMuted,
		domain.ActionUnmuted,
		domain.ActionDeafened,
		domain.ActionUndeafened,
	}, emitted)
}

func TestObserveConcurrentDistinctUsers(t *testing.T) {
	tr := NewPresenceTracker()

	const users = 64
	const togglesPerUser = 50

	var wg sync.WaitGroup
	counts := make([]int, users)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			for j := 0; j < togglesPerUser; j++ {
				if _, ok := tr.Observe(userID, j%2 == 0, false); ok {
					counts[i]++
				}
			}
		}(i)
	}
	wg.Wait()

	// Cada toggle es un flanco: ni acciones perdidas ni duplicadas.
	for i, c := range counts {
		assert.Equal(t, togglesPerUser, c, "user %d", i)
	}
	assert.Equal(t, users, tr.TrackedUsers())
}
