package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakec/mute-deafen-bot/internal/domain"
)

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name                string
		successes, failures int
		want                float64
	}{
		{name: "3 de 4", successes: 3, failures: 1, want: 75.00},
		{name: "sin intentos", successes: 0, failures: 0, want: 0},
		{name: "todo exito", successes: 5, failures: 0, want: 100.00},
		{name: "todo fallo", successes: 0, failures: 3, want: 0},
		{name: "redondeo a 2 decimales", successes: 2, failures: 1, want: 66.67},
		{name: "redondeo hacia abajo", successes: 1, failures: 2, want: 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder()
			for i := 0; i < tt.successes; i++ {
				r.IncSuccessfulAnnouncements()
			}
			for i := 0; i < tt.failures; i++ {
				r.IncFailedAnnouncements()
			}
			assert.InDelta(t, tt.want, r.SuccessRate(), 0.0001)
		})
	}
}

func TestSnapshot(t *testing.T) {
	r := NewRecorder()
	r.IncVoiceAction(domain.ActionMuted)
	r.IncVoiceAction(domain.ActionMuted)
	r.IncVoiceAction(domain.ActionDeafened)
	r.IncSuccessfulAnnouncements()
	r.IncFailedAnnouncements()
	r.IncCooldownBlocks()
	r.IncRateLimits()
	r.IncErrors()
	r.IncCommandsProcessed()

	snap := r.GetSnapshot()
	assert.Equal(t, int64(3), snap.TotalVoiceChanges)
	assert.Equal(t, int64(2), snap.ActionCounts["muted"])
	assert.Equal(t, int64(1), snap.ActionCounts["deafened"])
	assert.Zero(t, snap.ActionCounts["unmuted"])
	assert.Equal(t, int64(1), snap.Successes)
	assert.Equal(t, int64(1), snap.Failures)
	assert.InDelta(t, 50.0, snap.SuccessRate, 0.0001)
	assert.Equal(t, int64(1), snap.CooldownBlocks)
	assert.Equal(t, int64(1), snap.RateLimits)
	assert.Equal(t, int64(1), snap.Errors)
	assert.Equal(t, int64(1), snap.Commands)
}

func TestReset(t *testing.T) {
	r := NewRecorder()
	for _, a := range domain.Actions() {
		r.IncVoiceAction(a)
	}
	r.IncSuccessfulAnnouncements()
	r.IncFailedAnnouncements()
	r.IncCooldownBlocks()
	r.IncRateLimits()
	r.IncErrors()
	r.IncCommandsProcessed()

	r.Reset()

	snap := r.GetSnapshot()
	assert.Zero(t, snap.TotalVoiceChanges)
	assert.Zero(t, snap.Successes)
	assert.Zero(t, snap.Failures)
	assert.Zero(t, snap.SuccessRate)
	assert.Zero(t, snap.CooldownBlocks)
	assert.Zero(t, snap.RateLimits)
	assert.Zero(t, snap.Errors)
	assert.Zero(t, snap.Commands)
}

func TestConcurrentIncrements(t *testing.T) {
	r := NewRecorder()

	const workers = 32
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				r.IncVoiceAction(domain.ActionMuted)
				r.IncSuccessfulAnnouncements()
				r.IncCooldownBlocks()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*perWorker), r.VoiceActionCount(domain.ActionMuted))
	assert.Equal(t, int64(workers*perWorker), r.SuccessfulAnnouncements())
	assert.Equal(t, int64(workers*perWorker), r.CooldownBlocks())
}
