package metrics

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jakec/mute-deafen-bot/internal/domain"
)

var voiceActionsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bot_voice_actions_total",
	Help: "Voice state changes by action",
}, []string{"action"})

var announcementsSuccessCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bot_announcements_success_total",
	Help: "Number of successful announcements",
})

var announcementsFailedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bot_announcements_failed_total",
	Help: "Number of failed announcements",
})

var cooldownBlocksCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bot_cooldown_blocks_total",
	Help: "Number of announcements blocked by cooldown",
})

var rateLimitsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bot_rate_limits_total",
	Help: "Number of rate limit hits",
})

var errorsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bot_errors_total",
	Help: "Number of bot errors",
})

var commandsProcessedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bot_commands_processed_total",
	Help: "Number of commands processed",
})

// Recorder acumula contadores monotónicos del bot. Los incrementos son
// atómicos; el RWMutex sólo serializa Reset contra Snapshot para que un
// lector nunca vea un estado a medio resetear.
type Recorder struct {
	mu sync.RWMutex

	actions   [4]atomic.Int64 // indexado por domain.VoiceAction
	successes atomic.Int64
	failures  atomic.Int64
	cooldowns atomic.Int64
	ratelims  atomic.Int64
	errors    atomic.Int64
	commands  atomic.Int64
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) IncVoiceAction(a domain.VoiceAction) {
	r.mu.RLock()
	r.actions[a].Add(1)
	r.mu.RUnlock()
	voiceActionsCounter.WithLabelValues(a.String()).Inc()
}

func (r *Recorder) IncSuccessfulAnnouncements() {
	r.mu.RLock()
	r.successes.Add(1)
	r.mu.RUnlock()
	announcementsSuccessCounter.Inc()
}

func (r *Recorder) IncFailedAnnouncements() {
	r.mu.RLock()
	r.failures.Add(1)
	r.mu.RUnlock()
	announcementsFailedCounter.Inc()
}

func (r *Recorder) IncCooldownBlocks() {
	r.mu.RLock()
	r.cooldowns.Add(1)
	r.mu.RUnlock()
	cooldownBlocksCounter.Inc()
}

func (r *Recorder) IncRateLimits() {
	r.mu.RLock()
	r.ratelims.Add(1)
	r.mu.RUnlock()
	rateLimitsCounter.Inc()
}

func (r *Recorder) IncErrors() {
	r.mu.RLock()
	r.errors.Add(1)
	r.mu.RUnlock()
	errorsCounter.Inc()
}

func (r *Recorder) IncCommandsProcessed() {
	r.mu.RLock()
	r.commands.Add(1)
	r.mu.RUnlock()
	commandsProcessedCounter.Inc()
}

func (r *Recorder) VoiceActionCount(a domain.VoiceAction) int64 { return r.actions[a].Load() }

func (r *Recorder) TotalVoiceActions() int64 {
	var total int64
	for i := range r.actions {
		total += r.actions[i].Load()
	}
	return total
}

func (r *Recorder) SuccessfulAnnouncements() int64 { return r.successes.Load() }
func (r *Recorder) FailedAnnouncements() int64     { return r.failures.Load() }
func (r *Recorder) CooldownBlocks() int64          { return r.cooldowns.Load() }
func (r *Recorder) RateLimits() int64              { return r.ratelims.Load() }
func (r *Recorder) Errors() int64                  { return r.errors.Load() }
func (r *Recorder) CommandsProcessed() int64       { return r.commands.Load() }

// SuccessRate en porcentaje, redondeo half-up a 2 decimales. 0 si no hubo intentos.
func (r *Recorder) SuccessRate() float64 {
	succ := r.successes.Load()
	total := succ + r.failures.Load()
	if total == 0 {
		return 0
	}
	return math.Round(float64(succ)/float64(total)*100*100) / 100
}

// Snapshot es la vista de sólo lectura de todos los contadores.
type Snapshot struct {
	TotalVoiceChanges int64
	ActionCounts      map[string]int64
	Successes         int64
	Failures          int64
	SuccessRate       float64
	CooldownBlocks    int64
	RateLimits        int64
	Errors            int64
	Commands          int64
}

func (r *Recorder) GetSnapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int64, len(r.actions))
	for _, a := range domain.Actions() {
		counts[a.String()] = r.actions[a].Load()
	}
	return Snapshot{
		TotalVoiceChanges: r.TotalVoiceActions(),
		ActionCounts:      counts,
		Successes:         r.successes.Load(),
		Failures:          r.failures.Load(),
		SuccessRate:       r.SuccessRate(),
		CooldownBlocks:    r.cooldowns.Load(),
		RateLimits:        r.ratelims.Load(),
		Errors:            r.errors.Load(),
		Commands:          r.commands.Load(),
	}
}

// Reset vuelve todos los contadores a cero. No toca los counters de
// Prometheus (son monotónicos por contrato).
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.actions {
		r.actions[i].Store(0)
	}
	r.successes.Store(0)
	r.failures.Store(0)
	r.cooldowns.Store(0)
	r.ratelims.Store(0)
	r.errors.Store(0)
	r.commands.Store(0)
}
