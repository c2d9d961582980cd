package service

import (
	"log"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/jakec/mute-deafen-bot/internal/infra/config"
	"github.com/jakec/mute-deafen-bot/internal/infra/metrics"
)

// SpamGate admite o rechaza una transición ya clasificada. Dos puertas
// independientes, ambas deben pasar:
//   - cooldown por usuario (check y update en la misma operación por-clave)
//   - tope por ventana fija de un minuto (todas las ventanas se resetean juntas;
//     una ráfaga pegada al borde puede llegar a ~2× el tope, aproximación aceptada)
type SpamGate struct {
	enabled      bool
	cooldown     time.Duration
	maxPerMinute int

	cooldowns *xsync.MapOf[string, time.Time]
	counters  *xsync.MapOf[string, int]
	rec       *metrics.Recorder

	now func() time.Time // inyectable para tests
}

func NewSpamGate(cfg config.SpamPrevention, rec *metrics.Recorder) *SpamGate {
	return &SpamGate{
		enabled:      cfg.EnableRateLimit,
		cooldown:     cfg.Cooldown,
		maxPerMinute: cfg.MaxPerMinute,
		cooldowns:    xsync.NewMapOf[string, time.Time](),
		counters:     xsync.NewMapOf[string, int](),
		rec:          rec,
		now:          time.Now,
	}
}

// Admit devuelve true si la transición puede seguir al render/dispatch.
// Con el rate limit apagado siempre admite y no muta nada.
func (g *SpamGate) Admit(userID string) bool {
	if !g.enabled {
		return true
	}
	now := g.now()

	cooled := false
	g.cooldowns.Compute(userID, func(last time.Time, loaded bool) (time.Time, bool) {
		if loaded && now.Sub(last) < g.cooldown {
			return last, false
		}
		cooled = true
		return now, false
	})
	if !cooled {
		g.rec.IncCooldownBlocks()
		return false
	}

	admitted := false
	g.counters.Compute(userID, func(n int, _ bool) (int, bool) {
		if n >= g.maxPerMinute {
			return n, false
		}
		admitted = true
		return n + 1, false
	})
	if !admitted {
		g.rec.IncRateLimits()
		return false
	}
	return true
}

// ResetWindow vacía los contadores de TODOS los usuarios a la vez.
// Lo dispara un ticker de 60s desde main, desacoplado del camino de eventos.
func (g *SpamGate) ResetWindow() {
	cleared := g.counters.Size()
	g.counters.Clear()
	if cleared > 0 {
		log.Printf("rate window reset: %d usuarios", cleared)
	}
}

// EvictStale elimina cooldowns con edad > 2× la duración configurada para
// acotar memoria. Re-chequea dentro del Compute: un Admit concurrente que
// acaba de refrescar la entrada no se pierde.
func (g *SpamGate) EvictStale() {
	cutoff := g.now().Add(-2 * g.cooldown)

	var stale []string
	g.cooldowns.Range(func(userID string, last time.Time) bool {
		if last.Before(cutoff) {
			stale = append(stale, userID)
		}
		return true
	})
	for _, userID := range stale {
		g.cooldowns.Compute(userID, func(last time.Time, loaded bool) (time.Time, bool) {
			return last, loaded && last.Before(cutoff)
		})
	}
	if len(stale) > 0 {
		log.Printf("cooldown cleanup: %d entradas viejas", len(stale))
	}
}

// Stats para el comando de reporte.
func (g *SpamGate) Stats() (activeCooldowns, activeCounters int) {
	return g.cooldowns.Size(), g.counters.Size()
}
