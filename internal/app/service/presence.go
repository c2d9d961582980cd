package service

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/jakec/mute-deafen-bot/internal/domain"
)

type voiceFlags struct {
	Muted    bool
	Deafened bool
}

// PresenceTracker cachea el último estado mute/deafen conocido por usuario y
// clasifica cada update entrante en cero-o-una acción. El cache refleja el
// estado real, no el último anunciado: se pisa siempre, se clasifique o no.
type PresenceTracker struct {
	cache *xsync.MapOf[string, voiceFlags]
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{cache: xsync.NewMapOf[string, voiceFlags]()}
}

// Observe clasifica contra el estado cacheado y actualiza el cache en una
// sola operación por-clave (updates concurrentes del mismo usuario no se pisan).
func (t *PresenceTracker) Observe(userID string, muted, deafened bool) (domain.VoiceAction, bool) {
	var (
		action domain.VoiceAction
		ok     bool
	)
	next := voiceFlags{Muted: muted, Deafened: deafened}
	t.cache.Compute(userID, func(prev voiceFlags, _ bool) (voiceFlags, bool) {
		action, ok = classify(prev, next)
		return next, false
	})
	return action, ok
}

// classify aplica el orden de prioridad fijo: los flancos de mute ganan sobre
// los de deafen cuando ambos flags cambian en el mismo update.
func classify(prev, next voiceFlags) (domain.VoiceAction, bool) {
	switch {
	case !prev.Muted && next.Muted:
		return domain.ActionMuted, true
	case prev.Muted && !next.Muted:
		return domain.ActionUnmuted, true
	case !prev.Deafened && next.Deafened:
		return domain.ActionDeafened, true
	case prev.Deafened && !next.Deafened:
		return domain.ActionUndeafened, true
	}
	return 0, false
}

// TrackedUsers: cantidad de usuarios vistos desde el arranque.
func (t *PresenceTracker) TrackedUsers() int { return t.cache.Size() }
