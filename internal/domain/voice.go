package domain

import "time"

// VoiceAction es el cambio discreto detectado en el estado de voz de un usuario.
type VoiceAction int

const (
	ActionMuted VoiceAction = iota
	ActionUnmuted
	ActionDeafened
	ActionUndeafened
)

// Actions devuelve las cuatro acciones en orden estable (para stats y tests).
func Actions() []VoiceAction {
	return []VoiceAction{ActionMuted, ActionUnmuted, ActionDeafened, ActionUndeafened}
}

func (a VoiceAction) String() string {
	switch a {
	case ActionMuted:
		return "muted"
	case ActionUnmuted:
		return "unmuted"
	case ActionDeafened:
		return "deafened"
	case ActionUndeafened:
		return "undeafened"
	}
	return "unknown"
}

func (a VoiceAction) Description() string {
	switch a {
	case ActionMuted:
		return "User muted their microphone"
	case ActionUnmuted:
		return "User unmuted their microphone"
	case ActionDeafened:
		return "User deafened themselves"
	case ActionUndeafened:
		return "User undeafened themselves"
	}
	return ""
}

func (a VoiceAction) Emoji() string {
	switch a {
	case ActionMuted:
		return "🔇"
	case ActionUnmuted:
		return "🎤"
	case ActionDeafened:
		return "👂❌"
	case ActionUndeafened:
		return "👂"
	}
	return ""
}

// IsMuteAction separa las dos categorías configurables (mute vs deafen).
func (a VoiceAction) IsMuteAction() bool {
	return a == ActionMuted || a == ActionUnmuted
}

func (a VoiceAction) IsDeafenAction() bool { return !a.IsMuteAction() }

// StateChange es una transición clasificada; se crea por evento y no se muta.
type StateChange struct {
	UserID       string
	DisplayName  string
	GuildID      string
	VoiceChannel string // nombre del canal de voz actual, puede quedar vacío
	Action       VoiceAction
	Timestamp    time.Time
	IsBot        bool
}

// Channel es la vista mínima de un canal de texto que necesita el resolver.
type Channel struct {
	ID   string
	Name string
}
