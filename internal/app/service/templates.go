package service

import (
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/jakec/mute-deafen-bot/internal/domain"
	"github.com/jakec/mute-deafen-bot/internal/infra/config"
)

// Nombre que ve el usuario cuando no hay canal de voz conocido.
const channelFallback = "voice-channel"

// TemplateRenderer elige un template (override del usuario > pool default de
// la acción) y sustituye los placeholders reconocidos. La sustitución es
// literal y case-sensitive; lo que no se reconoce queda tal cual.
type TemplateRenderer struct {
	defaults  map[domain.VoiceAction][]string
	overrides map[string][]string

	intn func(n int) int  // inyectable para tests deterministas
	now  func() time.Time // idem, para {time}
}

func NewTemplateRenderer(msgs config.Messages) *TemplateRenderer {
	r := &TemplateRenderer{
		defaults: map[domain.VoiceAction][]string{
			domain.ActionMuted:      msgs.MuteTemplates,
			domain.ActionUnmuted:    msgs.UnmuteTemplates,
			domain.ActionDeafened:   msgs.DeafenTemplates,
			domain.ActionUndeafened: msgs.UndeafenTemplates,
		},
		overrides: msgs.CustomUserMessages,
		intn:      rand.Intn,
		now:       time.Now,
	}
	log.Printf("templates cargados: %d defaults, %d usuarios con override",
		r.TotalDefaults(), len(r.overrides))
	return r
}

// Render devuelve el mensaje listo para enviar, o false si no hay template
// disponible (pool vacío = defecto de configuración, no un crash).
func (r *TemplateRenderer) Render(sc domain.StateChange) (string, bool) {
	pool := r.overrides[sc.UserID]
	if len(pool) == 0 {
		pool = r.defaults[sc.Action]
	}
	if len(pool) == 0 {
		log.Printf("⚠️ sin templates para acción %s", sc.Action)
		return "", false
	}
	return r.format(pool[r.intn(len(pool))], sc), true
}

func (r *TemplateRenderer) format(tpl string, sc domain.StateChange) string {
	channel := sc.VoiceChannel
	if channel == "" {
		channel = channelFallback
	}
	return strings.NewReplacer(
		"{user}", sc.DisplayName,
		"{action}", sc.Action.String(),
		"{emoji}", sc.Action.Emoji(),
		"{time}", r.now().Format("15:04:05"),
		"{channel}", channel,
		"{guild}", sc.GuildID,
	).Replace(tpl)
}

func (r *TemplateRenderer) TemplatesFor(a domain.VoiceAction) []string {
	return r.defaults[a]
}

func (r *TemplateRenderer) TotalDefaults() int {
	total := 0
	for _, pool := range r.defaults {
		total += len(pool)
	}
	return total
}

func (r *TemplateRenderer) CustomUserCount() int { return len(r.overrides) }
