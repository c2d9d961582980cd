package discord

import (
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jakec/mute-deafen-bot/internal/app/service"
	"github.com/jakec/mute-deafen-bot/internal/domain"
	"github.com/jakec/mute-deafen-bot/internal/infra/metrics"
)

type Router struct {
	s       *discordgo.Session
	guildID string // vacío = escuchar todos los guilds

	includeBots  bool
	useNicknames bool

	tracker   *service.PresenceTracker
	gate      *service.SpamGate
	announcer *service.Announcer
	templates *service.TemplateRenderer
	rec       *metrics.Recorder
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	includeBots, useNicknames bool,
	tracker *service.PresenceTracker,
	gate *service.SpamGate,
	announcer *service.Announcer,
	templates *service.TemplateRenderer,
	rec *metrics.Recorder,
) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		includeBots:  includeBots,
		useNicknames: useNicknames,
		tracker:      tracker,
		gate:         gate,
		announcer:    announcer,
		templates:    templates,
		rec:          rec,
	}
}

func (r *Router) Handlers() {
	r.s.AddHandler(r.onVoiceStateUpdate)
	r.s.AddHandler(r.onMessageCreate)
}

// VoiceStateUpdate → classify → admit → announce. El gateway entrega estos
// eventos desde su propio pool; todo el estado por-usuario aguanta concurrencia.
func (r *Router) onVoiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic en voice state update: %v", rec)
			r.rec.IncErrors()
		}
	}()

	if vs == nil || vs.VoiceState == nil {
		return
	}
	if r.guildID != "" && vs.GuildID != r.guildID {
		return
	}

	member := vs.Member
	if member == nil {
		member, _ = s.State.Member(vs.GuildID, vs.UserID)
	}
	if member == nil || member.User == nil {
		return
	}
	// Bots fuera antes de clasificar: no tocan el cache ni los contadores.
	if member.User.Bot && !r.includeBots {
		return
	}

	muted := vs.SelfMute || vs.Mute
	deafened := vs.SelfDeaf || vs.Deaf

	action, ok := r.tracker.Observe(vs.UserID, muted, deafened)
	if !ok {
		return
	}
	if !r.gate.Admit(vs.UserID) {
		return
	}

	r.rec.IncVoiceAction(action)
	sc := domain.StateChange{
		UserID:       vs.UserID,
		DisplayName:  r.displayName(member),
		GuildID:      vs.GuildID,
		VoiceChannel: r.voiceChannelName(vs.ChannelID),
		Action:       action,
		Timestamp:    time.Now(),
		IsBot:        member.User.Bot,
	}

	log.Printf("procesando %s de %s en guild %s", action, sc.DisplayName, sc.GuildID)
	out := r.announcer.Announce(sc)
	if out.OK {
		log.Printf("✅ anuncio encolado hacia #%s", out.ChannelName)
	} else {
		// Fallo silencioso para el usuario final: sólo log/métricas.
		log.Printf("anuncio no enviado para %s: %s", sc.DisplayName, out.Reason)
	}
}

// Comandos de texto con prefijo "!" (status, stats, templates, test, ...).
// Shim finito sobre los accessors del core; comando desconocido = silencio.
func (r *Router) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if r.guildID != "" && m.GuildID != "" && m.GuildID != r.guildID {
		return
	}
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, "!") {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic en comando %q: %v", content, rec)
			r.rec.IncErrors()
			_, _ = s.ChannelMessageSend(m.ChannelID, "An error occurred processing your command.")
		}
	}()

	resp, ok := r.handleCommand(strings.ToLower(content), m)
	if !ok {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, resp); err != nil {
		log.Printf("⚠️ no pude responder comando %q: %v", content, err)
		r.rec.IncErrors()
		return
	}
	r.rec.IncCommandsProcessed()
}

func (r *Router) handleCommand(cmd string, m *discordgo.MessageCreate) (string, bool) {
	switch cmd {
	case "!ping":
		return r.pingMessage(), true
	case "!help":
		return helpMessage, true
	case "!status":
		return r.statusMessage(), true
	case "!stats":
		return r.statsMessage(), true
	case "!metrics":
		return r.metricsMessage(), true
	case "!templates":
		return r.templatesMessage(), true
	case "!voice":
		return r.voiceStatsMessage(), true
	case "!test":
		return r.testMessage(m), true
	}
	return "", false
}

func (r *Router) displayName(member *discordgo.Member) string {
	if r.useNicknames && member.Nick != "" {
		return member.Nick
	}
	return member.User.Username
}

func (r *Router) voiceChannelName(channelID string) string {
	if channelID == "" {
		return ""
	}
	ch, err := r.safeGetChannel(channelID)
	if err != nil {
		return ""
	}
	return ch.Name
}

func (r *Router) safeGetChannel(id string) (*discordgo.Channel, error) {
	if ch, err := r.s.State.Channel(id); err == nil && ch != nil {
		return ch, nil
	}
	ch, err := r.s.Channel(id)
	if err != nil {
		return nil, err
	}
	_ = r.s.State.ChannelAdd(ch)
	return ch, nil
}
