package service

import (
	"fmt"
	"log"

	"github.com/jakec/mute-deafen-bot/internal/domain"
	"github.com/jakec/mute-deafen-bot/internal/infra/config"
	"github.com/jakec/mute-deafen-bot/internal/infra/metrics"
)

// Announcer orquesta render → resolve → send. No guarda estado propio:
// todo fallo esperado termina en un Outcome, nunca en un error que cruce
// el borde del pipeline.
type Announcer struct {
	cfg         config.Announcements
	channelName string

	templates *TemplateRenderer
	directory Directory
	sender    Sender
	rec       *metrics.Recorder
}

func NewAnnouncer(cfg config.Announcements, channelName string, templates *TemplateRenderer, directory Directory, sender Sender, rec *metrics.Recorder) *Announcer {
	return &Announcer{
		cfg:         cfg,
		channelName: channelName,
		templates:   templates,
		directory:   directory,
		sender:      sender,
		rec:         rec,
	}
}

func (a *Announcer) Announce(sc domain.StateChange) domain.Outcome {
	if !a.actionEnabled(sc.Action) {
		return domain.Failure(domain.ReasonActionDisabled)
	}
	if sc.IsBot && !a.cfg.IncludeBots {
		return domain.Failure(domain.ReasonActorExcluded)
	}

	msg, ok := a.templates.Render(sc)
	if !ok {
		a.rec.IncFailedAnnouncements()
		return domain.Failure(domain.ReasonNoTemplateAvailable)
	}

	ch, ok := ResolveAnnouncementChannel(a.directory.Channels(sc.GuildID), a.directory.CanAnnounce, a.channelName)
	if !ok {
		log.Printf("⚠️ sin canales disponibles en guild %s", sc.GuildID)
		a.rec.IncFailedAnnouncements()
		return domain.Failure(domain.ReasonNoChannelAvailable)
	}

	return a.send(ch, msg)
}

// SendTest hace el mismo resolve+send con un mensaje sintetizado, para que
// un operador verifique el camino de salida.
func (a *Announcer) SendTest(guildID, testMessage string) domain.Outcome {
	ch, ok := ResolveAnnouncementChannel(a.directory.Channels(guildID), a.directory.CanAnnounce, a.channelName)
	if !ok {
		log.Printf("⚠️ sin canal para test en guild %s", guildID)
		return domain.Failure(domain.ReasonNoChannelAvailable)
	}
	return a.send(ch, "**Test Announcement:** "+testMessage)
}

// send trata el encolado exitoso como Success inmediato; el ack real de la
// red llega async y sólo toca métricas. Cualquier panic del colaborador se
// convierte en Failure, jamás se propaga al procesamiento de otros usuarios.
func (a *Announcer) send(ch domain.Channel, msg string) (out domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic enviando a #%s: %v", ch.Name, r)
			a.rec.IncErrors()
			a.rec.IncFailedAnnouncements()
			out = domain.Failure(fmt.Sprintf("send error: %v", r))
		}
	}()

	if err := a.sender.Send(ch.ID, msg); err != nil {
		log.Printf("⚠️ no pude encolar hacia #%s: %v", ch.Name, err)
		a.rec.IncFailedAnnouncements()
		return domain.Failure("send error: " + err.Error())
	}
	return domain.Success(msg, ch.Name)
}

func (a *Announcer) actionEnabled(action domain.VoiceAction) bool {
	if action.IsMuteAction() {
		return a.cfg.Mute
	}
	return a.cfg.Deafen
}
