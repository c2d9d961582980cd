package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sethvargo/go-retry"

	"github.com/jakec/mute-deafen-bot/internal/infra/metrics"
)

// AnnouncementSender encola envíos hacia Discord. Send devuelve apenas el
// envío queda aceptado; el resultado real (con reintentos) llega async y
// sólo actualiza métricas, nunca bloquea al caller.
type AnnouncementSender struct {
	s   *discordgo.Session
	rec *metrics.Recorder
}

func NewAnnouncementSender(s *discordgo.Session, rec *metrics.Recorder) *AnnouncementSender {
	return &AnnouncementSender{s: s, rec: rec}
}

func (a *AnnouncementSender) Send(channelID, content string) error {
	go a.deliver(channelID, content)
	return nil
}

// deliver: 3 intentos con 1s entre medio, sólo en este borde que habla con
// la API de Discord. La lógica de decisión del core no reintenta nada.
func (a *AnnouncementSender) deliver(channelID, content string) {
	backoff := retry.WithMaxRetries(2, retry.NewConstant(time.Second))
	err := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		if _, err := a.s.ChannelMessageSend(channelID, content); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		log.Printf("⚠️ envío a canal %s falló: %v", channelID, err)
		a.rec.IncFailedAnnouncements()
		return
	}
	a.rec.IncSuccessfulAnnouncements()
}
