package service

import "github.com/jakec/mute-deafen-bot/internal/domain"

// Lo implementa internal/adapters/discord.AnnouncementSender.
// Send encola el envío (fire-and-forget): un nil significa "aceptado para
// entrega", no "entregado". El resultado real sólo actualiza métricas.
type Sender interface {
	Send(channelID, content string) error
}

// Lo implementa internal/adapters/discord.ChannelDirectory.
type Directory interface {
	// Channels lista los canales de texto del guild en orden de enumeración.
	Channels(guildID string) []domain.Channel
	// CanAnnounce: el bot tiene send+view+embed sobre el canal.
	CanAnnounce(ch domain.Channel) bool
}
