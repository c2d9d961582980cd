package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jakec/mute-deafen-bot/internal/domain"
)

// Permisos que necesita el bot sobre el canal destino.
const announcePerms = discordgo.PermissionSendMessages |
	discordgo.PermissionViewChannel |
	discordgo.PermissionEmbedLinks

// ChannelDirectory lista canales y chequea permisos contra el estado de la
// sesión. El orden del listado es el de enumeración del guild: el resolver
// depende de que sea estable.
type ChannelDirectory struct {
	s *discordgo.Session
}

func NewChannelDirectory(s *discordgo.Session) *ChannelDirectory {
	return &ChannelDirectory{s: s}
}

func (d *ChannelDirectory) Channels(guildID string) []domain.Channel {
	chans := d.guildChannels(guildID)
	out := make([]domain.Channel, 0, len(chans))
	for _, ch := range chans {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		out = append(out, domain.Channel{ID: ch.ID, Name: ch.Name})
	}
	return out
}

func (d *ChannelDirectory) CanAnnounce(ch domain.Channel) bool {
	if d.s.State == nil || d.s.State.User == nil {
		return false
	}
	perms, err := d.s.State.UserChannelPermissions(d.s.State.User.ID, ch.ID)
	if err != nil {
		return false
	}
	return perms&announcePerms == announcePerms
}

func (d *ChannelDirectory) guildChannels(guildID string) []*discordgo.Channel {
	if g, err := d.s.State.Guild(guildID); err == nil && g != nil {
		return g.Channels
	}
	chans, err := d.s.GuildChannels(guildID)
	if err != nil {
		return nil
	}
	return chans
}
