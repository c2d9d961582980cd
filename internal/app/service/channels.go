package service

import (
	"strings"

	"github.com/jakec/mute-deafen-bot/internal/domain"
)

// Fallback de nombres típicos cuando el canal configurado no existe o no
// tiene permisos. Se chequea en orden de enumeración de canales, no en el
// orden de esta lista.
var commonChannelNames = map[string]struct{}{
	"general":       {},
	"chat":          {},
	"main":          {},
	"lobby":         {},
	"announcements": {},
}

// ResolveAnnouncementChannel resuelve el destino del anuncio de forma
// determinista dado el mismo listado y los mismos permisos:
//  1. primer canal permitido cuyo nombre iguale (case-insensitive) al configurado
//  2. primer canal permitido con nombre común (general, chat, ...)
//  3. primer canal permitido
//  4. nada → el caller registra el fallo, jamás panic
func ResolveAnnouncementChannel(channels []domain.Channel, permitted func(domain.Channel) bool, configuredName string) (domain.Channel, bool) {
	want := strings.ToLower(configuredName)

	for _, ch := range channels {
		if strings.ToLower(ch.Name) == want && permitted(ch) {
			return ch, true
		}
	}
	for _, ch := range channels {
		if _, common := commonChannelNames[strings.ToLower(ch.Name)]; common && permitted(ch) {
			return ch, true
		}
	}
	for _, ch := range channels {
		if permitted(ch) {
			return ch, true
		}
	}
	return domain.Channel{}, false
}
