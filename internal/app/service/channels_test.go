package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakec/mute-deafen-bot/internal/domain"
)

func chans(names ...string) []domain.Channel {
	out := make([]domain.Channel, len(names))
	for i, n := range names {
		out[i] = domain.Channel{ID: "id-" + n, Name: n}
	}
	return out
}

func allow(names ...string) func(domain.Channel) bool {
	set := map[string]struct{}{}
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(ch domain.Channel) bool {
		_, ok := set[ch.Name]
		return ok
	}
}

func TestResolveConfiguredName(t *testing.T) {
	ch, ok := ResolveAnnouncementChannel(
		chans("random", "general", "dev"),
		allow("random", "general", "dev"),
		"general",
	)
	require.True(t, ok)
	assert.Equal(t, "general", ch.Name)
}

func TestResolveConfiguredNameCaseInsensitive(t *testing.T) {
	ch, ok := ResolveAnnouncementChannel(
		chans("random", "General"),
		allow("random", "General"),
		"GENERAL",
	)
	require.True(t, ok)
	assert.Equal(t, "General", ch.Name)
}

func TestResolveSkipsUnpermittedConfigured(t *testing.T) {
	// "general" existe pero sin permisos → cae al primer común permitido.
	ch, ok := ResolveAnnouncementChannel(
		chans("random", "general", "chat"),
		allow("random", "chat"),
		"general",
	)
	require.True(t, ok)
	assert.Equal(t, "chat", ch.Name)
}

func TestResolveCommonNameFallbackInEnumerationOrder(t *testing.T) {
	// Sin "general": el fallback recorre en orden de enumeración de canales,
	// no en el orden del allowlist ("lobby" va antes que "announcements").
	ch, ok := ResolveAnnouncementChannel(
		chans("random", "lobby", "announcements"),
		allow("random", "lobby", "announcements"),
		"general",
	)
	require.True(t, ok)
	assert.Equal(t, "lobby", ch.Name)
}

func TestResolveFirstPermittedFallback(t *testing.T) {
	// Ningún común: primer canal permitido en orden de la lista.
	ch, ok := ResolveAnnouncementChannel(
		chans("random", "dev"),
		allow("dev"),
		"general",
	)
	require.True(t, ok)
	assert.Equal(t, "dev", ch.Name)
}

func TestResolveNothingAvailable(t *testing.T) {
	_, ok := ResolveAnnouncementChannel(
		chans("random", "dev"),
		func(domain.Channel) bool { return false },
		"general",
	)
	assert.False(t, ok)
}

func TestResolveEmptyChannelList(t *testing.T) {
	_, ok := ResolveAnnouncementChannel(nil, func(domain.Channel) bool { return true }, "general")
	assert.False(t, ok)
}

func TestResolveDeterministic(t *testing.T) {
	list := chans("chat", "general", "lobby")
	permitted := allow("chat", "general", "lobby")
	first, ok := ResolveAnnouncementChannel(list, permitted, "general")
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := ResolveAnnouncementChannel(list, permitted, "general")
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}
