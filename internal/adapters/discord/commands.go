package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jakec/mute-deafen-bot/internal/domain"
)

const helpMessage = `🤖 **Mute/Deafen Bot Commands:**
• ` + "`!ping`" + ` - Health check with latency
• ` + "`!status`" + ` - Bot operational status
• ` + "`!stats`" + ` - Usage statistics
• ` + "`!metrics`" + ` - Detailed metrics snapshot
• ` + "`!templates`" + ` - Message template statistics
• ` + "`!voice`" + ` - Voice state change statistics
• ` + "`!test`" + ` - Send a test announcement
• ` + "`!help`" + ` - This help message

🎭 **Features:**
• Announces mute/unmute actions
• Announces deafen/undeafen actions
• Smart spam prevention with cooldowns
• Fun random messages with {user}, {time}, {channel}, {guild} variables
• Retry mechanism for reliable message delivery`

func (r *Router) pingMessage() string {
	return fmt.Sprintf("🏓 Pong! Gateway ping: %dms", r.s.HeartbeatLatency().Milliseconds())
}

func (r *Router) statusMessage() string {
	return fmt.Sprintf(`✅ **Bot Status: ONLINE**
🏰 Connected to %d guilds
📊 Monitoring voice state changes
📝 %d message templates loaded
👥 %d users with custom messages
🎯 Ready to announce!`,
		len(r.s.State.Guilds),
		r.templates.TotalDefaults(),
		r.templates.CustomUserCount())
}

func (r *Router) statsMessage() string {
	snap := r.rec.GetSnapshot()
	return fmt.Sprintf(`📈 **Bot Statistics:**
🎭 Voice changes: %d
📢 Announcements: %d successful, %d failed
📊 Success rate: %.2f%%
🚫 Cooldown blocks: %d
⚡ Rate limits: %d
💥 Errors: %d
⌨️ Commands processed: %d`,
		snap.TotalVoiceChanges,
		snap.Successes,
		snap.Failures,
		snap.SuccessRate,
		snap.CooldownBlocks,
		snap.RateLimits,
		snap.Errors,
		snap.Commands)
}

func (r *Router) metricsMessage() string {
	snap := r.rec.GetSnapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "📊 **Detailed Metrics:**\n")
	fmt.Fprintf(&b, "🎭 Total Voice Changes: %d\n", snap.TotalVoiceChanges)
	b.WriteString("**Voice Actions:**\n")
	for _, a := range domain.Actions() {
		fmt.Fprintf(&b, "  • %s: %d\n", a, snap.ActionCounts[a.String()])
	}
	b.WriteString("\n**Announcement Performance:**\n")
	fmt.Fprintf(&b, "✅ Successful: %d\n", snap.Successes)
	fmt.Fprintf(&b, "❌ Failed: %d\n", snap.Failures)
	fmt.Fprintf(&b, "📈 Success Rate: %.2f%%\n", snap.SuccessRate)
	b.WriteString("\n**Rate Limiting:**\n")
	fmt.Fprintf(&b, "🚫 Cooldown Blocks: %d\n", snap.CooldownBlocks)
	fmt.Fprintf(&b, "⚡ Rate Limits: %d\n", snap.RateLimits)
	b.WriteString("\n**System:**\n")
	fmt.Fprintf(&b, "💥 Errors: %d\n", snap.Errors)
	fmt.Fprintf(&b, "⌨️ Commands: %d\n", snap.Commands)
	return b.String()
}

func (r *Router) templatesMessage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 **Message Template Statistics:**\n")
	fmt.Fprintf(&b, "📊 Total Default Templates: %d\n", r.templates.TotalDefaults())
	fmt.Fprintf(&b, "👥 Users with Custom Messages: %d\n", r.templates.CustomUserCount())
	fmt.Fprintf(&b, "🎭 Actions Configured: %d\n", len(domain.Actions()))
	fmt.Fprintf(&b, "🏷️ Use Nicknames: %v\n", r.useNicknames)
	b.WriteString(`
**Available Template Variables:**
• ` + "`{user}`" + ` - User display name
• ` + "`{action}`" + ` - Voice action (muted/unmuted/etc.)
• ` + "`{emoji}`" + ` - Action emoji
• ` + "`{time}`" + ` - Current time (HH:mm:ss)
• ` + "`{channel}`" + ` - Voice channel name
• ` + "`{guild}`" + ` - Guild ID

**Template counts per action:**
`)
	for _, a := range domain.Actions() {
		fmt.Fprintf(&b, "  • %s: %d templates\n", a, len(r.templates.TemplatesFor(a)))
	}
	return b.String()
}

func (r *Router) voiceStatsMessage() string {
	snap := r.rec.GetSnapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "🎭 **Voice State Statistics:**\n")
	fmt.Fprintf(&b, "📊 Total Voice Changes: %d\n", snap.TotalVoiceChanges)
	b.WriteString("\n**Action Breakdown:**\n")
	fmt.Fprintf(&b, "🔇 Mutes: %d\n", snap.ActionCounts["muted"])
	fmt.Fprintf(&b, "🎤 Unmutes: %d\n", snap.ActionCounts["unmuted"])
	fmt.Fprintf(&b, "👂❌ Deafens: %d\n", snap.ActionCounts["deafened"])
	fmt.Fprintf(&b, "👂 Undeafens: %d\n", snap.ActionCounts["undeafened"])

	if snap.TotalVoiceChanges > 0 {
		total := float64(snap.TotalVoiceChanges)
		b.WriteString("\n**Action Distribution:**\n")
		fmt.Fprintf(&b, "Mutes: %.1f%%\n", float64(snap.ActionCounts["muted"])*100/total)
		fmt.Fprintf(&b, "Unmutes: %.1f%%\n", float64(snap.ActionCounts["unmuted"])*100/total)
		fmt.Fprintf(&b, "Deafens: %.1f%%\n", float64(snap.ActionCounts["deafened"])*100/total)
		fmt.Fprintf(&b, "Undeafens: %.1f%%\n", float64(snap.ActionCounts["undeafened"])*100/total)
	}
	return b.String()
}

func (r *Router) testMessage(m *discordgo.MessageCreate) string {
	if m.GuildID == "" {
		return "Test command only works in servers!"
	}
	author := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		author = m.Member.Nick
	}

	out := r.announcer.SendTest(m.GuildID, "Bot functionality check from "+author)
	if out.OK {
		return "Test announcement sent successfully to #" + out.ChannelName + "!"
	}
	// Un test fallido sí reporta el motivo (a diferencia del anuncio real).
	return "Failed to send test announcement: " + out.Reason
}
