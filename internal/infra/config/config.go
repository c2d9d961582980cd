package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DiscordToken string
	DiscordGuild string // opcional: vacío = todos los guilds
	HTTPAddr     string // opcional, default :8080 (scrape de métricas)

	AnnouncementChannel string

	Announcements  Announcements
	SpamPrevention SpamPrevention
	Messages       Messages
}

type Announcements struct {
	Mute         bool
	Deafen       bool
	IncludeBots  bool
	UseNicknames bool
}

type SpamPrevention struct {
	Cooldown        time.Duration
	MaxPerMinute    int
	EnableRateLimit bool
}

// Messages: pools de templates por acción + overrides por usuario.
// Se puede pisar el default con un archivo JSON (MESSAGES_FILE).
type Messages struct {
	MuteTemplates      []string            `json:"muteTemplates"`
	UnmuteTemplates    []string            `json:"unmuteTemplates"`
	DeafenTemplates    []string            `json:"deafenTemplates"`
	UndeafenTemplates  []string            `json:"undeafenTemplates"`
	CustomUserMessages map[string][]string `json:"customUserMessages"`
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("faltante env %s", k)
		}
		return v
	}

	cfg := Config{
		DiscordToken:        get("DISCORD_BOT_TOKEN", true),
		DiscordGuild:        get("DISCORD_GUILD_ID", false),
		HTTPAddr:            get("HTTP_ADDR", false),
		AnnouncementChannel: getDefault("ANNOUNCEMENT_CHANNEL", "general"),
		Announcements: Announcements{
			Mute:         getBool("ANNOUNCE_MUTE", true),
			Deafen:       getBool("ANNOUNCE_DEAFEN", true),
			IncludeBots:  getBool("INCLUDE_BOTS", false),
			UseNicknames: getBool("USE_NICKNAMES", true),
		},
		SpamPrevention: SpamPrevention{
			Cooldown:        getDuration("COOLDOWN", 3*time.Second),
			MaxPerMinute:    getInt("MAX_PER_MINUTE", 20),
			EnableRateLimit: getBool("ENABLE_RATE_LIMIT", true),
		},
		Messages: DefaultMessages(),
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if path := get("MESSAGES_FILE", false); path != "" {
		if err := cfg.Messages.LoadFile(path); err != nil {
			log.Fatalf("cargando %s: %v", path, err)
		}
	}

	// Configuración inválida es fatal: mejor no arrancar que anunciar mal.
	if err := cfg.SpamPrevention.Validate(); err != nil {
		log.Fatalf("spam prevention: %v", err)
	}
	if err := cfg.Messages.Validate(); err != nil {
		log.Fatalf("messages: %v", err)
	}
	return cfg
}

func getDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("env %s: se esperaba bool, llegó %q", k, v)
	}
	return b
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("env %s: se esperaba entero, llegó %q", k, v)
	}
	return n
}

func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("env %s: se esperaba duración (ej: 3s), llegó %q", k, v)
	}
	return d
}

func (s SpamPrevention) Validate() error {
	if s.Cooldown < 100*time.Millisecond || s.Cooldown > 30*time.Second {
		return fmt.Errorf("cooldown debe estar entre 100ms y 30s, recibido %s", s.Cooldown)
	}
	if s.MaxPerMinute < 1 {
		return fmt.Errorf("max per minute debe ser >= 1, recibido %d", s.MaxPerMinute)
	}
	return nil
}

func (m Messages) Validate() error {
	pools := map[string][]string{
		"muteTemplates":     m.MuteTemplates,
		"unmuteTemplates":   m.UnmuteTemplates,
		"deafenTemplates":   m.DeafenTemplates,
		"undeafenTemplates": m.UndeafenTemplates,
	}
	for name, pool := range pools {
		if len(pool) == 0 {
			return fmt.Errorf("pool %s no puede estar vacío", name)
		}
	}
	return nil
}

// LoadFile superpone el JSON sobre los defaults: sólo pisa lo que venga.
func (m *Messages) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var overlay Messages
	if err := json.Unmarshal(b, &overlay); err != nil {
		return fmt.Errorf("json inválido: %w", err)
	}
	if len(overlay.MuteTemplates) > 0 {
		m.MuteTemplates = overlay.MuteTemplates
	}
	if len(overlay.UnmuteTemplates) > 0 {
		m.UnmuteTemplates = overlay.UnmuteTemplates
	}
	if len(overlay.DeafenTemplates) > 0 {
		m.DeafenTemplates = overlay.DeafenTemplates
	}
	if len(overlay.UndeafenTemplates) > 0 {
		m.UndeafenTemplates = overlay.UndeafenTemplates
	}
	if overlay.CustomUserMessages != nil {
		m.CustomUserMessages = overlay.CustomUserMessages
	}
	return nil
}

func DefaultMessages() Messages {
	return Messages{
		MuteTemplates: []string{
			"🤫 **{user}** has gone silent!",
			"🎤❌ **{user}** dropped the mic!",
			"🔇 **{user}** is now in stealth mode!",
		},
		UnmuteTemplates: []string{
			"🎤 **{user}** is back on the mic!",
			"🔊 **{user}** has returned to the conversation!",
			"💬 **{user}** is ready to speak again!",
		},
		DeafenTemplates: []string{
			"👂❌ **{user}** has entered their own world!",
			"🔇 **{user}** is now in the zone!",
			"🎧 **{user}** tuned out the world!",
		},
		UndeafenTemplates: []string{
			"👂 **{user}** is back among the living!",
			"🔊 **{user}** rejoined reality!",
			"🎧❌ **{user}** plugged into the matrix!",
		},
		CustomUserMessages: map[string][]string{},
	}
}
