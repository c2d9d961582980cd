package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	discordrouter "github.com/jakec/mute-deafen-bot/internal/adapters/discord"
	"github.com/jakec/mute-deafen-bot/internal/app/service"
	"github.com/jakec/mute-deafen-bot/internal/infra/config"
	"github.com/jakec/mute-deafen-bot/internal/infra/metrics"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	rec := metrics.NewRecorder()

	// Discord session
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal(err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	if err := s.Open(); err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	log.Printf("✅ Conectado como %s (%s), %d guilds", s.State.User.Username, s.State.User.ID, len(s.State.Guilds))
	_ = s.UpdateListeningStatus("for mute/deafen changes")

	// Services
	tracker := service.NewPresenceTracker()
	gate := service.NewSpamGate(cfg.SpamPrevention, rec)
	templates := service.NewTemplateRenderer(cfg.Messages)
	sender := discordrouter.NewAnnouncementSender(s, rec)
	directory := discordrouter.NewChannelDirectory(s)
	announcer := service.NewAnnouncer(cfg.Announcements, cfg.AnnouncementChannel, templates, directory, sender, rec)

	// Router
	r := discordrouter.NewRouter(
		s,
		cfg.DiscordGuild,
		cfg.Announcements.IncludeBots,
		cfg.Announcements.UseNicknames,
		tracker,
		gate,
		announcer,
		templates,
		rec,
	)
	r.Handlers()
	log.Printf("✅ handlers registrados (guild=%q)", cfg.DiscordGuild)

	// Métricas por HTTP (scrape)
	go metrics.NewServer().Start(cfg.HTTPAddr)

	// Barridos periódicos, desacoplados del camino de eventos:
	// reset de ventana cada 60s, limpieza de cooldowns cada 5m.
	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for range t.C {
			gate.ResetWindow()
		}
	}()
	go func() {
		t := time.NewTicker(5 * time.Minute)
		defer t.Stop()
		for range t.C {
			gate.EvictStale()
		}
	}()

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
	log.Println("apagando bot...")
}
