package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"github.com/usmaclub/signup-bot/internal/config"
	"github.com/usmaclub/signup-bot/internal/handlers"
	"github.com/usmaclub/signup-bot/internal/scheduler"
	"github.com/usmaclub/signup-bot/internal/signup"
	"github.com/usmaclub/signup-bot/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st := store.New(cfg.DataPath)
	state := st.Load()

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentGuildMembers |
		discordgo.IntentMessageContent

	svc := signup.New(state, st, dg, cfg.Tables.Roles)

	handler := handlers.New(dg, svc, cfg)
	dg.AddHandler(handler.OnReady)
	dg.AddHandler(handler.OnReactionAdd)
	dg.AddHandler(handler.OnReactionRemove)
	dg.AddHandler(handler.OnMessageCreate)

	if err := dg.Open(); err != nil {
		log.Fatalf("Failed to open Discord connection: %v", err)
	}
	defer dg.Close()

	sched := scheduler.New(svc, cfg)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	http.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "pong")
	})
	go func() {
		log.Printf("Keep-alive endpoint listening on port %s", cfg.Port)
		if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
			log.Printf("Keep-alive endpoint stopped: %v", err)
		}
	}()

	log.Println("Bot is running, press CTRL-C to exit")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	log.Println("Shutting down")
}
