package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project_report_bot/internal/app"
	"project_report_bot/internal/infra/clock"
	"project_report_bot/internal/infra/config"
	"project_report_bot/internal/infra/discord"
	"project_report_bot/internal/infra/httpserver"
	"project_report_bot/internal/infra/logger"
	"project_report_bot/internal/infra/scheduler"
	"project_report_bot/internal/infra/storage"
	"project_report_bot/internal/infra/weather"

	"github.com/bwmarrin/discordgo"
)

func main() {
	fmt.Println("Project Report Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	log := logger.Component("main")
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Timezone: %s", cfg.LogLevel, cfg.Environment, cfg.Timezone)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Could not load timezone %q: %v", cfg.Timezone, err)
	}

	docStore := storage.NewJSONStore(cfg.DataFile)
	log.Infof("Document store initialized at %s", cfg.DataFile)

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("Could not create Discord session: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages

	notifier := discord.NewSessionAdapter(session)
	clk := clock.System{}

	var wx *weather.Client
	if cfg.WeatherEnabled {
		wx = weather.NewClient()
		log.Info("Weather client enabled.")
	}

	reminderSvc := app.NewReminderService(docStore, notifier, clk, loc, logger.Component("reminders"))
	escalationSvc := app.NewEscalationService(docStore, notifier, clk, loc, cfg.SupervisorChannelID, cfg.SupervisorRoleID, logger.Component("escalations"))
	projectSvc := app.NewProjectService(docStore, clk, loc, logger.Component("projects"))
	summarySvc := app.NewSummaryService(docStore, notifier, wx, cfg.SummaryChannelID, clk, loc, logger.Component("summary"))
	officeSvc := app.NewOfficeAlertsService(docStore, notifier, cfg.OfficeChannelID, clk, loc, logger.Component("office-alerts"))
	log.Info("Application services initialized.")

	discord.RegisterInteractionHandlers(session, logger.Component("discord"))

	if err := session.Open(); err != nil {
		log.Fatalf("Could not open Discord gateway connection: %v", err)
	}
	defer session.Close()
	log.Info("Discord gateway connection established.")

	sweeps := scheduler.NewSweepScheduler(
		loc,
		reminderSvc,
		escalationSvc,
		projectSvc,
		summarySvc,
		officeSvc,
		logger.Component("scheduler"),
		scheduler.Specs{
			Reminder:     cfg.CronSpecReminder,
			AutoFlip:     cfg.CronSpecAutoFlip,
			Summary:      cfg.CronSpecSummary,
			OfficeAlerts: cfg.CronSpecOfficeAlerts,
		},
	)
	sweeps.Start()

	keepAlive := httpserver.New(cfg.HTTPAddr, cfg.UptimeSecret, session, logger.Component("http"))
	go func() {
		if err := keepAlive.Start(); err != nil {
			log.Errorf("Keep-alive server stopped: %v", err)
		}
	}()

	log.Info("Application setup complete. Bot and scheduler are running.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	sweeps.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := keepAlive.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Keep-alive server shutdown failed: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
