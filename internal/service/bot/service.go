package bot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"vaultly/internal/config"
	"vaultly/internal/domain"
	"vaultly/internal/pkg/urldetector"
	"vaultly/internal/service/metadata"
)

// BotService saves video links posted in Discord to the poster's vault
type BotService struct {
	config      *config.Config
	logger      *slog.Logger
	session     *discordgo.Session
	videoRepo   domain.VideoRepository
	queueRepo   domain.QueueRepository
	extractor   *metadata.Service
	urlDetector *urldetector.Detector

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new bot service
func New(
	cfg *config.Config,
	logger *slog.Logger,
	videoRepo domain.VideoRepository,
	queueRepo domain.QueueRepository,
	extractor *metadata.Service,
) (*BotService, error) {
	ctx, cancel := context.WithCancel(context.Background())

	botService := &BotService{
		config:      cfg,
		logger:      logger,
		videoRepo:   videoRepo,
		queueRepo:   queueRepo,
		extractor:   extractor,
		urlDetector: urldetector.New(),
		ctx:         ctx,
		cancel:      cancel,
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		cancel()
		return nil, err
	}

	botService.session = session
	botService.registerHandlers()

	return botService, nil
}

func (s *BotService) Start() error {
	s.logger.Info("Starting Discord bot...")

	if err := s.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	s.logger.Info("Discord bot connected successfully")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	s.logger.Info("Bot is running. Press Ctrl+C to stop.")
	<-stop

	s.logger.Info("Shutting down Discord bot...")
	return s.Stop()
}

func (s *BotService) Stop() error {
	s.cancel()

	if s.session != nil {
		s.logger.Info("Closing Discord connection...")
		if err := s.session.Close(); err != nil {
			s.logger.Error("Error closing Discord connection", "error", err)
			return err
		}
	}

	s.logger.Info("Discord bot stopped")
	return nil
}

func (s *BotService) registerHandlers() {
	s.session.AddHandler(s.onReady)
	s.session.AddHandler(s.onMessageCreate)
	s.session.AddHandler(s.onInteractionCreate)
}

// onReady is called when the bot successfully connects to Discord
func (s *BotService) onReady(session *discordgo.Session, ready *discordgo.Ready) {
	s.logger.Info("Bot is ready",
		"username", ready.User.Username,
		"guilds", len(ready.Guilds),
	)

	if err := s.registerCommands(); err != nil {
		s.logger.Error("Failed to register slash commands", "error", err)
	}

	if err := session.UpdateGameStatus(0, "📌 Saving your videos"); err != nil {
		s.logger.Error("Failed to set bot status", "error", err)
	}
}
