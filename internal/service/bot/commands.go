package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"vaultly/internal/domain"
)

// Command definitions
var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "recent",
		Description: "Show your most recently saved videos",
		Type:        discordgo.ChatApplicationCommand,
	},
	{
		Name:        "search",
		Description: "Search your saved videos",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "query",
				Description: "Search terms",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
			},
		},
	},
}

// registerCommands registers slash commands with Discord
func (s *BotService) registerCommands() error {
	s.logger.Info("Registering slash commands...")

	_, err := s.session.ApplicationCommandBulkOverwrite(s.session.State.User.ID, "", commands)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	s.logger.Info("Slash commands registered successfully")
	return nil
}

// onInteractionCreate handles slash command interactions
func (s *BotService) onInteractionCreate(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	if interaction.Type != discordgo.InteractionApplicationCommand {
		return
	}

	command := interaction.ApplicationCommandData()

	var response *discordgo.InteractionResponse

	switch command.Name {
	case "recent":
		response = s.handleRecentCommand(interaction)
	case "search":
		response = s.handleSearchCommand(interaction)
	default:
		response = &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Unknown command",
			},
		}
	}

	if err := session.InteractionRespond(interaction.Interaction, response); err != nil {
		s.logger.Error("Failed to respond to interaction", "error", err)
	}
}

// interactionUserID resolves the invoking user in both DMs and guilds
func interactionUserID(interaction *discordgo.InteractionCreate) string {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User.ID
	}
	if interaction.User != nil {
		return interaction.User.ID
	}
	return ""
}

// videoEmbedFields renders a list of videos as embed fields
func videoEmbedFields(videos []*domain.Video) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, 0, len(videos))
	for _, video := range videos {
		value := video.URL
		if video.Uploader != nil {
			value = fmt.Sprintf("%s - %s", *video.Uploader, video.URL)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  video.Title,
			Value: value,
		})
	}
	return fields
}

// handleRecentCommand handles the /recent command
func (s *BotService) handleRecentCommand(interaction *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	userID := interactionUserID(interaction)
	videos, err := s.videoRepo.GetRecentByUser(ctx, userID, nil, 5)
	if err != nil {
		s.logger.Error("Failed to load recent videos", "error", err, "user_id", userID)
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "❌ Could not load your recent videos",
			},
		}
	}

	if len(videos) == 0 {
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "Your vault is empty. Post a video link and I'll save it.",
			},
		}
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:  "📌 Recent Saves",
					Color:  0x00ff00,
					Fields: videoEmbedFields(videos),
				},
			},
		},
	}
}

// handleSearchCommand handles the /search command
func (s *BotService) handleSearchCommand(interaction *discordgo.InteractionCreate) *discordgo.InteractionResponse {
	var query string
	for _, option := range interaction.ApplicationCommandData().Options {
		if option.Name == "query" {
			if queryVal, ok := option.Value.(string); ok {
				query = queryVal
			}
		}
	}

	if query == "" {
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "❌ Please provide a search query",
			},
		}
	}

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	userID := interactionUserID(interaction)
	videos, err := s.videoRepo.Search(ctx, userID, query, nil, 5)
	if err != nil {
		s.logger.Error("Failed to search videos", "error", err, "user_id", userID)
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "❌ Search failed",
			},
		}
	}

	if len(videos) == 0 {
		return &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("No saved videos match **%s**", query),
			},
		}
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:  "🔍 Search Results",
					Color:  0xff9900,
					Fields: videoEmbedFields(videos),
				},
			},
		},
	}
}
