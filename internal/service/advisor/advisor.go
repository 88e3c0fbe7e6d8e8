package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"vaultly/internal/domain"
)

// FallbackSuggestions is returned whenever the collaborator cannot produce
// a usable answer. Process-wide read-only configuration, never mutated.
var FallbackSuggestions = []string{"General", "Entertainment", "Educational", "Music", "Other"}

// Service asks an external text-generation collaborator to propose
// organizational folder names. Best-effort contract: SuggestFolders never
// fails, it degrades to the fixed fallback list.
type Service struct {
	chat   *ChatClient
	logger *slog.Logger
}

// New creates a folder suggestion advisor
func New(chat *ChatClient, logger *slog.Logger) *Service {
	return &Service{
		chat:   chat,
		logger: logger,
	}
}

const suggestSystemPrompt = "You are a helpful assistant that suggests organized folder names. Return only valid JSON arrays."

// SuggestFolders proposes up to 5 specific folder names for a video. Any
// failure (unreachable collaborator, malformed reply) resolves to the
// fallback list; the caller always gets a usable answer.
func (s *Service) SuggestFolders(ctx context.Context, title, description string, tags []string) []string {
	if description == "" {
		description = "none"
	}
	tagList := "none"
	if len(tags) > 0 {
		tagList = strings.Join(tags, ", ")
	}

	prompt := fmt.Sprintf(`Based on this video information, suggest 5 specific, meaningful folder names that would be good for organizing it:

Title: %s
Description: %s
Tags: %s

Requirements:
- Analyze the CONTENT and TOPIC of the video carefully
- Be VERY SPECIFIC based on the description (e.g., "Italian Pasta Recipes" not just "Food", "HIIT Cardio Workouts" not just "Fitness")
- Use the video description as the PRIMARY source for understanding the content
- Keep names short (2-4 words max)
- Make them practical for organizing similar videos
- Avoid generic names like "Entertainment", "General", "Videos"
- Return ONLY a JSON array of strings, no other text`, title, description, tagList)

	reply, err := s.chat.Complete(ctx, []ChatMessage{
		{Role: "system", Content: suggestSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn("Folder suggestion collaborator failed, using fallback list",
			"error", err,
		)
		return FallbackSuggestions
	}

	suggestions, err := parseSuggestions(reply)
	if err != nil {
		s.logger.Warn("Folder suggestion reply did not parse, using fallback list",
			"error", err,
			"reply", reply,
		)
		return FallbackSuggestions
	}

	return suggestions
}

// parseSuggestions extracts a JSON string array from a collaborator reply,
// stripping any code-fence wrapping first
func parseSuggestions(reply string) ([]string, error) {
	cleaned := stripCodeFence(reply)

	var suggestions []string
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions array: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("empty suggestions array")
	}
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions, nil
}

// stripCodeFence removes markdown code-fence wrapping (``` or ```json)
// some collaborators add around structured replies
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drops the language hint on the fence line, if any
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// AutoPlace picks at most one of the user's existing folders for a video
// title. A non-matching or "none" reply means no suggestion; the video is
// filed with no folder. Never returns an error.
func (s *Service) AutoPlace(ctx context.Context, title string, folders []*domain.Folder) *domain.Folder {
	if len(folders) == 0 {
		return nil
	}

	names := make([]string, 0, len(folders))
	for _, folder := range folders {
		names = append(names, folder.Name)
	}

	prompt := fmt.Sprintf(`Given video title: "%s" and existing folders: %s, which folder name best matches? Reply with ONLY the exact folder name, nothing else. If no good match, reply "none".`,
		title, strings.Join(names, ", "))

	reply, err := s.chat.Complete(ctx, []ChatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Warn("Auto-placement collaborator failed, filing without folder",
			"error", err,
		)
		return nil
	}

	choice := strings.TrimSpace(reply)
	for _, folder := range folders {
		if folder.Name == choice {
			return folder
		}
	}
	return nil
}

const adviseSystemPrompt = "You are a helpful video organization assistant. Based on user's saved videos and folders, suggest 3-5 actionable ways to better organize their video collection. Be specific and practical."

// Advise asks the collaborator for organization advice over the user's
// recent videos and folder names. Unlike SuggestFolders this propagates
// failures so callers can surface rate-limit and quota errors distinctly.
func (s *Service) Advise(ctx context.Context, videos []*domain.Video, folders []*domain.Folder) (string, error) {
	videoContext := "No videos yet"
	if len(videos) > 0 {
		parts := make([]string, 0, len(videos))
		for _, video := range videos {
			parts = append(parts, fmt.Sprintf("%s (%s)", video.Title, video.Platform))
		}
		videoContext = strings.Join(parts, ", ")
	}

	folderContext := "No folders yet"
	if len(folders) > 0 {
		parts := make([]string, 0, len(folders))
		for _, folder := range folders {
			parts = append(parts, folder.Name)
		}
		folderContext = strings.Join(parts, ", ")
	}

	prompt := fmt.Sprintf("Recent videos: %s\nExisting folders: %s\n\nSuggest ways to organize these videos better.",
		videoContext, folderContext)

	reply, err := s.chat.Complete(ctx, []ChatMessage{
		{Role: "system", Content: adviseSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}
