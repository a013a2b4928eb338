// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package chat

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

// Backend generates one assistant reply from prior turns and a new message.
type Backend interface {
	Generate(ctx context.Context, history []models.ChatMessage, message string) (string, error)
}

// GeminiBackend calls the Gemini API through the genai SDK.
type GeminiBackend struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiBackend creates a client for cfg.APIKey.
func NewGeminiBackend(ctx context.Context, cfg Config) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiBackend{
		client: client,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
			Temperature:       genai.Ptr(float32(cfg.Temperature)),
			TopP:              genai.Ptr(float32(cfg.TopP)),
			TopK:              genai.Ptr(float32(cfg.TopK)),
			MaxOutputTokens:   int32(cfg.MaxOutputTokens),
			SafetySettings: []*genai.SafetySetting{
				{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
				{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
				{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
				{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
			},
		},
	}, nil
}

// Generate sends history as alternating user/model turns followed by message.
func (b *GeminiBackend) Generate(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	resp, err := b.client.Models.GenerateContent(ctx, b.model, buildContents(history, message), b.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

// buildContents turns the retained history and the new message into model
// turns, oldest first.
func buildContents(history []models.ChatMessage, message string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == models.ChatRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}
