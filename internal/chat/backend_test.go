// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package chat

import (
	"testing"

	"google.golang.org/genai"

	"github.com/supriyamulik/cet-college-predictor/internal/models"
)

func TestBuildContents(t *testing.T) {
	history := []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "What is CAP round 1?"},
		{Role: models.ChatRoleAssistant, Content: "The first centralized allotment."},
	}

	tests := []struct {
		name      string
		history   []models.ChatMessage
		wantRoles []string
		wantTexts []string
	}{
		{
			name:      "no history",
			wantRoles: []string{string(genai.RoleUser)},
			wantTexts: []string{"Which documents are needed?"},
		},
		{
			name:      "history alternates user and model",
			history:   history,
			wantRoles: []string{string(genai.RoleUser), string(genai.RoleModel), string(genai.RoleUser)},
			wantTexts: []string{"What is CAP round 1?", "The first centralized allotment.", "Which documents are needed?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildContents(tt.history, "Which documents are needed?")
			if len(got) != len(tt.wantRoles) {
				t.Fatalf("buildContents() returned %d contents, want %d", len(got), len(tt.wantRoles))
			}
			for i, c := range got {
				if c.Role != tt.wantRoles[i] {
					t.Errorf("contents[%d].Role = %q, want %q", i, c.Role, tt.wantRoles[i])
				}
				if len(c.Parts) != 1 || c.Parts[0].Text != tt.wantTexts[i] {
					t.Errorf("contents[%d] text = %+v, want %q", i, c.Parts, tt.wantTexts[i])
				}
			}
		})
	}
}
