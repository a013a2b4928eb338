// CET College Predictor - Admission Decision Support
// Copyright 2026 Supriya Mulik (supriyamulik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/supriyamulik/cet-college-predictor

package chat

import "github.com/supriyamulik/cet-college-predictor/internal/models"

// SystemInstruction frames every conversation.
const SystemInstruction = `You are AdmitAssist AI, a friendly and knowledgeable college admission assistant for the CET Insights platform in India.

You help students with:
- CET, JEE, NEET exam guidance
- Engineering & medical admissions
- Cut-offs, ranks, and percentiles
- College comparisons
- Counseling and documentation

Guidelines:
- Be comprehensive and complete in your responses
- Use bullet points and numbering for better readability
- Give actionable, step-by-step advice when appropriate
- Always finish your complete thought - don't cut off mid-sentence
- Admit uncertainty and suggest official sources if needed

Academic year: 2024-2025
`

// User-facing texts.
const (
	greeting = "Hi 👋 I'm AdmitAssist AI!\n\n" +
		"I can help you with:\n" +
		"✓ CET, JEE, NEET exam info\n" +
		"✓ College admissions guidance\n" +
		"✓ Cut-off ranks & predictions\n" +
		"✓ Course and college comparisons\n\n" +
		"What would you like to know?"

	greetingNotConfigured = "⚠️ AI Chatbot Configuration Required\n\n" +
		"The chatbot service needs to be configured with a Gemini API key. " +
		"Please contact the administrator.\n\n" +
		"In the meantime, you can:\n" +
		"• Browse college information\n" +
		"• Use the college comparison tool\n" +
		"• Check admission cutoffs"

	replyNotConfigured = "⚠️ AI chatbot is not configured. " +
		"Please add an API key to the server configuration. " +
		"Contact the administrator for assistance."

	replyEmpty   = "I'm having a little trouble responding right now. Please try again in a moment 😊"
	replyBusy    = "I'm getting a lot of requests right now. Please try again shortly."
	replyAPIKey  = "There's a configuration issue. Please contact support."
	replyGeneric = "Something went wrong. Please try again later."
)

var quickReplies = []models.QuickReply{
	{ID: "cet", Text: "What is CET exam?", Category: "Entrance Exams"},
	{ID: "apply", Text: "How to apply for engineering colleges?", Category: "Admissions"},
	{ID: "cutoff", Text: "How are cut-offs decided?", Category: "Cut-offs"},
	{ID: "compare", Text: "Compare engineering colleges", Category: "College Info"},
	{ID: "dates", Text: "Important admission dates", Category: "Schedules"},
}
