// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt serializes conversation history into model-ready prompts.
package prompt

import (
	"strings"

	"github.com/jeranaias/lifeline-tui/internal/model"
)

// =============================================================================
// CHAT TEMPLATE (WIRE FORMAT)
// =============================================================================

// Llama 3 instruct template markers. These must exactly match the format the
// model was calibrated on; treat them as a versioned wire format.
const (
	BeginOfText = "<|begin_of_text|>"
	StartHeader = "<|start_header_id|>"
	EndHeader   = "<|end_header_id|>"
	EndOfTurn   = "<|eot_id|>"

	headerSystem    = "system"
	headerUser      = "user"
	headerAssistant = "assistant"
)

// SystemPreamble anchors every prompt. It frames the assistant as an
// emergency guide that feeds the user one actionable step at a time.
const SystemPreamble = "You are a calm emergency first-aid guide. " +
	"Guide the user through a life-threatening situation one step at a time. " +
	"Give short, concrete instructions a panicked person can follow hands-free."

// Instruction suffixes biasing the model toward incremental, stepwise output
// instead of dumping a full plan.
const (
	firstStepSuffix = " Give me only the first step."
	nextStepSuffix  = " Give me only the next step."
)

// =============================================================================
// BUILDER
// =============================================================================

// Builder produces a single prompt string from the conversation store and a
// new user utterance. It holds no state beyond the preamble and is safe to
// share.
type Builder struct {
	preamble string
}

// NewBuilder creates a builder with the default system preamble.
func NewBuilder() *Builder {
	return &Builder{preamble: SystemPreamble}
}

// NewBuilderWithPreamble creates a builder with a custom system preamble.
func NewBuilderWithPreamble(preamble string) *Builder {
	if strings.TrimSpace(preamble) == "" {
		preamble = SystemPreamble
	}
	return &Builder{preamble: preamble}
}

// Build serializes the conversation plus the new utterance.
//
// SystemInfo turns and turns that never produced output are skipped. The new
// utterance is appended as a final user segment carrying the first-step /
// next-step instruction, followed by an open assistant header with no closing
// marker so the engine continues from there.
func (b *Builder) Build(conv *model.Conversation, utterance string) string {
	var sb strings.Builder

	sb.WriteString(BeginOfText)
	writeSegment(&sb, headerSystem, b.preamble)

	turns := conv.PromptTurns()
	for _, t := range turns {
		switch t.Role {
		case model.RoleUser:
			writeSegment(&sb, headerUser, t.DisplayText())
		case model.RoleAssistant:
			writeSegment(&sb, headerAssistant, t.DisplayText())
		}
	}

	suffix := nextStepSuffix
	if len(turns) == 0 {
		suffix = firstStepSuffix
	}
	writeSegment(&sb, headerUser, utterance+suffix)

	// Open assistant header: the engine completes from here.
	sb.WriteString(StartHeader)
	sb.WriteString(headerAssistant)
	sb.WriteString(EndHeader)
	sb.WriteString("\n\n")

	return sb.String()
}

// writeSegment emits one closed role-tagged segment.
func writeSegment(sb *strings.Builder, header, text string) {
	sb.WriteString(StartHeader)
	sb.WriteString(header)
	sb.WriteString(EndHeader)
	sb.WriteString("\n\n")
	sb.WriteString(text)
	sb.WriteString(EndOfTurn)
}
