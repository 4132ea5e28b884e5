package models

import (
	"fmt"
	"strings"
)

// PromptStyle selects how much detail the caption prompt asks for
type PromptStyle int

const (
	StyleShort PromptStyle = iota
	StyleDetailed
)

// String returns the style name as accepted by ParsePromptStyle
func (s PromptStyle) String() string {
	if s == StyleDetailed {
		return "detailed"
	}
	return "short"
}

// Title returns the display name used in menus
func (s PromptStyle) Title() string {
	if s == StyleDetailed {
		return "Detailed"
	}
	return "Short"
}

// PromptStyles returns the styles in menu order
func PromptStyles() []PromptStyle {
	return []PromptStyle{StyleShort, StyleDetailed}
}

// ParsePromptStyle parses "short" or "detailed", case-insensitively
func ParsePromptStyle(s string) (PromptStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "short":
		return StyleShort, nil
	case "detailed", "detail", "long":
		return StyleDetailed, nil
	default:
		return StyleShort, fmt.Errorf("unknown caption style %q (want short or detailed)", s)
	}
}

const (
	videoPromptDetailed = "write a text description that could be used to recreate this video as accurately as possible using an AI video generation model. Include details about: the video (aspect ratio, composition, style, motion, pacing, type of lighting, camera point of view, it's position related to the subject), objects descriptions (colors, location), and a description of what is happening and the interactions between objects in the video."
	videoPromptShort    = "Write a short description of this video in 2-3 sentences."

	imagePromptDetailed = "Write a text description that could be used to recreate this image as accurately as possible using an AI image generation model. Include details about: the image (aspect ratio, composition, style, type of lighting), objects descriptions (colors, location, textures), and a description of what is happening and the interactions between objects or subjects in the image."
	imagePromptShort    = "Describe this image in detail. Include style. In 1-2 sentences, 50 words or less."

	// PipelinePrompt is used by the one-shot pipeline when no prompt is given
	PipelinePrompt = `Describe this video clearly and concisely in 2-3 sentences.
Include the main subject, key actions, setting, and visual style.
Use plain text without markdown formatting.`
)

// Prompt returns the caption prompt for an asset kind and style
func Prompt(kind AssetKind, style PromptStyle) string {
	switch {
	case kind == AssetVideo && style == StyleDetailed:
		return videoPromptDetailed
	case kind == AssetVideo:
		return videoPromptShort
	case style == StyleDetailed:
		return imagePromptDetailed
	default:
		return imagePromptShort
	}
}
