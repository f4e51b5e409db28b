package slackbot

import (
	"fmt"

	"github.com/slack-go/slack"
)

const (
	apologyText = "Sorry, I encountered an error while fetching the weather data. Please try again later."

	eventGuidanceText = "Please provide valid latitude and longitude coordinates. Example: `37.7749 -122.4194` or `37.7749,-122.4194`\n\nType `help` to see all available commands."
)

// ReplyMessage is the JSON body returned to Slack. Exactly one of Text and
// Blocks is set.
type ReplyMessage struct {
	ResponseType string        `json:"response_type"`
	Text         string        `json:"text,omitempty"`
	Blocks       []slack.Block `json:"blocks,omitempty"`
}

// Ephemeral is only shown to the requesting user.
func Ephemeral(text string) ReplyMessage {
	return ReplyMessage{ResponseType: slack.ResponseTypeEphemeral, Text: text}
}

// InChannel is visible to everyone in the conversation.
func InChannel(text string) ReplyMessage {
	return ReplyMessage{ResponseType: slack.ResponseTypeInChannel, Text: text}
}

func commandGuidance(command string) string {
	return fmt.Sprintf(
		"Please provide valid latitude and longitude coordinates. Example: %[1]s 37.7749 -122.4194 or %[1]s 37.7749,-122.4194",
		command,
	)
}

// HelpMessage describes how to use the bot.
func HelpMessage(command string) ReplyMessage {
	return ReplyMessage{
		ResponseType: slack.ResponseTypeEphemeral,
		Blocks: []slack.Block{
			markdownSection("*Weather Bot Help*\n\nI can help you get weather information for any location using coordinates. Here's how to use me:"),
			markdownSection(fmt.Sprintf(
				"• *Direct message me* with coordinates like: `37.7749 -122.4194` or `37.7749,-122.4194`\n• *Mention me in a channel* with coordinates\n• Use the `%s` command with coordinates",
				command,
			)),
			markdownSection("I'll provide you with:\n• Current conditions\n• 4-day forecast\n• Temperature and precipitation charts"),
		},
	}
}

func markdownSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

// fallbackText is the notification text used when posting a block message.
func (m ReplyMessage) fallbackText() string {
	if m.Text != "" {
		return m.Text
	}
	return "Weather Bot Help"
}
