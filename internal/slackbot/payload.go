package slackbot

import (
	"bytes"
	"encoding/json"
	"net/url"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// Payload is the decoded shape of an inbound request body. It is one of
// Handshake, SlashCommand, EventCallback or Unrecognized.
type Payload interface {
	payload()
}

// Handshake is the Events API URL verification request.
type Handshake struct {
	Challenge string
}

// SlashCommand is a form-encoded slash command invocation.
type SlashCommand struct {
	slack.SlashCommand
}

// EventCallback is a message-like Events API callback.
type EventCallback struct {
	EventType   string
	Text        string
	User        string
	ChannelID   string
	ChannelType string
	BotID       string
}

// Unrecognized is any body that is none of the above.
type Unrecognized struct{}

func (Handshake) payload()     {}
func (SlashCommand) payload()  {}
func (EventCallback) payload() {}
func (Unrecognized) payload()  {}

// Decode classifies a raw request body. JSON bodies are read as Events API
// envelopes, anything else as a form-encoded slash command.
func Decode(body []byte) Payload {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return decodeEvent(trimmed)
	}
	return decodeForm(body)
}

func decodeEvent(body []byte) Payload {
	ev, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		return Unrecognized{}
	}

	switch ev.Type {
	case slackevents.URLVerification:
		if v, ok := ev.Data.(*slackevents.EventsAPIURLVerificationEvent); ok {
			return Handshake{Challenge: v.Challenge}
		}
	case slackevents.CallbackEvent:
		switch inner := ev.InnerEvent.Data.(type) {
		case *slackevents.MessageEvent:
			return EventCallback{
				EventType:   string(slackevents.Message),
				Text:        inner.Text,
				User:        inner.User,
				ChannelID:   inner.Channel,
				ChannelType: inner.ChannelType,
				BotID:       inner.BotID,
			}
		case *slackevents.AppMentionEvent:
			return EventCallback{
				EventType: string(slackevents.AppMention),
				Text:      inner.Text,
				User:      inner.User,
				ChannelID: inner.Channel,
				BotID:     inner.BotID,
			}
		}
	}
	return Unrecognized{}
}

func decodeForm(body []byte) Payload {
	values, err := url.ParseQuery(string(body))
	if err != nil || values.Get("command") == "" {
		return Unrecognized{}
	}
	return SlashCommand{slack.SlashCommand{
		Token:       values.Get("token"),
		TeamID:      values.Get("team_id"),
		TeamDomain:  values.Get("team_domain"),
		ChannelID:   values.Get("channel_id"),
		ChannelName: values.Get("channel_name"),
		UserID:      values.Get("user_id"),
		UserName:    values.Get("user_name"),
		Command:     values.Get("command"),
		Text:        values.Get("text"),
		ResponseURL: values.Get("response_url"),
		TriggerID:   values.Get("trigger_id"),
	}}
}
