package slackbot

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/slack-go/slack"
)

const defaultSlackAPIBaseURL = "https://slack.com"

// SlackPoster posts replies through the Slack Web API. In-channel replies go
// out with chat.postMessage, ephemeral ones with chat.postEphemeral.
type SlackPoster struct {
	api *slack.Client
}

// NewSlackPoster creates a poster authenticated with a bot token.
func NewSlackPoster(botToken, apiBaseURL string, httpClient *http.Client) *SlackPoster {
	apiBaseURL = strings.TrimSpace(apiBaseURL)
	if apiBaseURL == "" {
		apiBaseURL = defaultSlackAPIBaseURL
	}
	opts := []slack.Option{
		slack.OptionAPIURL(strings.TrimRight(apiBaseURL, "/") + "/api/"),
	}
	if httpClient != nil {
		opts = append(opts, slack.OptionHTTPClient(httpClient))
	}
	return &SlackPoster{api: slack.New(strings.TrimSpace(botToken), opts...)}
}

func (p *SlackPoster) Post(ctx context.Context, channelID, userID string, msg ReplyMessage) error {
	options := []slack.MsgOption{
		slack.MsgOptionText(msg.fallbackText(), false),
		slack.MsgOptionDisableLinkUnfurl(),
	}
	if len(msg.Blocks) > 0 {
		options = append(options, slack.MsgOptionBlocks(msg.Blocks...))
	}

	if msg.ResponseType == slack.ResponseTypeEphemeral && userID != "" {
		if _, err := p.api.PostEphemeralContext(ctx, channelID, userID, options...); err != nil {
			return fmt.Errorf("posting ephemeral slack message: %w", err)
		}
		return nil
	}

	if _, _, err := p.api.PostMessageContext(ctx, channelID, options...); err != nil {
		return fmt.Errorf("posting slack message: %w", err)
	}
	return nil
}
