// Package telegram sends outbound notifications to a fixed chat. There
// is no inbound update handling; the bot only talks.
package telegram

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"

	"market-analyzer/config"
	"market-analyzer/pkg/logger"
)

// Client paces every request through a global token bucket so bursts of
// simultaneous signals stay under the Bot API limit.
type Client struct {
	cfg           *config.TelegramConfig
	log           *logger.Logger
	bot           *telebot.Bot
	globalLimiter *rate.Limiter
}

func NewClient(cfg *config.TelegramConfig, log *logger.Logger, bot *telebot.Bot) *Client {
	return &Client{
		cfg:           cfg,
		log:           log,
		bot:           bot,
		globalLimiter: rate.NewLimiter(rate.Limit(cfg.MaxGlobalRequestPerSecond), cfg.MaxGlobalRequestPerSecond),
	}
}

// SendMessage delivers text to chatID, waiting for rate limit room. A
// zero chatID falls back to the configured chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts ...interface{}) error {
	if chatID == 0 {
		chatID = c.cfg.ChatID
	}
	if err := c.globalLimiter.Wait(ctx); err != nil {
		c.log.ErrorContext(ctx, "Failed to wait for telegram rate limit", logger.ErrorField(err))
		return err
	}
	if _, err := c.bot.Send(telebot.ChatID(chatID), text, opts...); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}
