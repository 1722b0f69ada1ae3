package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// Client publishes session events on a Redis pub/sub channel. Nothing is stored.
type Client struct {
	client  *redis.Client
	channel string
}

func New(client *redis.Client, channel string) *Client {
	return &Client{
		client:  client,
		channel: channel,
	}
}

// Publish - sends the event to every current subscriber of the channel.
func (that *Client) Publish(ctx context.Context, event *entity.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}

func (that *Client) Channel() string {
	return that.channel
}
