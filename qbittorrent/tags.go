package qbittorrent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// GetTags retrieves all tags known to the client.
func (c *Client) GetTags(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/torrents/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	var tags []string
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse tag list: %w", err)
	}

	return tags, nil
}

// CreateTags creates one or more tags.
func (c *Client) CreateTags(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return fmt.Errorf("at least one tag is required")
	}

	form := url.Values{}
	form.Set("tags", strings.Join(tags, ","))

	if _, err := c.postForm(ctx, "/torrents/createTags", form); err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}

	c.logger.Debug().Strs("tags", tags).Msg("Created tags in qBittorrent")
	return nil
}

// DeleteTags deletes one or more tags. The tags are removed from all torrents
// carrying them.
func (c *Client) DeleteTags(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return fmt.Errorf("at least one tag is required")
	}

	form := url.Values{}
	form.Set("tags", strings.Join(tags, ","))

	if _, err := c.postForm(ctx, "/torrents/deleteTags", form); err != nil {
		return fmt.Errorf("failed to delete tags: %w", err)
	}

	c.logger.Debug().Strs("tags", tags).Msg("Deleted tags from qBittorrent")
	return nil
}
