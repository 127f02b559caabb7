package qbittorrent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GetTorrents retrieves torrents from qBittorrent, optionally narrowed by the
// given options.
func (c *Client) GetTorrents(ctx context.Context, opts TorrentListOptions) ([]TorrentInfo, error) {
	body, err := c.get(ctx, "/torrents/info", opts.values())
	if err != nil {
		return nil, fmt.Errorf("failed to get torrents: %w", err)
	}

	var torrents []TorrentInfo
	if err := json.Unmarshal(body, &torrents); err != nil {
		return nil, fmt.Errorf("failed to parse torrent list: %w", err)
	}

	c.logger.Debug().Int("count", len(torrents)).Msg("Retrieved torrents from qBittorrent")
	return torrents, nil
}

// GetTorrentTrackers retrieves the trackers of a torrent.
func (c *Client) GetTorrentTrackers(ctx context.Context, hash string) ([]TorrentTracker, error) {
	params := url.Values{}
	params.Set("hash", hash)

	body, err := c.get(ctx, "/torrents/trackers", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get trackers for %s: %w", hash, err)
	}

	var trackers []TorrentTracker
	if err := json.Unmarshal(body, &trackers); err != nil {
		return nil, fmt.Errorf("failed to parse tracker list: %w", err)
	}

	return trackers, nil
}

// AddTorrent submits new torrents from files and/or URLs as a multipart
// upload. Success only means the WebUI accepted the request; URL additions in
// particular are not always honored, so callers that need certainty should
// check the listing afterwards.
func (c *Client) AddTorrent(ctx context.Context, opts *TorrentAddOptions) error {
	var buf bytes.Buffer
	contentType, err := opts.encode(&buf)
	if err != nil {
		return fmt.Errorf("failed to encode torrent upload: %w", err)
	}

	if _, err := c.doRequest(ctx, http.MethodPost, "/torrents/add", nil, &buf, contentType); err != nil {
		return fmt.Errorf("failed to add torrent: %w", err)
	}

	c.logger.Debug().
		Int("files", len(opts.Files)).
		Int("urls", len(opts.URLs)).
		Msg("Submitted torrent upload to qBittorrent")
	return nil
}

// DeleteTorrents removes the given torrents. When deleteFiles is set the
// downloaded data is removed as well, for all of the given hashes.
func (c *Client) DeleteTorrents(ctx context.Context, hashes []string, deleteFiles bool) error {
	if len(hashes) == 0 {
		return fmt.Errorf("at least one torrent hash is required")
	}

	form := url.Values{}
	form.Set("hashes", strings.Join(hashes, "|"))
	form.Set("deleteFiles", strconv.FormatBool(deleteFiles))

	if _, err := c.postForm(ctx, "/torrents/delete", form); err != nil {
		return fmt.Errorf("failed to delete torrents: %w", err)
	}

	c.logger.Debug().
		Int("count", len(hashes)).
		Bool("delete_files", deleteFiles).
		Msg("Deleted torrents from qBittorrent")
	return nil
}

// AddTrackers adds tracker URLs to a torrent.
func (c *Client) AddTrackers(ctx context.Context, hash string, urls ...string) error {
	if len(urls) == 0 {
		return fmt.Errorf("at least one tracker URL is required")
	}

	form := url.Values{}
	form.Set("hash", hash)
	form.Set("urls", strings.Join(urls, "\n"))

	if _, err := c.postForm(ctx, "/torrents/addTrackers", form); err != nil {
		return fmt.Errorf("failed to add trackers to %s: %w", hash, err)
	}

	return nil
}

// EditTracker replaces a tracker URL on a torrent.
func (c *Client) EditTracker(ctx context.Context, hash, origURL, newURL string) error {
	form := url.Values{}
	form.Set("hash", hash)
	form.Set("origUrl", origURL)
	form.Set("newUrl", newURL)

	if _, err := c.postForm(ctx, "/torrents/editTracker", form); err != nil {
		return fmt.Errorf("failed to edit tracker on %s: %w", hash, err)
	}

	return nil
}

// RemoveTrackers removes tracker URLs from a torrent.
func (c *Client) RemoveTrackers(ctx context.Context, hash string, urls ...string) error {
	if len(urls) == 0 {
		return fmt.Errorf("at least one tracker URL is required")
	}

	form := url.Values{}
	form.Set("hash", hash)
	form.Set("urls", strings.Join(urls, "|"))

	if _, err := c.postForm(ctx, "/torrents/removeTrackers", form); err != nil {
		return fmt.Errorf("failed to remove trackers from %s: %w", hash, err)
	}

	return nil
}
