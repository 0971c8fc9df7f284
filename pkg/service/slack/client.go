package slack

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/slack-go/slack"
)

const (
	// DefaultCacheTTL is the default TTL for channel name cache
	DefaultCacheTTL = 45 * time.Second
)

// cacheEntry holds a cached channel name with expiration
type cacheEntry struct {
	name      string
	expiresAt time.Time
}

// client implements Service interface
type client struct {
	api       *slack.Client
	apiURL    string
	channelID string
	cacheTTL  time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// Option is a functional option for client configuration
type Option func(*client)

// WithCacheTTL sets the TTL for channel name cache
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *client) {
		c.cacheTTL = ttl
	}
}

// WithAPIURL points the client at another Slack API endpoint
func WithAPIURL(url string) Option {
	return func(c *client) {
		c.apiURL = url
	}
}

// New creates a new Slack service that shares exports to channelID
func New(token, channelID string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	c := &client{
		channelID: channelID,
		cacheTTL:  DefaultCacheTTL,
		cache:     make(map[string]cacheEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	var apiOpts []slack.Option
	if c.apiURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(c.apiURL))
	}
	c.api = slack.New(token, apiOpts...)

	return c, nil
}

// Share uploads the export file to the configured channel and returns a
// human readable channel reference
func (c *client) Share(ctx context.Context, file *model.ExportFile, comment string) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", goerr.New("export file is empty")
	}

	_, err := c.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Reader:         bytes.NewReader(file.Data),
		FileSize:       len(file.Data),
		Filename:       file.FileName,
		Title:          exportTitle(file),
		InitialComment: comment,
		Channel:        c.channelID,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to upload export to Slack",
			goerr.V("channelID", c.channelID), goerr.V("fileName", file.FileName))
	}

	names, err := c.GetChannelNames(ctx, []string{c.channelID})
	if err != nil {
		return c.channelID, nil
	}
	if name, ok := names[c.channelID]; ok && name != "" {
		return "#" + name, nil
	}
	return c.channelID, nil
}

// GetChannelNames retrieves channel names for the given IDs with caching
func (c *client) GetChannelNames(ctx context.Context, ids []string) (map[string]string, error) {
	result := make(map[string]string)
	var missingIDs []string

	now := time.Now()

	// Check cache first
	c.mu.RLock()
	for _, id := range ids {
		if entry, ok := c.cache[id]; ok && entry.expiresAt.After(now) {
			result[id] = entry.name
		} else {
			missingIDs = append(missingIDs, id)
		}
	}
	c.mu.RUnlock()

	if len(missingIDs) > 0 {
		c.mu.Lock()
		defer c.mu.Unlock()

		for _, id := range missingIDs {
			// Double-check cache after acquiring write lock
			if entry, ok := c.cache[id]; ok && entry.expiresAt.After(now) {
				result[id] = entry.name
				continue
			}

			info, err := c.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
				ChannelID: id,
			})
			if err != nil {
				// The caller falls back to the channel ID
				continue
			}

			result[id] = info.Name
			c.cache[id] = cacheEntry{
				name:      info.Name,
				expiresAt: now.Add(c.cacheTTL),
			}
		}
	}

	return result, nil
}
