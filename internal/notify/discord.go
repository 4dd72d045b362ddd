package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/time/rate"

	domain "github.com/donaldgifford/server-price-alerts/pkg/types"
)

const (
	defaultDiscordAPI = "https://discord.com/api/v10"

	// Discord rejects message content longer than this many characters.
	maxDiscordContent = 2000
)

// DiscordTransport implements Transport with Discord direct messages sent
// by a bot account.
type DiscordTransport struct {
	token   string
	apiBase string
	client  *http.Client
	limiter *rate.Limiter

	mu       sync.Mutex
	channels map[domain.UserID]string
}

// DiscordOption configures a DiscordTransport.
type DiscordOption func(*DiscordTransport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordTransport) {
		d.client = c
	}
}

// WithAPIBase overrides the Discord REST API base URL.
func WithAPIBase(u string) DiscordOption {
	return func(d *DiscordTransport) {
		d.apiBase = strings.TrimRight(u, "/")
	}
}

// WithRateLimit caps outgoing API calls to perSecond with the given burst.
func WithRateLimit(perSecond float64, burst int) DiscordOption {
	return func(d *DiscordTransport) {
		if perSecond > 0 {
			d.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
		}
	}
}

// NewDiscordTransport creates a DiscordTransport authenticating with a bot token.
func NewDiscordTransport(token string, opts ...DiscordOption) *DiscordTransport {
	d := &DiscordTransport{
		token:    token,
		apiBase:  defaultDiscordAPI,
		client:   http.DefaultClient,
		channels: make(map[domain.UserID]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type discordDMRequest struct {
	RecipientID string `json:"recipient_id"`
}

type discordChannel struct {
	ID string `json:"id"`
}

type discordMessage struct {
	Content string `json:"content"`
}

// SendMessage opens (or reuses) the DM channel with userID and posts text.
func (d *DiscordTransport) SendMessage(ctx context.Context, userID domain.UserID, text string) error {
	channelID, err := d.dmChannel(ctx, userID)
	if err != nil {
		return err
	}

	text = truncateRunes(text, maxDiscordContent)
	if err := d.post(ctx, "/channels/"+channelID+"/messages", discordMessage{Content: text}, nil); err != nil {
		return fmt.Errorf("sending message to %s: %w", userID, err)
	}
	return nil
}

func (d *DiscordTransport) dmChannel(ctx context.Context, userID domain.UserID) (string, error) {
	d.mu.Lock()
	id, ok := d.channels[userID]
	d.mu.Unlock()
	if ok {
		return id, nil
	}

	var ch discordChannel
	if err := d.post(ctx, "/users/@me/channels", discordDMRequest{RecipientID: string(userID)}, &ch); err != nil {
		return "", fmt.Errorf("opening DM channel with %s: %w", userID, err)
	}
	if ch.ID == "" {
		return "", fmt.Errorf("%w: discord returned no channel for %s", ErrDelivery, userID)
	}

	d.mu.Lock()
	d.channels[userID] = ch.ID
	d.mu.Unlock()
	return ch.ID, nil
}

func (d *DiscordTransport) post(ctx context.Context, path string, payload, out any) error {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter wait: %w", ErrDelivery, err)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.apiBase+path,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bot "+d.token)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: discord rate limited (429)", ErrDelivery)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("%w: discord returned %d (body unreadable)", ErrDelivery, resp.StatusCode)
		}
		return fmt.Errorf("%w: discord returned %d: %s", ErrDelivery, resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding discord response: %w", ErrDelivery, err)
	}
	return nil
}

// truncateRunes cuts s to at most n characters without splitting one.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for range n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}
