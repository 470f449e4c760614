// Package steam fetches a user's public wishlist from the storefront API.
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	retry "github.com/avast/retry-go/v4"

	appLog "swcal/internal/log"
	"swcal/internal/model"
)

const (
	defaultBaseURL = "https://store.steampowered.com"
	defaultTimeout = 15 * time.Second

	// The storefront serves at most this many items per wishlist page.
	itemsPerPage = 100

	fetchAttempts = 3
)

// ErrPrivateProfile is returned when the wishlist owner's profile is not
// public; the API signals this with a "success" key instead of item data.
var ErrPrivateProfile = errors.New("steam: profile is private or wishlist unavailable")

// ClientOptions configures a wishlist Client. Zero values take defaults.
type ClientOptions struct {
	// BaseURL overrides the storefront endpoint (used by tests).
	BaseURL string

	// Locale selects the language of the release strings ("english",
	// "schinese", ...). It must match the normalizer's vocabulary.
	Locale string

	// PageDelay is the pause between page fetches, to stay polite.
	PageDelay time.Duration

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Client fetches wishlist pages.
type Client struct {
	httpClient *http.Client
	baseURL    string
	locale     string
	pageDelay  time.Duration
}

// NewClient creates a wishlist client.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Locale == "" {
		opts.Locale = "english"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		locale:     opts.Locale,
		pageDelay:  opts.PageDelay,
	}
}

// apiItem mirrors one wishlist entry in the API response.
type apiItem struct {
	Name          string   `json:"name"`
	ReleaseDate   unixTime `json:"release_date"`
	ReleaseString string   `json:"release_string"`
	Type          string   `json:"type"`
	Prerelease    int      `json:"prerelease"`
}

// unixTime decodes the API's release_date field, which arrives either as a
// number or as a string-wrapped number depending on the item.
type unixTime struct {
	t time.Time
}

func (u *unixTime) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" || string(data) == `""` || string(data) == "false" {
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Unknown shape; treat as absent rather than failing the page.
		return nil
	}
	u.t = time.Unix(int64(sec), 0).UTC()
	return nil
}

// Fetch retrieves up to maxPages pages (100 items each) of the account's
// wishlist. account is either a numeric steamid64 or a vanity profile name.
// Any page failure is fatal: the caller gets either the complete wishlist
// or an error.
func (c *Client) Fetch(ctx context.Context, account string, maxPages int) ([]model.WishlistItem, error) {
	if account == "" {
		return nil, errors.New("steam: account is empty")
	}
	if maxPages <= 0 {
		maxPages = 1
	}

	endpoint := c.wishlistURL(account)
	items := make([]model.WishlistItem, 0, itemsPerPage)

	for page := 0; page < maxPages; page++ {
		if page > 0 && c.pageDelay > 0 {
			if err := sleepCtx(ctx, c.pageDelay); err != nil {
				return nil, err
			}
		}

		pageItems, err := c.fetchPage(ctx, endpoint, page)
		if err != nil {
			return nil, err
		}
		if len(pageItems) == 0 {
			// No more remaining items.
			break
		}
		items = append(items, pageItems...)

		appLog.Debug("wishlist page fetched", "page", page, "items", len(pageItems))
	}

	appLog.Info("wishlist fetched", "account", account, "items", len(items))
	return items, nil
}

func (c *Client) wishlistURL(account string) string {
	if isNumeric(account) {
		return c.baseURL + "/wishlist/profiles/" + url.PathEscape(account) + "/wishlistdata/"
	}
	return c.baseURL + "/wishlist/id/" + url.PathEscape(account) + "/wishlistdata/"
}

// fetchPage retrieves and decodes a single wishlist page, retrying
// transport errors and 5xx responses with backoff.
func (c *Client) fetchPage(ctx context.Context, endpoint string, page int) ([]model.WishlistItem, error) {
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			q := req.URL.Query()
			q.Set("l", c.locale)
			q.Set("p", strconv.Itoa(page))
			req.URL.RawQuery = q.Encode()

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusOK:
				body, err = io.ReadAll(resp.Body)
				return err
			case resp.StatusCode >= 500:
				return fmt.Errorf("steam: server error: %s", resp.Status)
			default:
				return retry.Unrecoverable(fmt.Errorf("steam: unexpected status: %s", resp.Status))
			}
		},
		retry.Context(ctx),
		retry.Attempts(fetchAttempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("steam: fetch page %d: %w", page, err)
	}

	return decodePage(body)
}

func decodePage(body []byte) ([]model.WishlistItem, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("steam: decode wishlist page: %w", err)
	}
	if _, ok := raw["success"]; ok {
		return nil, ErrPrivateProfile
	}
	if len(raw) == 0 {
		return nil, nil
	}

	items := make([]model.WishlistItem, 0, len(raw))
	for appID, msg := range raw {
		var it apiItem
		if err := json.Unmarshal(msg, &it); err != nil {
			return nil, fmt.Errorf("steam: decode item %s: %w", appID, err)
		}
		items = append(items, model.WishlistItem{
			AppID:         appID,
			Name:          it.Name,
			ReleaseString: it.ReleaseString,
			ReleaseDate:   it.ReleaseDate.t,
			DLC:           it.Type == "DLC",
			Prerelease:    it.Prerelease != 0,
		})
	}

	// JSON object order is not observable through a Go map; sort by app id
	// so repeated runs see the same item order.
	sort.Slice(items, func(i, j int) bool {
		return appIDLess(items[i].AppID, items[j].AppID)
	})
	return items, nil
}

func appIDLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
