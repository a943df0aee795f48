package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sorta/cmd/internal/domain/entity"
	"time"

	"github.com/labstack/gommon/log"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"

	// Page titles are capped; the full content always goes verbatim
	// into the body property.
	titleMaxRunes = 100

	// Every synced page starts in this status.
	initialStatus = "Neu"
)

var (
	// ErrNotInitialized is returned when a sync is attempted before
	// credentials were configured. It is distinguishable from transport
	// errors so callers can fail fast instead of hitting the network.
	ErrNotInitialized = errors.New("notion client not initialized")
)

// Client is a stateless protocol client for the Notion REST API. It holds
// only the injected credential pair and is safe to call concurrently for
// different notes.
type Client struct {
	apiKey     string
	databaseID string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, databaseID string) *Client {
	return &Client{
		apiKey:     apiKey,
		databaseID: databaseID,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// TestConnection performs a lightweight read of the target database's
// metadata. Any transport or auth problem yields false, never an error:
// callers treat connectivity as a boolean signal.
func (c *Client) TestConnection(ctx context.Context) bool {
	if c.apiKey == "" || c.databaseID == "" {
		return false
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/v1/databases/"+c.databaseID, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("notion connection test failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Errorf("notion connection test failed: status %d", resp.StatusCode)
		return false
	}
	return true
}

// SyncNote creates one page in the target database from the given note and
// returns the remote-assigned page id.
//
// Category ids (not display names) are sent into the multi-select field,
// matching what the mobile client has always done. See the pinning test
// before changing this.
func (c *Client) SyncNote(ctx context.Context, note *entity.Note) (string, error) {
	if c.apiKey == "" || c.databaseID == "" {
		return "", ErrNotInitialized
	}

	payload := &createPageRequest{
		Parent: parent{DatabaseID: c.databaseID},
		Properties: pageProperties{
			Title:      titleProperty{Title: []richText{{Text: textContent{Content: truncateTitle(note.Content)}}}},
			Body:       richTextProperty{RichText: []richText{{Text: textContent{Content: note.Content}}}},
			Categories: multiSelectProperty{MultiSelect: toSelectOptions(note.Categories)},
			Priority:   selectProperty{Select: selectOption{Name: string(note.Priority)}},
			CreatedAt:  dateProperty{Date: dateValue{Start: note.Timestamp}},
			Status:     selectProperty{Select: selectOption{Name: initialStatus}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/v1/pages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("notion page create failed: status %d: %s", resp.StatusCode, msg)
	}

	var page createPageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return "", err
	}
	return page.ID, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
	return req, nil
}

func truncateTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleMaxRunes {
		return content
	}
	return string(runes[:titleMaxRunes]) + "..."
}

func toSelectOptions(ids []string) []selectOption {
	options := make([]selectOption, len(ids))
	for i, id := range ids {
		options[i] = selectOption{Name: id}
	}
	return options
}
