package daily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the Daily.co REST API endpoint.
const DefaultBaseURL = "https://api.daily.co/v1"

// RoomTTL is the provider-enforced lifetime of rooms and meeting tokens.
const RoomTTL = 4 * time.Hour

// MaxParticipants caps the number of participants per room.
const MaxParticipants = 20

// APIError carries a non-2xx response from the Daily API. The body is kept
// verbatim so callers can forward the provider's own error payload.
type APIError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("daily API error (HTTP %d): %s", e.Status, e.Body)
}

// Room is the subset of the provider's room payload the proxy exposes.
type Room struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Client talks to the Daily.co REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient constructs a Daily client. An empty baseURL selects the public
// API endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// Configured reports whether a provider credential is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

type roomProperties struct {
	EnableRecording   string `json:"enable_recording"`
	EnableChat        bool   `json:"enable_chat"`
	EnableScreenshare bool   `json:"enable_screenshare"`
	Exp               int64  `json:"exp"`
	MaxParticipants   int    `json:"max_participants"`
	StartAudioOff     bool   `json:"start_audio_off"`
	StartVideoOff     bool   `json:"start_video_off"`
	Lang              string `json:"lang"`
}

type createRoomRequest struct {
	Name       string         `json:"name"`
	Privacy    string         `json:"privacy"`
	Properties roomProperties `json:"properties"`
}

// CreateRoom provisions a private room with the fixed meeting policy: cloud
// recording, chat and screenshare enabled, a four hour expiry, a twenty
// participant cap, French locale, audio and video on by default.
func (c *Client) CreateRoom(ctx context.Context, name string) (Room, error) {
	payload := createRoomRequest{
		Name:    name,
		Privacy: "private",
		Properties: roomProperties{
			EnableRecording:   "cloud",
			EnableChat:        true,
			EnableScreenshare: true,
			Exp:               c.now().Add(RoomTTL).Unix(),
			MaxParticipants:   MaxParticipants,
			StartAudioOff:     false,
			StartVideoOff:     false,
			Lang:              "fr",
		},
	}

	body, err := c.post(ctx, "/rooms", payload)
	if err != nil {
		return Room{}, err
	}

	var room Room
	if err := json.Unmarshal(body, &room); err != nil {
		return Room{}, fmt.Errorf("parsing room response: %w", err)
	}
	return room, nil
}

type tokenProperties struct {
	RoomName        string `json:"room_name"`
	UserName        string `json:"user_name"`
	IsOwner         bool   `json:"is_owner"`
	EnableRecording string `json:"enable_recording,omitempty"`
	Exp             int64  `json:"exp"`
}

type createTokenRequest struct {
	Properties tokenProperties `json:"properties"`
}

// CreateMeetingToken mints a token bound to roomName for userName. Owners
// are granted cloud recording capability, guests are not. The provider
// payload is returned verbatim.
func (c *Client) CreateMeetingToken(ctx context.Context, roomName, userName string, isOwner bool) (json.RawMessage, error) {
	props := tokenProperties{
		RoomName: roomName,
		UserName: userName,
		IsOwner:  isOwner,
		Exp:      c.now().Add(RoomTTL).Unix(),
	}
	if isOwner {
		props.EnableRecording = "cloud"
	}

	return c.post(ctx, "/meeting-tokens", createTokenRequest{Properties: props})
}

// ListRecordings returns the provider's recording list for a room, verbatim.
func (c *Client) ListRecordings(ctx context.Context, roomName string) (json.RawMessage, error) {
	endpoint := c.baseURL + "/recordings?room_name=" + url.QueryEscape(roomName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Daily API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading Daily response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
