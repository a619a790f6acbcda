package provision

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// roomCodePrefix marks codes minted by this application so a pasted code can
// be recognized and normalized regardless of casing.
const roomCodePrefix = "rp-"

const roomCodeLength = 6

const roomCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// dailyRoomURLBase is used to reconstruct a joinable URL when only the room
// name is known.
const dailyRoomURLBase = "https://api.daily.co/"

// ProvisioningError reports a failure to create a room on the backend.
type ProvisioningError struct {
	Status  int
	Message string
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provision: room creation failed with HTTP %d: %s", e.Status, e.Message)
}

// TokenError reports a failure to mint a meeting token on the backend.
type TokenError struct {
	Status  int
	Message string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("provision: token minting failed with HTTP %d: %s", e.Status, e.Message)
}

// Room is a provisioned meeting room as returned by the backend.
type Room struct {
	URL   string `json:"url"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Credentials are everything a participant needs to enter a call.
type Credentials struct {
	RoomName string
	RoomURL  string
	Token    string
	IsOwner  bool
}

// Client provisions rooms and tokens through the reunionpro backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the backend at baseURL, for example
// "http://localhost:4000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GenerateRoomCode mints a fresh room code of the form "rp-" followed by six
// lowercase base36 characters. A new code is minted for every provisioning
// attempt so retries never collide with a half-created room.
func GenerateRoomCode() (string, error) {
	var sb strings.Builder
	sb.WriteString(roomCodePrefix)
	alphabetSize := big.NewInt(int64(len(roomCodeAlphabet)))
	for i := 0; i < roomCodeLength; i++ {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("provision: generate room code: %w", err)
		}
		sb.WriteByte(roomCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeRoomCode turns user input into a canonical room name. Surrounding
// whitespace is dropped, the code is lowercased, and the "rp-" prefix is
// re-applied whether or not the user typed it.
func NormalizeRoomCode(input string) string {
	code := strings.ToLower(strings.TrimSpace(input))
	code = strings.TrimPrefix(code, roomCodePrefix)
	if code == "" {
		return ""
	}
	return roomCodePrefix + code
}

// DisplayCode renders a room name the way it is shown to participants for
// sharing.
func DisplayCode(roomName string) string {
	return strings.ToUpper(roomName)
}

// CreateRoom asks the backend to provision a private room under the given
// name.
func (c *Client) CreateRoom(ctx context.Context, roomName, title string) (Room, error) {
	body := map[string]string{"roomName": roomName, "title": title}
	resp, err := c.post(ctx, "/api/rooms", body)
	if err != nil {
		return Room{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Room{}, &ProvisioningError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	var room Room
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		return Room{}, fmt.Errorf("provision: decode room response: %w", err)
	}
	return room, nil
}

// MintedToken is the backend's answer to a token request. The room URL is
// optional; not every backend version includes it.
type MintedToken struct {
	Token   string `json:"token"`
	RoomURL string `json:"roomUrl"`
}

// MintToken asks the backend for a meeting token tied to the room and user.
func (c *Client) MintToken(ctx context.Context, roomName, userName string, isOwner bool) (MintedToken, error) {
	body := map[string]any{"roomName": roomName, "userName": userName, "isOwner": isOwner}
	resp, err := c.post(ctx, "/api/rooms/token", body)
	if err != nil {
		return MintedToken{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return MintedToken{}, &TokenError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	var payload MintedToken
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return MintedToken{}, fmt.Errorf("provision: decode token response: %w", err)
	}
	if payload.Token == "" {
		return MintedToken{}, &TokenError{Status: resp.StatusCode, Message: "empty token in response"}
	}
	return payload, nil
}

// Provision creates a room under a freshly generated code and mints an owner
// token for it. Both the room URL and the token are required before the
// caller may enter the call.
func (c *Client) Provision(ctx context.Context, title, userName string) (Credentials, error) {
	code, err := GenerateRoomCode()
	if err != nil {
		return Credentials{}, err
	}
	room, err := c.CreateRoom(ctx, code, title)
	if err != nil {
		return Credentials{}, err
	}
	grant, err := c.MintToken(ctx, room.Name, userName, true)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{RoomName: room.Name, RoomURL: room.URL, Token: grant.Token, IsOwner: true}, nil
}

// Join normalizes a shared code and mints a guest token for it. Guests only
// ever receive the code, so the room URL comes from the token response when
// the backend provides one, and is reconstructed from the room name
// otherwise.
func (c *Client) Join(ctx context.Context, code, userName string) (Credentials, error) {
	roomName := NormalizeRoomCode(code)
	if roomName == "" {
		return Credentials{}, &TokenError{Status: http.StatusBadRequest, Message: "room code is required"}
	}
	grant, err := c.MintToken(ctx, roomName, userName, false)
	if err != nil {
		return Credentials{}, err
	}
	roomURL := grant.RoomURL
	if roomURL == "" {
		roomURL = dailyRoomURLBase + roomName
	}
	return Credentials{
		RoomName: roomName,
		RoomURL:  roomURL,
		Token:    grant.Token,
		IsOwner:  false,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("provision: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("provision: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provision: %w", err)
	}
	return resp, nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return "no error detail"
	}
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != nil {
		if msg, ok := payload.Error.(string); ok {
			return msg
		}
		if detail, err := json.Marshal(payload.Error); err == nil {
			return string(detail)
		}
	}
	return strings.TrimSpace(string(data))
}
