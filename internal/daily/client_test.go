package daily

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", server.URL)
	client.now = fixedNow
	return client
}

func TestClientConfigured(t *testing.T) {
	if !NewClient("key", "").Configured() {
		t.Fatalf("expected client with key to be configured")
	}
	if NewClient("", "").Configured() {
		t.Fatalf("expected client without key to be unconfigured")
	}
}

func TestCreateRoomSendsMeetingPolicy(t *testing.T) {
	var captured map[string]any
	var authHeader string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rooms" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"url": "https://x.daily.co/rp-abc123", "name": "rp-abc123"})
	})

	room, err := client.CreateRoom(context.Background(), "rp-abc123")
	if err != nil {
		t.Fatalf("CreateRoom returned error: %v", err)
	}
	if room.URL != "https://x.daily.co/rp-abc123" || room.Name != "rp-abc123" {
		t.Fatalf("unexpected room: %+v", room)
	}
	if authHeader != "Bearer test-key" {
		t.Fatalf("unexpected Authorization header: %q", authHeader)
	}
	if captured["name"] != "rp-abc123" || captured["privacy"] != "private" {
		t.Fatalf("unexpected top-level payload: %+v", captured)
	}

	props, ok := captured["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties object, got %+v", captured["properties"])
	}
	if props["enable_recording"] != "cloud" {
		t.Fatalf("expected cloud recording, got %v", props["enable_recording"])
	}
	if props["enable_chat"] != true || props["enable_screenshare"] != true {
		t.Fatalf("expected chat and screenshare enabled, got %+v", props)
	}
	if props["start_audio_off"] != false || props["start_video_off"] != false {
		t.Fatalf("expected audio and video on by default, got %+v", props)
	}
	if props["max_participants"] != float64(MaxParticipants) {
		t.Fatalf("unexpected participant cap: %v", props["max_participants"])
	}
	if props["lang"] != "fr" {
		t.Fatalf("expected French locale, got %v", props["lang"])
	}
	wantExp := float64(fixedNow().Add(RoomTTL).Unix())
	if props["exp"] != wantExp {
		t.Fatalf("expected expiry %v, got %v", wantExp, props["exp"])
	}
}

func TestCreateMeetingTokenOwnerGetsRecording(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meeting-tokens" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		w.Write([]byte(`{"token":"jwt-value"}`))
	})

	payload, err := client.CreateMeetingToken(context.Background(), "rp-abc123", "Alice", true)
	if err != nil {
		t.Fatalf("CreateMeetingToken returned error: %v", err)
	}
	if string(payload) != `{"token":"jwt-value"}` {
		t.Fatalf("expected provider payload verbatim, got %s", payload)
	}

	props := captured["properties"].(map[string]any)
	if props["room_name"] != "rp-abc123" || props["user_name"] != "Alice" {
		t.Fatalf("unexpected token properties: %+v", props)
	}
	if props["is_owner"] != true || props["enable_recording"] != "cloud" {
		t.Fatalf("expected owner to get cloud recording, got %+v", props)
	}
}

func TestCreateMeetingTokenGuestGetsNoRecording(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.Write([]byte(`{"token":"jwt-value"}`))
	})

	if _, err := client.CreateMeetingToken(context.Background(), "rp-abc123", "Bob", false); err != nil {
		t.Fatalf("CreateMeetingToken returned error: %v", err)
	}

	props := captured["properties"].(map[string]any)
	if props["is_owner"] != false {
		t.Fatalf("expected guest token, got %+v", props)
	}
	if _, present := props["enable_recording"]; present {
		t.Fatalf("guest token must not carry recording capability, got %+v", props)
	}
}

func TestListRecordingsFiltersByRoom(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/recordings" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("room_name"); got != "rp-abc123" {
			t.Fatalf("unexpected room_name query: %q", got)
		}
		w.Write([]byte(`{"total_count":0,"data":[]}`))
	})

	payload, err := client.ListRecordings(context.Background(), "rp-abc123")
	if err != nil {
		t.Fatalf("ListRecordings returned error: %v", err)
	}
	if string(payload) != `{"total_count":0,"data":[]}` {
		t.Fatalf("expected provider payload verbatim, got %s", payload)
	}
}

func TestAPIErrorCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := client.CreateRoom(context.Background(), "rp-abc123")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Fatalf("unexpected status: %d", apiErr.Status)
	}
	if apiErr.Body != `{"error":"rate limited"}` {
		t.Fatalf("unexpected body: %q", apiErr.Body)
	}
}
