package concierge

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func replyWith(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"role":  "model",
					"parts": []map[string]string{{"text": text}},
				}},
			},
		})
	}
}

func TestSendMessage(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		replyWith("Welcome to ArkHive.")(w, r)
	}))
	defer srv.Close()

	s := New(Config{Endpoint: srv.URL, APIKey: "test-key"}, discardLogger())
	reply := s.SendMessage(context.Background(), "Hello")

	assert.Equal(t, "Welcome to ArkHive.", reply)
	require.NotNil(t, got.SystemInstruction)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "ArkHive Concierge")
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "Hello", got.Contents[0].Parts[0].Text)
}

func TestSessionKeepsHistory(t *testing.T) {
	var last generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&last)
		replyWith("Certainly.")(w, r)
	}))
	defer srv.Close()

	s := New(Config{Endpoint: srv.URL, APIKey: "k"}, discardLogger())
	s.SendMessage(context.Background(), "First")
	s.SendMessage(context.Background(), "Second")

	// user, model, user
	require.Len(t, last.Contents, 3)
	assert.Equal(t, "model", last.Contents[1].Role)
	assert.Equal(t, 4, s.History())
}

func TestMissingKeyFailsSoft(t *testing.T) {
	s := New(Config{Endpoint: "http://unused"}, discardLogger())

	assert.Equal(t, replyOffline, s.SendMessage(context.Background(), "Hi"))
}

func TestTransportFailureFailsSoft(t *testing.T) {
	srv := httptest.NewServer(replyWith("x"))
	srv.Close() // unreachable

	s := New(Config{Endpoint: srv.URL, APIKey: "k"}, discardLogger())

	assert.Equal(t, replyUnreachable, s.SendMessage(context.Background(), "Hi"))
}

func TestEmptyCandidatesFailsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	s := New(Config{Endpoint: srv.URL, APIKey: "k"}, discardLogger())

	assert.Equal(t, replyBadRequest, s.SendMessage(context.Background(), "Hi"))
}

func TestClosedSessionAnswersOffline(t *testing.T) {
	s := New(Config{Endpoint: "http://unused", APIKey: "k"}, discardLogger())
	s.Close()

	assert.Equal(t, replyOffline, s.SendMessage(context.Background(), "Hi"))
	assert.Equal(t, 0, s.History())
}
