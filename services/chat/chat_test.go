package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteDisabledWithoutKey(t *testing.T) {
	svc := NewService("", "https://api.openai.test/v1", "gpt-4o-mini")

	assert.False(t, svc.Enabled())

	_, err := svc.Complete(nil, "Bonjour")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestCompleteSendsSystemPromptAndHistory(t *testing.T) {
	var received struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Voici la réponse."}}]}`))
	}))
	defer server.Close()

	svc := NewService("sk-test", server.URL+"/v1", "gpt-4o-mini")

	history := []Turn{
		{Role: "user", Content: "Comment vérifier la carrosserie ?"},
		{Role: "assistant", Content: "Commencez par l'épaisseur de peinture."},
	}

	reply, err := svc.Complete(history, "Et pour le moteur ?")
	require.NoError(t, err)
	assert.Equal(t, "Voici la réponse.", reply)

	assert.Equal(t, "gpt-4o-mini", received.Model)
	require.Len(t, received.Messages, 4)
	assert.Equal(t, "system", received.Messages[0].Role)
	assert.Equal(t, "user", received.Messages[1].Role)
	assert.Equal(t, "assistant", received.Messages[2].Role)
	assert.Equal(t, "user", received.Messages[3].Role)
	assert.Equal(t, "Et pour le moteur ?", received.Messages[3].Content)
}

func TestCompleteSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	svc := NewService("sk-test", server.URL+"/v1", "gpt-4o-mini")

	_, err := svc.Complete(nil, "Bonjour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc := NewService("sk-test", server.URL+"/v1", "gpt-4o-mini")

	_, err := svc.Complete(nil, "Bonjour")
	assert.Error(t, err)
}
