package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/require"
)

// capturedChatRequest mirrors the fields of the chat completion request
// this package is expected to set.
type capturedChatRequest struct {
	Model          string  `json:"model"`
	MaxTokens      int     `json:"max_tokens"`
	Temperature    float64 `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// newCapturingClient serves canned completion content from a local
// endpoint and records the last request body.
func newCapturingClient(t *testing.T, content string) (*Client, *capturedChatRequest) {
	t.Helper()

	captured := &capturedChatRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Errorf("decoding chat request: %v", err)
		}

		reply := map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 0,
			"model":   "gpt-4o",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(reply); err != nil {
			t.Errorf("encoding chat response: %v", err)
		}
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-key", option.WithBaseURL(server.URL), option.WithMaxRetries(0))
	return client, captured
}

func TestGenerateNexusResponseRequestsJSONObjectFormat(t *testing.T) {
	client, captured := newCapturingClient(t, `{"response":"All systems nominal.","emotion":"calm"}`)

	resp, err := client.GenerateNexusResponse(context.Background(), "status report", Personality{UserName: "Alice"})
	require.NoError(t, err)
	require.Equal(t, "All systems nominal.", resp.Response)
	require.Equal(t, "calm", resp.Emotion)

	// a reply fenced in markdown would fail to unmarshal, so the
	// request must pin the model to bare JSON output
	require.Equal(t, "json_object", captured.ResponseFormat.Type)
	require.Equal(t, 500, captured.MaxTokens)
	require.InDelta(t, 0.7, captured.Temperature, 1e-9)
	require.NotEmpty(t, captured.Messages)
	require.Equal(t, "system", captured.Messages[0].Role)
}

func TestGenerateNexusResponseDefaultsEmptyFields(t *testing.T) {
	client, _ := newCapturingClient(t, `{}`)

	resp, err := client.GenerateNexusResponse(context.Background(), "hello", Personality{UserName: "Alice"})
	require.NoError(t, err)
	require.Equal(t, "I'm processing your request...", resp.Response)
	require.Equal(t, "calm", resp.Emotion)
}

func TestGenerateNexusResponseReplaysHistoryWindow(t *testing.T) {
	client, captured := newCapturingClient(t, `{"response":"Noted.","emotion":"calm"}`)

	history := make([]ChatTurn, 0, 14)
	for i := 0; i < 7; i++ {
		history = append(history,
			ChatTurn{Role: "user", Content: "question"},
			ChatTurn{Role: "assistant", Content: "answer"},
		)
	}

	_, err := client.GenerateNexusResponse(context.Background(), "latest", Personality{UserName: "Alice", History: history})
	require.NoError(t, err)

	// system prompt + last 10 history turns + current message
	require.Len(t, captured.Messages, 12)
	require.Equal(t, "latest", captured.Messages[len(captured.Messages)-1].Content)
}

func TestAnalyzeVoiceprintRequestsJSONAndClampsConfidence(t *testing.T) {
	client, captured := newCapturingClient(t, `{"characteristics":"low steady pitch","confidence":1.7}`)

	characteristics, confidence, err := client.AnalyzeVoiceprint(context.Background(), "sample")
	require.NoError(t, err)
	require.Equal(t, "low steady pitch", characteristics)
	require.Equal(t, 1.0, confidence)
	require.Equal(t, "json_object", captured.ResponseFormat.Type)
}
