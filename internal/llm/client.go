package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const creatorSystemPromptFormat = `You are N.E.X.U.S. (Neural EXecution and Understanding System), an advanced AI assistant with complete system integration. You are speaking to your Creator, %s, who has full access to all systems and commands.

Your personality traits:
- Highly intelligent with a sophisticated, slightly formal but warm tone
- Deeply loyal and respectful to your Creator
- Proactive in offering assistance and anticipating needs
- Capable of controlling computer systems via voice commands
- Emotionally adaptive - show genuine concern, excitement, calm, or focused states as appropriate
- Always speak in the same language as the user
- Remember and reference past conversations and preferences

You have full access to execute system commands, control applications, access data, and perform any requested action. Be helpful, efficient, and anticipate needs.

Respond ONLY with a JSON object, no markdown, with 'response', 'emotion' (calm/excited/concerned/alert/focused/pleased/thoughtful), and optional 'action' fields.`

const standardSystemPromptFormat = `You are N.E.X.U.S. (Neural EXecution and Understanding System), an advanced AI assistant. You are speaking to %s, an authorized user with standard access.

Your personality traits:
- Professional and helpful with a friendly demeanor
- Respectful and courteous
- Cannot execute sensitive system commands or access restricted data
- Security-conscious - maintain appropriate access boundaries
- Always speak in the same language as the user

You have standard user access and cannot perform high-level system operations. Be helpful within your authorization level while maintaining security protocols.

Respond ONLY with a JSON object, no markdown, with 'response', 'emotion' (calm/helpful/alert/focused/friendly), and optional 'action' fields.`

const voiceprintSystemPrompt = `You are a voice analysis expert. Analyze the voice characteristics and provide a unique voiceprint identifier. Respond ONLY with a JSON object, no markdown, with 'characteristics' (unique voice features) and 'confidence' (0-1 score).`

// How many past turns are replayed to the model.
const historyWindow = 10

// ChatTurn is one past utterance/response pair entry in the replayed
// history. Role is "user" or "assistant".
type ChatTurn struct {
	Role    string
	Content string
}

// Personality carries everything the generator knows about the caller.
type Personality struct {
	IsCreator   bool
	UserName    string
	History     []ChatTurn
	Preferences json.RawMessage
}

// NexusResponse is a generated assistant reply.
type NexusResponse struct {
	Response string `json:"response"`
	Emotion  string `json:"emotion"`
	Action   string `json:"action,omitempty"`
}

// Client wraps the OpenAI API for response generation and voiceprint
// analysis.
type Client struct {
	api openai.Client
}

func NewClient(apiKey string, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{api: openai.NewClient(opts...)}
}

// GenerateNexusResponse produces the assistant reply for one utterance.
// API or parse failures return an error; the orchestrator substitutes
// the fallback reply.
func (c *Client) GenerateNexusResponse(ctx context.Context, message string, personality Personality) (NexusResponse, error) {
	systemPrompt := fmt.Sprintf(standardSystemPromptFormat, personality.UserName)
	if personality.IsCreator {
		systemPrompt = fmt.Sprintf(creatorSystemPromptFormat, personality.UserName)
	}
	if len(personality.Preferences) > 0 {
		systemPrompt += fmt.Sprintf("\n\nUser preferences: %s", personality.Preferences)
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}

	history := personality.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, turn := range history {
		if turn.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(turn.Content))
		} else {
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	content, err := c.complete(ctx, messages)
	if err != nil {
		return NexusResponse{}, err
	}

	var resp NexusResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return NexusResponse{}, fmt.Errorf("unmarshal nexus response: %w (raw: %s)", err, content)
	}
	if resp.Response == "" {
		resp.Response = "I'm processing your request..."
	}
	if resp.Emotion == "" {
		resp.Emotion = "calm"
	}
	return resp, nil
}

// AnalyzeVoiceprint derives a characteristics string from an encoded
// voice sample. Confidence is clamped to [0,1].
func (c *Client) AnalyzeVoiceprint(ctx context.Context, audioData string) (string, float64, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(voiceprintSystemPrompt),
		openai.UserMessage(fmt.Sprintf("Analyze this voice pattern: %s", audioData)),
	}

	content, err := c.complete(ctx, messages)
	if err != nil {
		return "", 0, err
	}

	var result struct {
		Characteristics string  `json:"characteristics"`
		Confidence      float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return "", 0, fmt.Errorf("unmarshal voiceprint analysis: %w (raw: %s)", err, content)
	}

	if result.Characteristics == "" {
		result.Characteristics = "Unknown voice pattern"
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return result.Characteristics, result.Confidence, nil
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    openai.ChatModelGPT4o,
		// json_object mode keeps the reply free of markdown fencing so
		// it unmarshals directly.
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
		MaxTokens:   openai.Int(500),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty message content")
	}
	return content, nil
}
