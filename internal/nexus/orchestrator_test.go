package nexus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"NexusAssistant_VoiceProject/internal/llm"
	"NexusAssistant_VoiceProject/internal/models"
	"NexusAssistant_VoiceProject/internal/storage"
	"NexusAssistant_VoiceProject/internal/voice"
)

// fakeGenerator records what the orchestrator asked for and replies
// with a canned response or error.
type fakeGenerator struct {
	response    llm.NexusResponse
	err         error
	lastMessage string
	lastPersona llm.Personality
	calls       int
}

func (g *fakeGenerator) GenerateNexusResponse(_ context.Context, message string, personality llm.Personality) (llm.NexusResponse, error) {
	g.calls++
	g.lastMessage = message
	g.lastPersona = personality
	return g.response, g.err
}

func newTestOrchestrator(t *testing.T, generator ResponseGenerator) (*Orchestrator, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewOrchestrator(store, generator, voice.NewExecutor(time.Second)), store
}

func createUser(t *testing.T, store *storage.Store, username, fullName string) models.User {
	t.Helper()
	user, err := store.CreateUser(username, "hash", fullName)
	require.NoError(t, err)
	return user
}

func TestChatTurnGeneratedAndPersisted(t *testing.T) {
	generator := &fakeGenerator{response: llm.NexusResponse{Response: "Hello, Alice.", Emotion: "happy"}}
	orchestrator, store := newTestOrchestrator(t, generator)
	user := createUser(t, store, "alice", "Alice Doe")

	result := orchestrator.ProcessMessage(context.Background(), user, "how are you today", true)

	require.Equal(t, "Hello, Alice.", result.Response)
	require.Equal(t, "happy", result.Emotion)
	require.Nil(t, result.CommandResult)
	require.Equal(t, "how are you today", generator.lastMessage)
	require.Equal(t, "Alice Doe", generator.lastPersona.UserName)
	require.False(t, generator.lastPersona.IsCreator)

	history, err := store.GetConversationHistory(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "how are you today", history[0].Message)
	require.Equal(t, "Hello, Alice.", history[0].Response)
	require.True(t, history[0].IsVoiceActivated)

	var turnContext map[string]interface{}
	require.NoError(t, json.Unmarshal(history[0].Context, &turnContext))
	require.Equal(t, "happy", turnContext["emotion"])
	require.Equal(t, false, turnContext["systemCommand"])
}

func TestGeneratorFailureFallsBack(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("upstream down")}
	orchestrator, store := newTestOrchestrator(t, generator)
	user := createUser(t, store, "alice", "")

	result := orchestrator.ProcessMessage(context.Background(), user, "hello", false)

	require.Equal(t, "I'm experiencing some technical difficulties. Please try again.", result.Response)
	require.Equal(t, "alert", result.Emotion)

	// the turn is still logged with the fallback reply
	history, err := store.GetConversationHistory(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, result.Response, history[0].Response)
}

func TestDeniedCommandRecordedAndComposedIntoFollowUp(t *testing.T) {
	generator := &fakeGenerator{response: llm.NexusResponse{Response: "I cannot do that for you.", Emotion: "alert"}}
	orchestrator, store := newTestOrchestrator(t, generator)
	user := createUser(t, store, "bob", "")

	result := orchestrator.ProcessMessage(context.Background(), user, "shutdown the workstation", false)

	require.NotNil(t, result.CommandResult)
	require.False(t, result.CommandResult.Success)
	require.Contains(t, result.CommandResult.Error, "Creator-level access")

	// the generator sees the outcome, not the raw utterance
	require.Contains(t, generator.lastMessage, "System command failed: shutdown the workstation")
	require.Contains(t, generator.lastMessage, "Creator-level access")

	commands, err := store.GetSystemCommands(user.ID)
	require.NoError(t, err)
	require.Len(t, commands, 1)
	require.Equal(t, "shutdown the workstation", commands[0].Command)
	require.False(t, commands[0].Executed)
	require.Contains(t, commands[0].Result, "Creator-level access")
}

func TestRecentHistoryReplayedToGenerator(t *testing.T) {
	generator := &fakeGenerator{response: llm.NexusResponse{Response: "Noted.", Emotion: "calm"}}
	orchestrator, store := newTestOrchestrator(t, generator)
	user := createUser(t, store, "alice", "")

	_, err := store.CreateConversation(user.ID, "remember the door code", "I will remember that.", false, nil)
	require.NoError(t, err)

	orchestrator.ProcessMessage(context.Background(), user, "what did I ask you", false)

	require.Len(t, generator.lastPersona.History, 2)
	require.Equal(t, llm.ChatTurn{Role: "user", Content: "remember the door code"}, generator.lastPersona.History[0])
	require.Equal(t, llm.ChatTurn{Role: "assistant", Content: "I will remember that."}, generator.lastPersona.History[1])
}

func TestPreferencesForwardedToGenerator(t *testing.T) {
	generator := &fakeGenerator{response: llm.NexusResponse{Response: "Noted.", Emotion: "calm"}}
	orchestrator, store := newTestOrchestrator(t, generator)
	user := createUser(t, store, "alice", "")

	_, err := store.UpdateUserPreferences(user.ID, json.RawMessage(`{"voice":"warm"}`))
	require.NoError(t, err)

	orchestrator.ProcessMessage(context.Background(), user, "hello", false)

	require.JSONEq(t, `{"voice":"warm"}`, string(generator.lastPersona.Preferences))
}

func TestWakePhraseAloneIsPlainChat(t *testing.T) {
	generator := &fakeGenerator{response: llm.NexusResponse{Response: "Online and ready.", Emotion: "happy"}}
	orchestrator, store := newTestOrchestrator(t, generator)
	user := createUser(t, store, "alice", "")

	result := orchestrator.ProcessMessage(context.Background(), user, "hey nexus", true)

	require.Nil(t, result.CommandResult)
	require.Equal(t, "hey nexus", generator.lastMessage)

	commands, err := store.GetSystemCommands(user.ID)
	require.NoError(t, err)
	require.Empty(t, commands)
}
