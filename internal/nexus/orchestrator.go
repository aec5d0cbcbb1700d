package nexus

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"NexusAssistant_VoiceProject/internal/llm"
	"NexusAssistant_VoiceProject/internal/models"
	"NexusAssistant_VoiceProject/internal/storage"
	"NexusAssistant_VoiceProject/internal/voice"
)

// Substituted when the response generator is unreachable; the failure
// never propagates to the caller.
const (
	fallbackResponse = "I'm experiencing some technical difficulties. Please try again."
	fallbackEmotion  = "alert"
)

// ResponseGenerator is the narrow contract to the LLM collaborator.
type ResponseGenerator interface {
	GenerateNexusResponse(ctx context.Context, message string, personality llm.Personality) (llm.NexusResponse, error)
}

// TurnResult is what one orchestrated conversation turn surfaces to
// the UI.
type TurnResult struct {
	Response      string            `json:"response"`
	Emotion       string            `json:"emotion"`
	Action        string            `json:"action,omitempty"`
	CommandResult *voice.ExecResult `json:"systemCommandResult,omitempty"`
}

// Orchestrator classifies each utterance, dispatches system commands,
// generates the assistant reply and persists the turn.
type Orchestrator struct {
	store     *storage.Store
	generator ResponseGenerator
	executor  *voice.Executor
}

func NewOrchestrator(store *storage.Store, generator ResponseGenerator, executor *voice.Executor) *Orchestrator {
	return &Orchestrator{store: store, generator: generator, executor: executor}
}

// ProcessMessage runs one conversation turn for an authenticated user.
// Nothing here is fatal: generator failures fall back, persistence
// failures are logged and the reply is still returned.
func (o *Orchestrator) ProcessMessage(ctx context.Context, user models.User, message string, voiceActivated bool) TurnResult {
	parsed := voice.ParseVoiceCommand(message)

	var commandResult *voice.ExecResult
	var response llm.NexusResponse

	if parsed.IsSystemCommand {
		record, err := o.store.CreateSystemCommand(user.ID, parsed.Command)
		if err != nil {
			log.Printf("ProcessMessage(): failed to record system command: %v", err)
		}

		result := o.executor.Execute(ctx, parsed.Command, user.IsCreator)
		commandResult = &result

		if err == nil {
			outcome := result.Result
			if !result.Success {
				outcome = result.Error
			}
			if err := o.store.MarkCommandExecuted(record.ID, result.Success, outcome); err != nil {
				log.Printf("ProcessMessage(): failed to attach command outcome: %v", err)
			}
		}

		followUp := fmt.Sprintf("System command executed: %s\nResult: %s", parsed.Command, result.Result)
		if !result.Success {
			followUp = fmt.Sprintf("System command failed: %s\nError: %s", parsed.Command, result.Error)
		}
		response = o.generate(ctx, user, followUp)
	} else {
		response = o.generate(ctx, user, message)
	}

	o.persistTurn(user.ID, message, response, voiceActivated, parsed.IsSystemCommand, commandResult)

	return TurnResult{
		Response:      response.Response,
		Emotion:       response.Emotion,
		Action:        response.Action,
		CommandResult: commandResult,
	}
}

func (o *Orchestrator) generate(ctx context.Context, user models.User, message string) llm.NexusResponse {
	personality := llm.Personality{
		IsCreator: user.IsCreator,
		UserName:  displayName(user),
		History:   o.recentHistory(user.ID),
	}
	if prefs, err := o.store.GetUserPreferences(user.ID); err == nil {
		personality.Preferences = prefs.Preferences
	}

	response, err := o.generator.GenerateNexusResponse(ctx, message, personality)
	if err != nil {
		log.Printf("Orchestrator.generate(): generation failed: %v", err)
		return llm.NexusResponse{Response: fallbackResponse, Emotion: fallbackEmotion}
	}
	return response
}

func (o *Orchestrator) recentHistory(userID int) []llm.ChatTurn {
	conversations, err := o.store.GetConversationHistory(userID, 10)
	if err != nil {
		log.Printf("Orchestrator.recentHistory(): %v", err)
		return nil
	}

	var turns []llm.ChatTurn
	for _, c := range conversations {
		turns = append(turns,
			llm.ChatTurn{Role: "user", Content: c.Message},
			llm.ChatTurn{Role: "assistant", Content: c.Response},
		)
	}
	return turns
}

func (o *Orchestrator) persistTurn(userID int, message string, response llm.NexusResponse, voiceActivated, isSystemCommand bool, commandResult *voice.ExecResult) {
	turnContext, err := json.Marshal(map[string]interface{}{
		"emotion":             response.Emotion,
		"action":              response.Action,
		"systemCommand":       isSystemCommand,
		"systemCommandResult": commandResult,
	})
	if err != nil {
		log.Printf("Orchestrator.persistTurn(): failed to encode context: %v", err)
	}

	if _, err := o.store.CreateConversation(userID, message, response.Response, voiceActivated, turnContext); err != nil {
		log.Printf("Orchestrator.persistTurn(): failed to persist turn: %v", err)
	}
}

func displayName(user models.User) string {
	if user.FullName != "" {
		return user.FullName
	}
	return user.Username
}
