package services

import (
	"context"
	"fmt"

	"github.com/quillstack/docqa/internal/core/domain"
	"github.com/quillstack/docqa/internal/core/ports/driven"
	"github.com/quillstack/docqa/internal/core/ports/driving"
	"github.com/quillstack/docqa/internal/logger"
)

// Ensure AnswerOrchestrator implements the interface.
var _ driving.AnswerService = (*AnswerOrchestrator)(nil)

// systemPrompt instructs the model to stay grounded in the supplied
// context.
const systemPrompt = `You are a helpful assistant that answers questions about uploaded documents.
Answer using only the provided document excerpts. If the excerpts do not
contain the answer, say so instead of guessing.`

// AnswerOrchestrator combines retrieved context with the user's question
// and delegates to the completion service.
type AnswerOrchestrator struct {
	retrieval  driving.RetrievalService
	llmService driven.LLMService
}

// NewAnswerOrchestrator creates a new answer orchestrator.
func NewAnswerOrchestrator(retrieval driving.RetrievalService, llmService driven.LLMService) *AnswerOrchestrator {
	return &AnswerOrchestrator{
		retrieval:  retrieval,
		llmService: llmService,
	}
}

// Ask retrieves grounding context for the question and generates an
// answer. Degraded retrieval (unranked context) flows through unchanged;
// only a missing document or an unconfigured completion service fail.
func (o *AnswerOrchestrator) Ask(ctx context.Context, documentID, question, userID string) (string, error) {
	if o.llmService == nil {
		return "", domain.ErrLLMUnavailable
	}

	contextText, err := o.retrieval.Retrieve(ctx, documentID, question, userID, driving.DefaultTopK)
	if err != nil {
		return "", err
	}

	userPrompt := buildUserPrompt(contextText, question)
	logger.Debug("Prompting %s with %d context characters", o.llmService.ModelName(), len(contextText))

	answer, err := o.llmService.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

// buildUserPrompt lays out the excerpts and the question for the model.
func buildUserPrompt(contextText, question string) string {
	if contextText == "" {
		contextText = "(no document excerpts available)"
	}
	return fmt.Sprintf("Document excerpts:\n\n%s\n\nQuestion: %s", contextText, question)
}
