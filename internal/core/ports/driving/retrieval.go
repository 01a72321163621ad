package driving

import "context"

// DefaultTopK is the number of chunks assembled into context when the
// caller does not specify one.
const DefaultTopK = 3

// RetrievalService selects the document text most relevant to a question.
type RetrievalService interface {
	// Retrieve embeds the question, ranks the document's chunks by
	// cosine similarity and returns the topK most relevant chunk
	// contents joined by blank lines. topK <= 0 means DefaultTopK.
	//
	// When no chunk carries an embedding, or question embedding fails,
	// it falls back to the first topK chunks in stored order. The
	// fallback is defined behaviour, never an error. A missing document
	// fails with domain.ErrNotFound.
	Retrieve(ctx context.Context, documentID, question, userID string, topK int) (string, error)

	// RetrieveAcrossDocuments applies the same ranking over the chunks
	// of ALL the user's documents. It iterates every document's chunk
	// set, so it is noticeably more expensive than Retrieve and should
	// not sit on a hot per-message path without caching.
	RetrieveAcrossDocuments(ctx context.Context, question, userID string, topK int) (string, error)
}

// AnswerService produces a grounded answer to a question about a document.
type AnswerService interface {
	// Ask retrieves context for the question and delegates to the
	// completion service. Fails with domain.ErrLLMUnavailable when no
	// completion service is configured; retrieval degradation alone
	// never blocks answering.
	Ask(ctx context.Context, documentID, question, userID string) (string, error)
}
