// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Partitioned document and chunk persistence
//   - Extractor: Converts uploaded bytes to plain text
//   - ExtractorRegistry: Selects the appropriate extractor
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vectors. Without it, chunks persist
//     without embeddings and retrieval falls back to stored order.
//   - LLMService: Answer generation. Without it, retrieval still works
//     but the ask command only prints the assembled context.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or chunker package
package driven
