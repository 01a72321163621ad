// Package extractors provides the text extractor registry.
//
// Each format-specific extractor lives in its own subpackage (pdf,
// markdown, html, plaintext) and converts uploaded bytes into plain text
// with blank-line paragraph boundaries preserved for the chunker. The
// registry dispatches on the declared media type first and falls back to
// the filename extension when the declared type is generic or unknown.
package extractors
