package corpus

import "strings"

// Terminator marks the last word of a sentence.
const Terminator = "."

// Words implements chain.Capabilities for string states.
type Words struct{}

// Format returns the word itself.
func (Words) Format(w string) string { return w }

// Compare orders words bytewise.
func (Words) Compare(a, b string) int { return strings.Compare(a, b) }

// Clone detaches the word from the caller's backing buffer.
func (Words) Clone(w string) (string, error) { return strings.Clone(w), nil }

// Release is a no-op; the garbage collector owns string memory.
func (Words) Release(string) {}

// IsTerminal reports whether w ends a sentence.
func (Words) IsTerminal(w string) bool { return strings.HasSuffix(w, Terminator) }

// WordCodec stores words verbatim in snapshot stores.
type WordCodec struct{}

// Kind labels stored word models.
func (WordCodec) Kind() string { return "words" }

// Encode returns w.
func (WordCodec) Encode(w string) (string, error) { return w, nil }

// Decode returns s.
func (WordCodec) Decode(s string) (string, error) { return s, nil }
