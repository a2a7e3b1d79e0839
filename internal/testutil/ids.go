package testutil

// FixedIDGenerator returns the same request ID every time.
//
// This enables golden comparison of responses and logs that carry a
// request ID.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator that always returns id.
// If id is empty, Generate() returns "test-request-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-request-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed ID.
//
// Implements httpapi.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
