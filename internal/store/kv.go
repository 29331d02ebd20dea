package store

// Storage keys. The whole portal state lives under these three entries.
const (
	KeyResults    = "exam-results"
	KeyAdminAuth  = "admin-authenticated"
	KeyAISettings = "ai-settings"
)

// KV is the narrow persistence port the portal is written against. Get
// returns the fallback when the key has never been written.
type KV interface {
	Get(key, fallback string) (string, error)
	Set(key, value string) error
}
