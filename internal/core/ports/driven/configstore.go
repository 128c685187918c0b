package driven

// ConfigStore is the settings backend. Keys are dotted paths into the
// config tree, e.g. "picker.debounce_ms". Typed getters return the zero
// value when a key is absent or holds another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetStringSlice(key string) []string

	// Set updates one key and writes the file.
	Set(key string, value any) error

	// Save writes the whole tree.
	Save() error

	// Load discards in-memory values and re-reads the backing file.
	Load() error

	// Path is where the store persists.
	Path() string
}
