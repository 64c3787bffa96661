// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// DictionaryStore persists named keyword dictionaries to durable storage.
// Each dictionary gets its own namespace holding its entries and settings.
// Concurrent reads are safe; writes are serialized by the adapter.
//
// Crash safety: every write is transactional. A crash mid-write must not
// corrupt previously committed data.
type DictionaryStore interface {
	// SaveSettings persists the settings of a dictionary, creating the
	// dictionary if needed. Overwrites prior settings.
	SaveSettings(dict string, settings *Settings) error

	// LoadSettings retrieves the settings of a dictionary.
	// Returns nil, nil if the dictionary does not exist.
	LoadSettings(dict string) (*Settings, error)

	// PutEntries inserts or overwrites entries, keyed by Entry.Keyword.
	PutEntries(dict string, entries []Entry) error

	// DeleteEntries removes the given keywords. Missing keywords are ignored.
	DeleteEntries(dict string, keywords []string) error

	// LoadEntries returns all entries of a dictionary sorted by keyword.
	// Returns nil, nil if the dictionary does not exist.
	LoadEntries(dict string) ([]Entry, error)

	// ListDictionaries returns the names of all dictionaries, sorted.
	ListDictionaries() ([]string, error)

	// DeleteDictionary removes a dictionary with its entries and settings.
	// Idempotent: deleting a nonexistent dictionary is not an error.
	DeleteDictionary(dict string) error

	// Close releases the underlying database.
	Close() error
}

// Entry is one stored keyword. Keyword is already normalized the way the
// dictionary's processor normalizes it (lowercased unless case sensitive).
type Entry struct {
	Keyword   string `json:"keyword"`
	CleanName string `json:"clean_name"`
}

// Settings is the per-dictionary configuration a processor is built with.
// WordChars only applies when CustomWordChars is set; an empty custom set
// makes every rune a boundary.
type Settings struct {
	CaseSensitive   bool   `json:"case_sensitive"`
	CustomWordChars bool   `json:"custom_word_chars"`
	WordChars       []rune `json:"word_chars,omitempty"`
}
