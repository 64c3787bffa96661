package ports

// Watcher monitors dictionary files and triggers a reload when they change.
// Editors often write a file several times per save, so the adapter must
// debounce events before invoking onChange. Only one Watch call should be
// active at a time.
type Watcher interface {
	// Watch starts monitoring the given files. onChange is called with the
	// absolute path of each changed file. The callback may be invoked from
	// any goroutine. Returns an error if a file's directory doesn't exist or
	// permissions are insufficient.
	Watch(files []string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
