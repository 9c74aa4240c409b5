package ports

// FileWatcherPort reports configuration files that changed since the last
// snapshot.
type FileWatcherPort interface {
	Track(paths ...string) error
	Check() ([]string, error)
}
