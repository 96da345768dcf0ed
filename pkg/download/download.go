package download

import (
	"context"
	"net/url"
)

// Manager defines the interface for downloading remote package archives.
// Downloads happen one at a time: the provisioning procedure is strictly
// sequential, so there is no batch API here.
type Manager interface {
	// Fetch downloads a single item into opts.Dir and returns the absolute
	// local file path.
	Fetch(ctx context.Context, item Item, opts Options) (string, error)
}

// Item represents one remote archive to download.
type Item struct {
	ID       string   // stable identifier (e.g. "name@version")
	URL      *url.URL // source URL to download
	Checksum string   // optional hex-encoded SHA-256 checksum; if provided, will be verified
	Filename string   // optional preferred filename; if empty, a name will be derived
}

// Options control the behavior of the download manager.
type Options struct {
	Dir string // destination directory. Must be absolute.
}
