// Package feed resolves package references to download URLs on a package feed.
package feed

import (
	"net/url"
	"strings"

	"github.com/glue-tools/gluefetch/pkg/errors"
	"github.com/glue-tools/gluefetch/pkg/model"
)

// VersionQueryParam is the query parameter carrying the requested version for
// feeds that expect it alongside the archive path.
const VersionQueryParam = "packageVersion"

// Resolver builds archive download URLs from package references.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ArchiveURL returns the download URL for the package archive:
// <feed>/<name>/<version>/<name>.<version>.nupkg, with the version repeated as
// a query parameter when the reference asks for it.
func (r *Resolver) ArchiveURL(ref *model.PackageRef) (*url.URL, error) {
	base, err := url.Parse(ref.FeedURL)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrPackageInvalid, "invalid feed URL %q: %v", ref.FeedURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.Wrapf(errors.ErrPackageInvalid, "feed URL %q must be http or https", ref.FeedURL)
	}

	u := *base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + ref.Name + "/" + ref.Version + "/" + ref.ArchiveFileName()

	if ref.VersionInQuery {
		q := u.Query()
		q.Set(VersionQueryParam, ref.Version)
		u.RawQuery = q.Encode()
	}

	return &u, nil
}
