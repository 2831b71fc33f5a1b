// Package imageurl formats content-API image references into CDN URLs.
//
// References look like
//
//	image-3bdddc1f9afd05657bb1cae9b099ad7cce3abe37-741x741-png
//
// and map to
//
//	https://cdn.sanity.io/images/<project>/<dataset>/<id>-<WxH>.<ext>?w=..&h=..&fit=crop
//
// The core treats references as opaque; only this package knows their shape.
package imageurl

import (
	"fmt"
	"regexp"

	"github.com/khayr-gifts/khayr/internal/domain"
)

// refPattern matches image-<id>-<width>x<height>-<extension>.
var refPattern = regexp.MustCompile(`image-([^-]+)-(\d+x\d+)-(\w+)`)

// Formatter builds display URLs for one project/dataset pair.
type Formatter struct {
	ProjectID string
	Dataset   string
}

// URL returns the CDN URL for ref cropped to width×height.
// Non-matching input (including the empty reference) yields "" — callers
// render a placeholder for empty URLs.
func (f Formatter) URL(ref domain.ImageRef, width, height int) string {
	m := refPattern.FindStringSubmatch(string(ref))
	if m == nil {
		return ""
	}
	id, dims, ext := m[1], m[2], m[3]
	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s-%s.%s?w=%d&h=%d&fit=crop",
		f.ProjectID, f.Dataset, id, dims, ext, width, height)
}

// Thumb returns the standard 400×400 product-card crop.
func (f Formatter) Thumb(ref domain.ImageRef) string {
	return f.URL(ref, 400, 400)
}
