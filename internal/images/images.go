// Package images resolves product/order image references. A reference is
// either a fully-qualified URL (already hosted remotely) or a bare filename
// expected under the local media directory.
package images

import "strings"

const Placeholder = "/media/placeholder.jpg"

// Resolve maps an image reference to a servable path. Unresolvable
// references fall back to the placeholder instead of erroring.
func Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Placeholder
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	// bare filename: strip any path-ish noise, serve from /media
	ref = strings.TrimPrefix(ref, "/")
	if strings.Contains(ref, "..") || strings.ContainsRune(ref, '\x00') {
		return Placeholder
	}
	return "/media/" + ref
}

// ResolveFirst resolves the first usable reference in a list.
func ResolveFirst(refs []string) string {
	for _, r := range refs {
		if strings.TrimSpace(r) != "" {
			return Resolve(r)
		}
	}
	return Placeholder
}
