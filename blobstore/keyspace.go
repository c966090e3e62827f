package blobstore

import "strings"

// KeySpace maps blob names to object keys below a root prefix.
// The root is treated as a directory: "root" and "root/" are the same, and
// keys of sibling roots such as "root2/x" are outside the key space.
type KeySpace struct {
	root string
}

// NewKeySpace returns the key space below rootPrefix. An empty root spans
// the whole bucket.
func NewKeySpace(rootPrefix string) KeySpace {
	return KeySpace{root: strings.Trim(rootPrefix, "/")}
}

func (k KeySpace) dir() string {
	if k.root == "" {
		return ""
	}
	return k.root + "/"
}

// Key returns the object key of name.
func (k KeySpace) Key(name string) string {
	return k.dir() + strings.TrimPrefix(name, "/")
}

// ListPrefix returns the object key prefix to list for a name prefix.
// Trailing slashes of prefix are kept.
func (k KeySpace) ListPrefix(prefix string) string {
	return k.dir() + strings.TrimPrefix(prefix, "/")
}

// Name returns the blob name of key. It reports false for keys outside the
// key space and for the root itself.
func (k KeySpace) Name(key string) (string, bool) {
	name, ok := strings.CutPrefix(key, k.dir())
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
