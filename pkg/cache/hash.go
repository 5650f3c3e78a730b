package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to keep collisions out of the picture.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// TreeKeyOpts carries the scan parameters that affect a tree's identity.
type TreeKeyOpts struct {
	IncludeHidden bool
}

// LayoutKeyOpts carries the canvas a layout was computed for.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
}

// ArtifactKeyOpts carries the rendering parameters of an artifact.
type ArtifactKeyOpts struct {
	Format string
	Labels bool
}

// Keyer derives cache keys for the three artifact classes. Keys of one class
// never collide with another because each carries its own prefix.
type Keyer interface {
	TreeKey(root string, opts TreeKeyOpts) string
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TreeKey generates a key for a scanned tree.
func (DefaultKeyer) TreeKey(root string, opts TreeKeyOpts) string {
	return hashKey("tree", root, opts.IncludeHidden)
}

// LayoutKey generates a key for a computed layout.
func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts.Width, opts.Height)
}

// ArtifactKey generates a key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Format, opts.Labels)
}
