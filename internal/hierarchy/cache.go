package hierarchy

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Digest returns a content hash of the snapshot. Two slices with the same
// rows in the same order hash equally.
func Digest(all []Category) uint64 {
	h := xxhash.New()
	for _, c := range all {
		_, _ = h.WriteString(c.ID)
		_, _ = h.Write([]byte{0})
		if c.ParentID != nil {
			_, _ = h.WriteString(*c.ParentID)
		}
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(c.Name)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(strconv.Itoa(c.SortOrder))
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// Cache keeps the Index of the most recent snapshot and rebuilds it only
// when the snapshot content changes. It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	digest  uint64
	index   *Index
	builds  int
	onBuild func(*Index)
}

// NewCache creates an empty Cache. onBuild, when not nil, is called with
// every freshly built Index while the cache lock is held.
func NewCache(onBuild func(*Index)) *Cache {
	return &Cache{onBuild: onBuild}
}

// Index returns the Index for all together with its ETag.
func (c *Cache) Index(all []Category) (*Index, string) {
	digest := Digest(all)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index == nil || c.digest != digest {
		c.index = NewIndex(all)
		c.digest = digest
		c.builds++
		if c.onBuild != nil {
			c.onBuild(c.index)
		}
	}
	return c.index, ETag(digest)
}

// Builds returns how many times an Index has been built.
func (c *Cache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}

// ETag formats a digest as a strong HTTP entity tag.
func ETag(digest uint64) string {
	return `"` + strconv.FormatUint(digest, 16) + `"`
}
