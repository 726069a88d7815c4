package classify

import (
	"github.com/openinbox/inboxd/internal/models"
)

type cacheEntry struct {
	signature      Signature
	classification Classification
}

// Cache maps message id to its last computed (signature, classification)
// pair. The cache is owned by a single worker goroutine and is never shared;
// no locking happens here.
type Cache struct {
	entries map[string]cacheEntry
}

// NewCache returns an empty classification cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Rebuild produces classifications for the current message set, reusing any
// cached entry whose signature is unchanged and recomputing the rest. Entries
// for ids absent from msgs are dropped. The returned recomputed count is the
// number of fresh classifications this cycle; classification cost is
// proportional to it, not to len(msgs).
func (c *Cache) Rebuild(msgs []models.MessageSnapshot, viewerAccount string) (map[string]Classification, int) {
	next := make(map[string]cacheEntry, len(msgs))
	byID := make(map[string]Classification, len(msgs))
	recomputed := 0

	for _, msg := range msgs {
		signature := ComputeSignature(msg, viewerAccount)

		if prev, ok := c.entries[msg.ID]; ok && prev.signature == signature {
			next[msg.ID] = prev
			byID[msg.ID] = prev.classification
			continue
		}

		classification := Classify(msg, viewerAccount)
		next[msg.ID] = cacheEntry{signature: signature, classification: classification}
		byID[msg.ID] = classification
		recomputed++
	}

	c.entries = next
	return byID, recomputed
}
