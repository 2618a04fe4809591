package application

import "sync"

// ClaimSet records rename targets taken during a batch, closing the window
// between probing a candidate path and moving onto it: two concurrent items
// with identical labels can never claim the same target. Claims are held
// for the lifetime of the batch.
type ClaimSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

// NewClaimSet creates an empty claim registry.
func NewClaimSet() *ClaimSet {
	return &ClaimSet{paths: make(map[string]struct{})}
}

// Claim attempts to take a target path, reporting whether this caller won.
func (c *ClaimSet) Claim(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, taken := c.paths[path]; taken {
		return false
	}
	c.paths[path] = struct{}{}
	return true
}

// Release frees a claimed path, used when a move onto it failed and the
// name is up for grabs again.
func (c *ClaimSet) Release(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.paths, path)
}

// Len returns the number of held claims.
func (c *ClaimSet) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.paths)
}
