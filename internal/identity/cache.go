package identity

import (
	"sync"

	"secure_finance_manager/internal/models"
)

// UnknownID is returned by ID for usernames that are not cached.
const UnknownID = -1

// Cache maps usernames to user ids. It is loaded once at startup and kept in
// sync by the user service on sign-up, rename and delete.
type Cache struct {
	mu  sync.RWMutex
	ids map[string]int
}

func NewCache() *Cache {
	return &Cache{ids: make(map[string]int)}
}

// Load replaces the cache content with the given users.
func (c *Cache) Load(users []models.User) {
	ids := make(map[string]int, len(users))
	for _, u := range users {
		ids[u.Username] = u.ID
	}
	c.mu.Lock()
	c.ids = ids
	c.mu.Unlock()
}

func (c *Cache) Lookup(username string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.ids[username]
	return id, ok
}

// ID returns the cached id or UnknownID.
func (c *Cache) ID(username string) int {
	if id, ok := c.Lookup(username); ok {
		return id
	}
	return UnknownID
}

func (c *Cache) Put(username string, id int) {
	c.mu.Lock()
	c.ids[username] = id
	c.mu.Unlock()
}

// Rename moves the id of oldName to newName. Unknown oldName is a no-op.
func (c *Cache) Rename(oldName, newName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.ids[oldName]
	if !ok {
		return
	}
	delete(c.ids, oldName)
	c.ids[newName] = id
}

func (c *Cache) Remove(username string) {
	c.mu.Lock()
	delete(c.ids, username)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}
