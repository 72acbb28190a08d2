package world

import "github.com/google/uuid"

// Entity is anything tracked in a chunk's entity set.
type Entity interface {
	UUID() uuid.UUID
}

// AddEntity inserts e into the chunk's entity set, replacing any entity with
// the same UUID.
func (c *Chunk) AddEntity(e Entity) {
	c.entityMu.Lock()
	defer c.entityMu.Unlock()
	if c.entities == nil {
		c.entities = make(map[uuid.UUID]Entity)
	}
	c.entities[e.UUID()] = e
}

// RemoveEntity removes e from the chunk's entity set and reports whether it
// was present.
func (c *Chunk) RemoveEntity(e Entity) bool {
	c.entityMu.Lock()
	defer c.entityMu.Unlock()
	id := e.UUID()
	if _, ok := c.entities[id]; !ok {
		return false
	}
	delete(c.entities, id)
	return true
}

// EntityCount returns the number of entities in the chunk.
func (c *Chunk) EntityCount() int {
	c.entityMu.Lock()
	defer c.entityMu.Unlock()
	return len(c.entities)
}

// ForEachEntity calls fn for every entity while holding the entity lock.
//
// fn must not call AddEntity, RemoveEntity, EntityCount or ForEachEntity on
// the same chunk: the lock is not reentrant and doing so deadlocks.
func (c *Chunk) ForEachEntity(fn func(e Entity)) {
	c.entityMu.Lock()
	defer c.entityMu.Unlock()
	for _, e := range c.entities {
		fn(e)
	}
}
