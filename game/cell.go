package game

// Cell represents a spatial partition cell containing colliders
type Cell struct {
	// Entries in this cell (preallocated slice)
	Entries []*gridEntry

	// Current count of entries
	Count int
}

// NewCell creates a new cell with preallocated storage
func NewCell(initialCapacity int) *Cell {
	return &Cell{
		Entries: make([]*gridEntry, 0, initialCapacity),
		Count:   0,
	}
}

// Add adds an entry to this cell
func (c *Cell) Add(e *gridEntry) {
	for i := 0; i < c.Count; i++ {
		if c.Entries[i] == e {
			return
		}
	}

	if c.Count < len(c.Entries) {
		c.Entries[c.Count] = e
	} else {
		c.Entries = append(c.Entries, e)
	}
	c.Count++
}

// Remove removes an entry from this cell
func (c *Cell) Remove(e *gridEntry) {
	for i := 0; i < c.Count; i++ {
		if c.Entries[i] == e {
			// Swap with last element and decrease count
			c.Entries[i] = c.Entries[c.Count-1]
			c.Entries[c.Count-1] = nil
			c.Count--
			return
		}
	}
}

// Active returns the entries currently in this cell
func (c *Cell) Active() []*gridEntry {
	return c.Entries[:c.Count]
}

// Clear removes all entries from the cell (but keeps capacity)
func (c *Cell) Clear() {
	for i := 0; i < c.Count; i++ {
		c.Entries[i] = nil
	}
	c.Count = 0
}
