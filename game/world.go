package game

import "math"

// gridEntry is a collider registered in the grid. It is stored in every cell
// its bounding box touches.
type gridEntry struct {
	handle Handle
	shape  Circle

	// Cell range currently occupied
	minX, minY, maxX, maxY int

	// Last query that reported this entry, used to dedupe multi-cell hits
	stamp uint64
}

// World is a uniform grid SpatialIndex covering the arena. Colliders outside
// the arena fall into the border cells, so queries stay correct everywhere.
type World struct {
	// Preallocated 2D grid of cells
	Cells [][]*Cell

	// Configuration
	Config ArenaConfig

	cols, rows int
	origin     Vec2

	entries map[Handle]*gridEntry
	stamp   uint64
}

var _ SpatialIndex = (*World)(nil)

// NewWorld creates a new world with preallocated cells
func NewWorld(config ArenaConfig) *World {
	cols := max(1, int(math.Ceil(config.Width/config.CellSize)))
	rows := max(1, int(math.Ceil(config.Height/config.CellSize)))

	cells := make([][]*Cell, cols)
	for x := 0; x < cols; x++ {
		cells[x] = make([]*Cell, rows)
		for y := 0; y < rows; y++ {
			cells[x][y] = NewCell(8)
		}
	}

	return &World{
		Cells:   cells,
		Config:  config,
		cols:    cols,
		rows:    rows,
		origin:  Vec2{-config.Width / 2, -config.Height / 2},
		entries: make(map[Handle]*gridEntry, 256),
	}
}

// WorldToCell converts world coordinates to cell coordinates
func (w *World) WorldToCell(p Vec2) (int, int) {
	cellX := int(math.Floor((p.X - w.origin.X) / w.Config.CellSize))
	cellY := int(math.Floor((p.Y - w.origin.Y) / w.Config.CellSize))

	// Clamp to valid cell range
	cellX = max(0, min(cellX, w.cols-1))
	cellY = max(0, min(cellY, w.rows-1))

	return cellX, cellY
}

// GetCell returns the cell at the given cell coordinates
func (w *World) GetCell(cellX, cellY int) *Cell {
	if cellX < 0 || cellX >= w.cols || cellY < 0 || cellY >= w.rows {
		return nil
	}
	return w.Cells[cellX][cellY]
}

// cellRange returns the cells overlapped by the circle's bounding box
func (w *World) cellRange(c Circle) (minX, minY, maxX, maxY int) {
	r := Vec2{c.Radius, c.Radius}
	minX, minY = w.WorldToCell(c.Center.Sub(r))
	maxX, maxY = w.WorldToCell(c.Center.Add(r))
	return minX, minY, maxX, maxY
}

// Insert adds a collider to every cell its bounding box touches
func (w *World) Insert(h Handle, shape Circle) {
	if !shape.Center.IsFinite() {
		shape.Center = Vec2{}
	}
	if e, ok := w.entries[h]; ok {
		w.move(e, shape)
		return
	}

	e := &gridEntry{handle: h, shape: shape}
	e.minX, e.minY, e.maxX, e.maxY = w.cellRange(shape)
	w.addToCells(e)
	w.entries[h] = e
}

// Update moves a collider, only touching cells when its range changed
func (w *World) Update(h Handle, shape Circle) {
	w.Insert(h, shape)
}

func (w *World) move(e *gridEntry, shape Circle) {
	e.shape = shape
	minX, minY, maxX, maxY := w.cellRange(shape)
	if minX == e.minX && minY == e.minY && maxX == e.maxX && maxY == e.maxY {
		return
	}
	w.removeFromCells(e)
	e.minX, e.minY, e.maxX, e.maxY = minX, minY, maxX, maxY
	w.addToCells(e)
}

// Remove drops a collider from the grid
func (w *World) Remove(h Handle) {
	e, ok := w.entries[h]
	if !ok {
		return
	}
	w.removeFromCells(e)
	delete(w.entries, h)
}

// Query returns all handles whose collider overlaps shape
func (w *World) Query(shape Circle, buf []Handle) []Handle {
	w.stamp++
	start := len(buf)

	minX, minY, maxX, maxY := w.cellRange(shape)
	for cellX := minX; cellX <= maxX; cellX++ {
		for cellY := minY; cellY <= maxY; cellY++ {
			for _, e := range w.Cells[cellX][cellY].Active() {
				if e.stamp == w.stamp {
					continue
				}
				e.stamp = w.stamp
				if shape.Overlaps(e.shape) {
					buf = append(buf, e.handle)
				}
			}
		}
	}

	sortHandles(buf[start:])
	return buf
}

// Clear removes every collider but keeps cell capacity
func (w *World) Clear() {
	for x := range w.Cells {
		for _, cell := range w.Cells[x] {
			cell.Clear()
		}
	}
	clear(w.entries)
}

// Len returns the number of registered colliders
func (w *World) Len() int {
	return len(w.entries)
}

func (w *World) addToCells(e *gridEntry) {
	for x := e.minX; x <= e.maxX; x++ {
		for y := e.minY; y <= e.maxY; y++ {
			w.Cells[x][y].Add(e)
		}
	}
}

func (w *World) removeFromCells(e *gridEntry) {
	for x := e.minX; x <= e.maxX; x++ {
		for y := e.minY; y <= e.maxY; y++ {
			w.Cells[x][y].Remove(e)
		}
	}
}
