package land

// WayKind is a linear feature running from a tile towards a neighbour.
type WayKind uint8

const (
	WayNone WayKind = iota
	WayPath
	WayWall
)

// Width returns how far from its centre line a way is drawn, in blocks.
func (k WayKind) Width() float32 {
	switch k {
	case WayPath:
		return 4
	case WayWall:
		return 3
	default:
		return 0
	}
}

// String returns the lowercase kind name.
func (k WayKind) String() string {
	switch k {
	case WayPath:
		return "path"
	case WayWall:
		return "wall"
	default:
		return "none"
	}
}

// Tower is a point feature centred on a tile's partition centre.
type Tower uint8

const (
	TowerNone Tower = iota
	TowerWall
)

// Radius returns the tower's footprint radius in blocks.
func (t Tower) Radius() float32 {
	if t == TowerWall {
		return 6
	}
	return 0
}

// Tile is the record stored for a designated tile.
type Tile struct {
	Plot  PlotID     `json:"plot"`
	Ways  [4]WayKind `json:"ways"` // indexed by geom.Dir
	Tower Tower      `json:"tower"`
}

// Contains reports whether any side of t carries a way of the given kind.
func (t *Tile) Contains(kind WayKind) bool {
	if t == nil {
		return false
	}
	for _, w := range t.Ways {
		if w == kind {
			return true
		}
	}
	return false
}
