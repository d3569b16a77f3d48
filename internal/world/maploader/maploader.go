package maploader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Tile glyphs used in map rows.
const (
	WallGlyph  = '#'
	EmptyGlyph = '.'
)

// MaxSize is the largest width or height in tiles. Canonical uint16
// positions in 1/256 tile cannot address tiles beyond it.
const MaxSize = 256

// ErrInvalidMap is returned when map data fails validation.
var ErrInvalidMap = errors.New("invalid map")

// SpawnPoint is the player start pose in canonical units
// (position in 1/256 tile, angle in 1/1024 turn).
type SpawnPoint struct {
	X     uint16 `json:"x"`
	Y     uint16 `json:"y"`
	Angle int16  `json:"angle"`
}

// MapData is the on-disk description of a level.
type MapData struct {
	Name        string     `json:"name"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	PlayerSpawn SpawnPoint `json:"player_spawn"`
	Rows        []string   `json:"rows"` // Row-major, '#' for walls and '.' for open tiles
}

// Map is an immutable bit grid of wall tiles. Bits are packed row-major,
// most significant bit first, with each row padded to whole bytes.
type Map struct {
	name      string
	width     int
	height    int
	rowStride int
	bits      []byte
	spawn     SpawnPoint
}

// New builds a map from rows of '#' (wall) and '.' (empty) glyphs.
func New(width, height int, rows []string) (*Map, error) {
	if width <= 0 || height <= 0 || width > MaxSize || height > MaxSize {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidMap, width, height)
	}
	if len(rows) != height {
		return nil, fmt.Errorf("%w: rows height mismatch: expected %d, got %d", ErrInvalidMap, height, len(rows))
	}

	stride := (width + 7) / 8
	m := &Map{
		width:     width,
		height:    height,
		rowStride: stride,
		bits:      make([]byte, stride*height),
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: rows width mismatch at row %d: expected %d, got %d", ErrInvalidMap, y, width, len(row))
		}
		for x := 0; x < width; x++ {
			switch row[x] {
			case WallGlyph:
				m.bits[y*stride+x>>3] |= 0x80 >> (x & 7)
			case EmptyGlyph:
			default:
				return nil, fmt.Errorf("%w: unknown tile %q at (%d, %d)", ErrInvalidMap, row[x], x, y)
			}
		}
	}

	return m, nil
}

// LoadMap loads a map from a JSON level file.
func LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	m, err := FromData(&mapData)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}
	return m, nil
}

// FromData builds a map from decoded level data and validates the spawn.
func FromData(data *MapData) (*Map, error) {
	m, err := New(data.Width, data.Height, data.Rows)
	if err != nil {
		return nil, err
	}

	tileX := int(data.PlayerSpawn.X) >> 8
	tileY := int(data.PlayerSpawn.Y) >> 8
	if m.IsWall(tileX, tileY) {
		return nil, fmt.Errorf("%w: player spawn (%d, %d) is inside a wall", ErrInvalidMap, tileX, tileY)
	}

	m.name = data.Name
	m.spawn = data.PlayerSpawn
	return m, nil
}

// IsWall reports whether the tile at (x, y) is solid. Tiles outside the map
// are always walls so rays can never escape.
func (m *Map) IsWall(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return true
	}
	return m.bits[y*m.rowStride+x>>3]&(0x80>>(x&7)) != 0
}

// Width returns the map width in tiles.
func (m *Map) Width() int { return m.width }

// Height returns the map height in tiles.
func (m *Map) Height() int { return m.height }

// Name returns the level name, if any.
func (m *Map) Name() string { return m.name }

// Spawn returns the player start pose.
func (m *Map) Spawn() SpawnPoint { return m.spawn }

// Rows renders the map back into glyph rows.
func (m *Map) Rows() []string {
	rows := make([]string, m.height)
	buf := make([]byte, m.width)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.IsWall(x, y) {
				buf[x] = WallGlyph
			} else {
				buf[x] = EmptyGlyph
			}
		}
		rows[y] = string(buf)
	}
	return rows
}
