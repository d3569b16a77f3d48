package maploader

// defaultRows is the built-in 32x32 arena.
var defaultRows = []string{
	"################################",
	"#..............#...............#",
	"#..............#...............#",
	"#....##........#......###......#",
	"#....##...............#.#......#",
	"#.....................###......#",
	"#..............#...............#",
	"#..............#...............#",
	"######..########........#......#",
	"#..............#........#......#",
	"#..............#........#......#",
	"#...#....#.....#...######......#",
	"#..............#...............#",
	"#..............#...............#",
	"#...#....#.....#.......#.#.#...#",
	"#..............#...............#",
	"#..............#.......#.#.#...#",
	"########..######...............#",
	"#..............................#",
	"#..............................#",
	"#....####..........#####.......#",
	"#....#..#..........#...#.......#",
	"#....#..#..........#...#.......#",
	"#....##.#..........##.##.......#",
	"#..............................#",
	"#..............................#",
	"#..........#######.............#",
	"#..........#.....#.............#",
	"#..........#.....#.........#...#",
	"#..........###.###.............#",
	"#..............................#",
	"################################",
}

// Default returns the built-in arena with its spawn point.
func Default() *Map {
	m, err := FromData(&MapData{
		Name:   "arena",
		Width:  32,
		Height: 32,
		PlayerSpawn: SpawnPoint{
			X:     3*256 + 128,
			Y:     2*256 + 128,
			Angle: 200,
		},
		Rows: defaultRows,
	})
	if err != nil {
		panic("maploader: invalid default map: " + err.Error())
	}
	return m
}
