package renderer

import "image"

// NewTileGrid creates tile bounds covering the entire image. Tiling is a
// scheduling and locality choice only: the pixels inside a tile are computed
// exactly as they would be in any other grouping, so tile size never affects
// the output.
func NewTileGrid(width, height, tileSize int) []image.Rectangle {
	var tiles []image.Rectangle

	tilesX := (width + tileSize - 1) / tileSize // ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			tiles = append(tiles, image.Rect(x0, y0, x1, y1))
		}
	}

	return tiles
}
