package game

import "github.com/go-gl/mathgl/mgl32"

// Direction is one of the eight named horizontal compass directions an agent
// may travel in.
type Direction string

const (
	DirectionNorth     Direction = "north"
	DirectionNorthEast Direction = "northeast"
	DirectionEast      Direction = "east"
	DirectionSouthEast Direction = "southeast"
	DirectionSouth     Direction = "south"
	DirectionSouthWest Direction = "southwest"
	DirectionWest      Direction = "west"
	DirectionNorthWest Direction = "northwest"
)

// diagonalScale is the per-axis magnitude of a normalized diagonal, 1/sqrt(2).
const diagonalScale = 0.70710678118

// directionVecs maps every compass direction to its horizontal unit vector.
// North faces toward negative Z and east toward positive X.
var directionVecs = map[Direction]mgl32.Vec3{
	DirectionNorth:     {0, 0, -1},
	DirectionNorthEast: {diagonalScale, 0, -diagonalScale},
	DirectionEast:      {1, 0, 0},
	DirectionSouthEast: {diagonalScale, 0, diagonalScale},
	DirectionSouth:     {0, 0, 1},
	DirectionSouthWest: {-diagonalScale, 0, diagonalScale},
	DirectionWest:      {-1, 0, 0},
	DirectionNorthWest: {-diagonalScale, 0, -diagonalScale},
}

// Vec returns the unit vector of the direction. The second return value is
// false if the direction is not one of the eight known compass directions.
func (d Direction) Vec() (mgl32.Vec3, bool) {
	v, ok := directionVecs[d]
	return v, ok
}

// Directions returns the eight compass directions in clockwise order starting
// at north.
func Directions() []Direction {
	return []Direction{
		DirectionNorth, DirectionNorthEast, DirectionEast, DirectionSouthEast,
		DirectionSouth, DirectionSouthWest, DirectionWest, DirectionNorthWest,
	}
}
