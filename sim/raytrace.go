package sim

import (
	"iter"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// blocksBetween yields every grid position a ray from start to end passes
// through, in order, using voxel traversal over cell boundaries.
func blocksBetween(start, end mgl32.Vec3) iter.Seq[cube.Pos] {
	return func(yield func(cube.Pos) bool) {
		delta := end.Sub(start)
		if delta.LenSqr() <= 0 {
			return
		}
		dirVec := delta.Normalize()
		radius := delta.Len()

		stepX := sign(dirVec.X())
		stepY := sign(dirVec.Y())
		stepZ := sign(dirVec.Z())

		tMaxX := distanceToBoundary(start.X(), dirVec.X())
		tMaxY := distanceToBoundary(start.Y(), dirVec.Y())
		tMaxZ := distanceToBoundary(start.Z(), dirVec.Z())

		var tDeltaX, tDeltaY, tDeltaZ float32
		if dirVec.X() != 0 {
			tDeltaX = stepX / dirVec.X()
		}
		if dirVec.Y() != 0 {
			tDeltaY = stepY / dirVec.Y()
		}
		if dirVec.Z() != 0 {
			tDeltaZ = stepZ / dirVec.Z()
		}

		current := cube.PosFromVec3(start)
		for {
			if !yield(current) {
				return
			}

			if tMaxX < tMaxY && tMaxX < tMaxZ {
				if tMaxX > radius {
					return
				}
				current = current.Add(cube.Pos{int(stepX)})
				tMaxX += tDeltaX
			} else if tMaxY < tMaxZ {
				if tMaxY > radius {
					return
				}
				current = current.Add(cube.Pos{0, int(stepY)})
				tMaxY += tDeltaY
			} else {
				if tMaxZ > radius {
					return
				}
				current = current.Add(cube.Pos{0, 0, int(stepZ)})
				tMaxZ += tDeltaZ
			}
		}
	}
}

// distanceToBoundary returns the distance along the ray until the first cell
// boundary on one axis.
func distanceToBoundary(s, ds float32) float32 {
	if ds == 0 {
		return math32.MaxFloat32
	}
	if ds < 0 {
		s = -s
		ds = -ds
		if math32.Floor(s) == s {
			return 0
		}
	}
	return (1 - (s - math32.Floor(s))) / ds
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	} else if v > 0 {
		return 1
	}
	return 0
}
