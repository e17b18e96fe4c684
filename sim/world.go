// Package sim provides a small in-memory voxel world and an agent
// implementation backed by it, used by tests and the demo command to exercise
// movement without a real game server.
package sim

import (
	"sync"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/ethaniccc/float32-cube/cube"
)

// World is a sparse block store over a flat solid ground plane. Everything
// below y=0 is solid stone; placed blocks sit on top of it.
type World struct {
	mu      sync.Mutex
	blocks  map[cube.Pos]world.Block
	heights map[[2]int]int
}

// NewWorld returns an empty world with its ground plane at y=0.
func NewWorld() *World {
	return &World{
		blocks:  make(map[cube.Pos]world.Block),
		heights: make(map[[2]int]int),
	}
}

// SetBlock places a block at the given position.
func (w *World) SetBlock(pos cube.Pos, b world.Block) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.blocks[pos] = b
	if _, air := b.(block.Air); air {
		return
	}
	col := [2]int{pos.X(), pos.Z()}
	if top, ok := w.heights[col]; !ok || pos.Y() > top {
		w.heights[col] = pos.Y()
	}
}

// Block returns the block at the given position, air where nothing was
// placed.
func (w *World) Block(pos cube.Pos) world.Block {
	if pos.Y() < 0 {
		return block.Stone{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if b, ok := w.blocks[pos]; ok {
		return b
	}
	return block.Air{}
}

// Surface returns the y coordinate an entity stands at in the given column:
// the top of the highest solid block, or the ground plane.
func (w *World) Surface(x, z int) float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if top, ok := w.heights[[2]int{x, z}]; ok {
		return float32(top) + 1
	}
	return 0
}

// liquid reports whether the block is a liquid such as water or lava.
func liquid(b world.Block) bool {
	_, ok := b.(world.Liquid)
	return ok
}
