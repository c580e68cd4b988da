package chunk

import (
	"github.com/icexin/voxelcore/internal/block"
	"github.com/icexin/voxelcore/internal/coord"
)

// Data is the dense block storage of one chunk, laid out x-major then y then
// z. The zero value is a chunk full of air.
type Data struct {
	blocks [coord.ChunkVolume]block.Block
}

func NewData() *Data {
	return &Data{}
}

// Filled returns a chunk where every cell holds b.
func Filled(b block.Block) *Data {
	d := &Data{}
	for i := range d.blocks {
		d.blocks[i] = b
	}
	return d
}

// Get returns the block at local offset v, or false when v does not fit.
func (d *Data) Get(v coord.BlockVector) (block.Block, bool) {
	l, ok := coord.ToLocal(v)
	if !ok {
		return block.Block{}, false
	}
	return d.blocks[l.Index()], true
}

func (d *Data) At(l coord.Local) block.Block {
	return d.blocks[l.Index()]
}

// Set stores b at v and returns the previous block. Nothing is written when
// v does not fit.
func (d *Data) Set(v coord.BlockVector, b block.Block) (block.Block, bool) {
	l, ok := coord.ToLocal(v)
	if !ok {
		return block.Block{}, false
	}
	return d.SetAt(l, b), true
}

func (d *Data) SetAt(l coord.Local, b block.Block) block.Block {
	prev := d.blocks[l.Index()]
	d.blocks[l.Index()] = b
	return prev
}

func (d *Data) Clear(v coord.BlockVector) (block.Block, bool) {
	return d.Set(v, block.Air)
}

// Iterate visits every cell in storage order until fn returns false.
func (d *Data) Iterate(fn func(l coord.Local, b block.Block) bool) {
	for i := range d.blocks {
		l, _ := coord.LocalAt(i)
		if !fn(l, d.blocks[i]) {
			return
		}
	}
}

func (d *Data) Count(pred func(block.Block) bool) int {
	n := 0
	for i := range d.blocks {
		if pred(d.blocks[i]) {
			n++
		}
	}
	return n
}

func (d *Data) IsEmpty() bool {
	for i := range d.blocks {
		if !d.blocks[i].IsAir() {
			return false
		}
	}
	return true
}

func (d *Data) Clone() *Data {
	c := *d
	return &c
}

// Chunk is a loaded chunk: its grid position and its blocks. Neighbors are
// looked up by position through whoever owns the chunk.
type Chunk struct {
	Position coord.ChunkPosition
	Data     *Data
}

func New(pos coord.ChunkPosition, data *Data) *Chunk {
	if data == nil {
		data = NewData()
	}
	return &Chunk{Position: pos, Data: data}
}

// Block returns the block at a global position if it lies in this chunk.
func (c *Chunk) Block(p coord.BlockPosition) (block.Block, bool) {
	l, cp := p.Local()
	if cp != c.Position {
		return block.Block{}, false
	}
	return c.Data.At(l), true
}
