package coord

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ChunkSizeExp = 4
	ChunkSize    = 1 << ChunkSizeExp
	BlockBits    = ChunkSize - 1
	ChunkBits    = ^int64(BlockBits)

	// ChunkVolume is the number of blocks stored in one chunk.
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkOf returns the chunk index owning the global block coordinate c.
// The shift is arithmetic, so negative coordinates round towards -inf.
func ChunkOf(c int64) int64 {
	return c >> ChunkSizeExp
}

// LocalOf returns the offset of c inside its chunk, always in [0, ChunkSize).
func LocalOf(c int64) int64 {
	return c & BlockBits
}

// BlockVector is an offset between two block coordinates, or a chunk-local
// offset.
type BlockVector struct {
	X, Y, Z int64
}

func Vec(x, y, z int64) BlockVector {
	return BlockVector{x, y, z}
}

func (v BlockVector) String() string {
	return fmt.Sprintf("<%d | %d | %d>", v.X, v.Y, v.Z)
}

// Fits reports whether every component lies in [0, ChunkSize).
func (v BlockVector) Fits() bool {
	return v.X&ChunkBits == 0 && v.Y&ChunkBits == 0 && v.Z&ChunkBits == 0
}

func (v BlockVector) Add(o BlockVector) BlockVector {
	return BlockVector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v BlockVector) Sub(o BlockVector) BlockVector {
	return BlockVector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v BlockVector) Scale(f int64) BlockVector {
	return BlockVector{v.X * f, v.Y * f, v.Z * f}
}

func (v BlockVector) Neg() BlockVector {
	return v.Scale(-1)
}

func (v BlockVector) IsZero() bool {
	return v == BlockVector{}
}

// ChunkRelative masks every component into [0, ChunkSize).
func (v BlockVector) ChunkRelative() BlockVector {
	return BlockVector{v.X & BlockBits, v.Y & BlockBits, v.Z & BlockBits}
}

func (v BlockVector) Global() BlockPosition {
	return BlockPosition{v}
}

// Vec3 converts the vector to float space.
func (v BlockVector) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func (v BlockVector) Left() BlockVector  { return v.Add(FaceNegX.Normal()) }
func (v BlockVector) Right() BlockVector { return v.Add(FacePosX.Normal()) }
func (v BlockVector) Up() BlockVector    { return v.Add(FacePosY.Normal()) }
func (v BlockVector) Down() BlockVector  { return v.Add(FaceNegY.Normal()) }
func (v BlockVector) Front() BlockVector { return v.Add(FacePosZ.Normal()) }
func (v BlockVector) Back() BlockVector  { return v.Add(FaceNegZ.Normal()) }

// Adjacent returns the six face neighbors in Faces order.
func (v BlockVector) Adjacent() [6]BlockVector {
	return [6]BlockVector{v.Right(), v.Up(), v.Front(), v.Left(), v.Down(), v.Back()}
}

// BlockPosition is the absolute world coordinate of one block.
type BlockPosition struct {
	v BlockVector
}

func Pos(x, y, z int64) BlockPosition {
	return BlockPosition{BlockVector{x, y, z}}
}

// BlockPositionFromVec returns the block containing the world point p.
func BlockPositionFromVec(p mgl32.Vec3) BlockPosition {
	return Pos(
		int64(math.Floor(float64(p.X()))),
		int64(math.Floor(float64(p.Y()))),
		int64(math.Floor(float64(p.Z()))),
	)
}

func (p BlockPosition) String() string {
	return p.v.String()
}

func (p BlockPosition) X() int64 { return p.v.X }
func (p BlockPosition) Y() int64 { return p.v.Y }
func (p BlockPosition) Z() int64 { return p.v.Z }

func (p BlockPosition) Vector() BlockVector {
	return p.v
}

func (p BlockPosition) Add(o BlockVector) BlockPosition {
	return BlockPosition{p.v.Add(o)}
}

func (p BlockPosition) Sub(o BlockPosition) BlockVector {
	return p.v.Sub(o.v)
}

// Chunk returns the chunk this block belongs to.
func (p BlockPosition) Chunk() ChunkPosition {
	return ChunkPosition{ChunkOf(p.v.X), ChunkOf(p.v.Y), ChunkOf(p.v.Z)}
}

// ChunkRelative returns the in-chunk offset of the block. The result always
// fits, so it is handed out as a Local.
func (p BlockPosition) ChunkRelative() Local {
	return newLocal(p.v.ChunkRelative())
}

func (p BlockPosition) Local() (Local, ChunkPosition) {
	return p.ChunkRelative(), p.Chunk()
}

func (p BlockPosition) Neighbor(f Face) BlockPosition {
	return p.Add(f.Normal())
}

func (p BlockPosition) Adjacent() [6]BlockPosition {
	var out [6]BlockPosition
	for i, v := range p.v.Adjacent() {
		out[i] = BlockPosition{v}
	}
	return out
}

// LowerCorner is the minimum corner of the block's unit cube.
func (p BlockPosition) LowerCorner() mgl32.Vec3 {
	return p.v.Vec3()
}

// HigherCorner is the maximum corner of the block's unit cube.
func (p BlockPosition) HigherCorner() mgl32.Vec3 {
	return p.v.Vec3().Add(mgl32.Vec3{1, 1, 1})
}

func (p BlockPosition) Center() mgl32.Vec3 {
	return p.v.Vec3().Add(mgl32.Vec3{0.5, 0.5, 0.5})
}

// ChunkPosition is a coordinate in chunk-grid units.
type ChunkPosition struct {
	X, Y, Z int64
}

// ChunkPositionFromVec returns the chunk containing the world point p.
func ChunkPositionFromVec(p mgl32.Vec3) ChunkPosition {
	return BlockPositionFromVec(p).Chunk()
}

func (c ChunkPosition) String() string {
	return fmt.Sprintf("[%d | %d | %d]", c.X, c.Y, c.Z)
}

// Add places a chunk-local offset in the world.
func (c ChunkPosition) Add(v BlockVector) BlockPosition {
	return Pos(
		c.X<<ChunkSizeExp+v.X,
		c.Y<<ChunkSizeExp+v.Y,
		c.Z<<ChunkSizeExp+v.Z,
	)
}

// Origin is the global position of the chunk's (0,0,0) block.
func (c ChunkPosition) Origin() BlockPosition {
	return c.Add(BlockVector{})
}

// Center is the world-space center of the chunk.
func (c ChunkPosition) Center() mgl32.Vec3 {
	half := float32(ChunkSize) / 2
	return c.Origin().LowerCorner().Add(mgl32.Vec3{half, half, half})
}

func (c ChunkPosition) Offset(x, y, z int64) ChunkPosition {
	return ChunkPosition{c.X + x, c.Y + y, c.Z + z}
}

func (c ChunkPosition) Neighbor(f Face) ChunkPosition {
	n := f.Normal()
	return c.Offset(n.X, n.Y, n.Z)
}
