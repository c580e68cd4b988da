package coord

// Local is an in-chunk offset that is known to fit. It can only be built
// through the validating constructors below, which lets chunk storage index
// with it without a range check.
type Local struct {
	v   BlockVector
	idx int
}

func newLocal(v BlockVector) Local {
	return Local{v: v, idx: int(v.X<<(2*ChunkSizeExp) | v.Y<<ChunkSizeExp | v.Z)}
}

// ToLocal validates v.
func ToLocal(v BlockVector) (Local, bool) {
	if !v.Fits() {
		return Local{}, false
	}
	return newLocal(v), true
}

// LocalAt returns the offset stored at flat index i (x outer, z inner).
func LocalAt(i int) (Local, bool) {
	if i < 0 || i >= ChunkVolume {
		return Local{}, false
	}
	return Local{
		v: BlockVector{
			X: int64(i >> (2 * ChunkSizeExp)),
			Y: int64(i>>ChunkSizeExp) & BlockBits,
			Z: int64(i) & BlockBits,
		},
		idx: i,
	}, true
}

func (l Local) Vector() BlockVector {
	return l.v
}

// Index is the flat row-major index of the offset.
func (l Local) Index() int {
	return l.idx
}

func (l Local) String() string {
	return l.v.String()
}

// OnBoundary reports whether the offset touches the chunk face f.
func (l Local) OnBoundary(f Face) bool {
	n := f.Normal()
	switch {
	case n.X > 0:
		return l.v.X == BlockBits
	case n.X < 0:
		return l.v.X == 0
	case n.Y > 0:
		return l.v.Y == BlockBits
	case n.Y < 0:
		return l.v.Y == 0
	case n.Z > 0:
		return l.v.Z == BlockBits
	default:
		return l.v.Z == 0
	}
}
