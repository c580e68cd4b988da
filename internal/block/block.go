package block

import (
	"fmt"
	"strings"
)

// Info holds per-instance flags of a block.
type Info uint8

const (
	Powered Info = 1 << iota
	BlockMesh
)

func (i Info) Has(f Info) bool    { return i&f == f }
func (i Info) HasAny(f Info) bool { return i&f != 0 }

func (i Info) String() string {
	var parts []string
	if i.Has(Powered) {
		parts = append(parts, "powered")
	}
	if i.Has(BlockMesh) {
		parts = append(parts, "blockmesh")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "|")
}

// Block is the value stored in every cell of a chunk. Two blocks are equal
// when all of their fields are.
type Block struct {
	Type uint16
	Data uint8
	Info Info
}

const (
	TypeAir uint16 = iota
	TypeStone
	TypeDirt
	TypeGrass
	TypeLog
	TypeWood
)

var (
	Air   = Block{Type: TypeAir}
	Stone = Block{Type: TypeStone}
	Dirt  = Block{Type: TypeDirt}
	Grass = Block{Type: TypeGrass}
	Log   = Block{Type: TypeLog}
	Wood  = Block{Type: TypeWood}
)

func New(tp uint16) Block {
	return Block{Type: tp}
}

func (b Block) IsAir() bool {
	return b.Type == TypeAir
}

func (b Block) String() string {
	return fmt.Sprintf("block(%d:%d %v)", b.Type, b.Data, b.Info)
}
