package world

// Field limits of the packed cell layout.
const (
	MaxID     = 0xFFF
	MaxNibble = 0xF

	// DefaultSkyLight is the sky light of a cell that was never written.
	DefaultSkyLight = 0xF
)

// Block is the full stored state of one cell.
type Block struct {
	ID         uint16
	Meta       uint8
	BlockLight uint8
	SkyLight   uint8
	Extra      uint8
}

// EmptyBlock is the state read from any cell that has never been written.
var EmptyBlock = Block{SkyLight: DefaultSkyLight}

// Extra values used by stateful blocks.
const (
	ExtraNormal uint8 = iota
	ExtraDoor
	ExtraPortal
)

func (b Block) validate() error {
	if b.ID > MaxID {
		return &ValueError{Field: "id", Value: int(b.ID), Max: MaxID}
	}
	if err := checkNibble("meta", b.Meta); err != nil {
		return err
	}
	if err := checkNibble("block light", b.BlockLight); err != nil {
		return err
	}
	return checkNibble("sky light", b.SkyLight)
}

func checkNibble(field string, v uint8) error {
	if v > MaxNibble {
		return &ValueError{Field: field, Value: int(v), Max: MaxNibble}
	}
	return nil
}

func checkID(id uint16) error {
	if id > MaxID {
		return &ValueError{Field: "id", Value: int(id), Max: MaxID}
	}
	return nil
}
