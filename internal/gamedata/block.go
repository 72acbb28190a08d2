package gamedata

// Block holds the static properties of one block type, in the shape of the
// minecraft-data blocks.json schema.
type Block struct {
	ID          int
	Name        string
	DisplayName string
	Hardness    *float64
	StackSize   int
	Diggable    bool
	BoundingBox string // "block" or "empty"
	Transparent bool
	EmitLight   int
	FilterLight int
}

// Solid reports whether the block has a full collision box.
func (b Block) Solid() bool {
	return b.BoundingBox == "block"
}

// Opaque reports whether the block stops light and hides what is behind it.
func (b Block) Opaque() bool {
	return !b.Transparent
}

// IsStandardID reports whether id is a block id understood by vanilla
// clients. Ids outside this range are server-side custom blocks.
func IsStandardID(id uint16) bool {
	return id <= 0xA4 || (id >= 0xAA && id <= 0xAF)
}
