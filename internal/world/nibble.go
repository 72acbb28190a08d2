package world

// NibbleArray stores one 4-bit value per cell of a sub-chunk, two cells per
// byte: even index in the low nibble, odd index in the high nibble.
type NibbleArray [2048]byte

// Get returns the nibble for cell index i.
func (n *NibbleArray) Get(i int) uint8 {
	if i&1 == 0 {
		return n[i>>1] & 0x0F
	}
	return n[i>>1] >> 4
}

// Set stores the low 4 bits of v for cell index i, leaving the sibling
// nibble in the same byte untouched.
func (n *NibbleArray) Set(i int, v uint8) {
	b := &n[i>>1]
	if i&1 == 0 {
		*b = (*b & 0xF0) | (v & 0x0F)
	} else {
		*b = (*b & 0x0F) | (v << 4)
	}
}

// Fill sets every nibble to v.
func (n *NibbleArray) Fill(v uint8) {
	b := (v & 0x0F) | (v << 4)
	for i := range n {
		n[i] = b
	}
}
