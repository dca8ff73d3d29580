package mot

// BONE_RESOLVE_FAILED is returned when the translate table has no
// mapping for a record's bone reference. Callers are expected to skip
// that record's channel and keep going, a partial table is not a file
// format error.
const BONE_RESOLVE_FAILED = 0x0fff

// ResolveBoneIndex maps a record's packed bone reference to an index
// of the target skeleton through the model's translate table, a flat
// array forming a fixed depth nibble trie. The parent bone reference
// resolves to boneCount, one past the last valid index.
func ResolveBoneIndex(ref int16, table []int16, boneCount int) int {
	if ref == PARENT_BONE {
		return boneCount
	}

	index := lookup(table, int(ref>>8)&0xf)
	if index < 0 {
		return BONE_RESOLVE_FAILED
	}
	index = lookup(table, (int(ref>>4)&0xf)+index)
	if index < 0 {
		return BONE_RESOLVE_FAILED
	}
	index = lookup(table, (int(ref)&0xf)+index)
	if index < 0 {
		return BONE_RESOLVE_FAILED
	}
	return index
}

func lookup(table []int16, i int) int {
	if i < 0 || i >= len(table) {
		return -1
	}
	return int(table[i])
}
