package table

// TableSize is the number of marker slots, one per value of the 16 bit
// rolling hash.
const TableSize = 1 << 16

// PrefixTable maps byte-string keys to values and answers the question
// "which keys are prefixes of this input?" without probing the map for every
// prefix length.
//
// Every prefix of every inserted key is hashed into a 16 bit slot and marked.
// A walk over an input stops at the first prefix whose slot is unmarked, and
// only probes the map when the slot says a complete key may end there. Hash
// collisions can cause extra probes, never missed keys.
type PrefixTable[T any] struct {
	marks  [TableSize]byte
	elems  map[string]T
	maxLen int
}

const (
	none = iota
	// prefixMark: some key has a prefix hashing to this slot.
	prefixMark
	// keyMark: some complete key hashes to this slot.
	keyMark
)

func New[T any]() *PrefixTable[T] {
	return &PrefixTable[T]{
		elems: make(map[string]T),
	}
}

func next(h uint16, b byte) uint16 {
	return (h << 2) + uint16(b)
}

// Insert stores v under key, replacing any previous value. Empty keys are
// ignored, since they would be a prefix of every input.
func (t *PrefixTable[T]) Insert(key []byte, v T) {
	if len(key) == 0 {
		return
	}

	var h uint16
	for _, b := range key {
		h = next(h, b)
		t.marks[h] = max(t.marks[h], prefixMark)
	}
	t.marks[h] = keyMark
	t.elems[string(key)] = v
	t.maxLen = max(t.maxLen, len(key))
}

func (t *PrefixTable[T]) Get(key []byte) (T, bool) {
	v, found := t.elems[string(key)]
	return v, found
}

// Walk calls onMatch, shortest first, for every stored key that is a prefix
// of input, passing the key length and its value. Walking stops early when
// onMatch returns true.
func (t *PrefixTable[T]) Walk(input []byte, onMatch func(n int, v T) bool) {
	if len(t.elems) == 0 {
		return
	}

	var h uint16
	for i, b := range input[:min(len(input), t.maxLen)] {
		h = next(h, b)

		switch t.marks[h] {
		case none:
			return
		case keyMark:
			if v, ok := t.elems[string(input[:i+1])]; ok && onMatch(i+1, v) {
				return
			}
		}
	}
}

// Size returns the number of stored keys.
func (t *PrefixTable[T]) Size() int {
	return len(t.elems)
}

// MaxKeyLen returns the length of the longest stored key.
func (t *PrefixTable[T]) MaxKeyLen() int {
	return t.maxLen
}
