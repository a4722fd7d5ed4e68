package buffer

// Buffer is an append-only byte sequence with an optional hard limit. It grows as the
// underlying slice does (amortized linear). If the limit is set, everything past maxSize
// is refused, so a peer can't make us allocate unbounded memory.
type Buffer struct {
	memory  []byte
	maxSize int
}

// New returns a buffer preallocating initialSize bytes. A maxSize of zero means the buffer
// isn't limited. Negative sizes are treated as zeroes.
func New(initialSize, maxSize int) Buffer {
	initialSize, maxSize = max(initialSize, 0), max(maxSize, 0)
	if maxSize > 0 && initialSize > maxSize {
		initialSize = maxSize
	}

	return Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if b.maxSize > 0 && len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// Len returns the number of bytes stored.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Bytes returns the stored data. The slice stays valid until Clear is called.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
