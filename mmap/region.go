package mmap

// Region represents a subsection of a memory mapping.
// It does not own the memory; the parent Mapping does.
type Region struct {
	parent *Mapping
	offset int
	size   int
}

// Region creates a new view into the mapping.
func (m *Mapping) Region(offset, size int) (*Region, error) {
	if m.released.Load() {
		return nil, ErrClosed
	}
	if offset < 0 || size < 0 || offset > m.size-size {
		return nil, ErrOutOfBounds
	}
	return &Region{
		parent: m,
		offset: offset,
		size:   size,
	}, nil
}

// Region creates a view into this region. The new view still refers to the
// owning Mapping, never to r.
func (r *Region) Region(offset, size int) (*Region, error) {
	if offset < 0 || size < 0 || offset > r.size-size {
		return nil, ErrOutOfBounds
	}
	return r.parent.Region(r.offset+offset, size)
}

// Owner returns the Mapping that owns the memory behind this view.
func (r *Region) Owner() *Mapping {
	return r.parent
}

// Offset returns the offset of the view within its owner.
func (r *Region) Offset() int {
	return r.offset
}

// Size returns the size of the view in bytes.
func (r *Region) Size() int {
	return r.size
}

// Direct reports whether the owner is backed by mapped memory.
func (r *Region) Direct() bool {
	return r != nil && r.parent.Direct()
}

// Bytes returns the byte slice for this region.
// Warning: The slice is valid only until the parent Mapping is released.
func (r *Region) Bytes() []byte {
	if r == nil || r.parent == nil || r.parent.released.Load() {
		return nil
	}
	return r.parent.data[r.offset : r.offset+r.size : r.offset+r.size]
}

// Advise provides hints to the kernel about how this region will be accessed.
func (r *Region) Advise(pattern AccessPattern) error {
	if r == nil || r.parent == nil {
		return nil
	}
	if r.parent.released.Load() {
		return ErrClosed
	}
	if r.parent.unmap == nil {
		return nil
	}
	// We need to advise only the slice corresponding to this region.
	data := r.parent.data[r.offset : r.offset+r.size]
	return osAdvise(data, pattern)
}
