// File: payload/payload.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Immutable payload buffer shared by all workers, with contiguous-chunk
// computation over a logically unbounded repetition of the payload.

package payload

import "github.com/momentics/hioload-tcpgen/api"

// Source wraps the payload bytes every connection transmits in a loop.
// The buffer is copied at construction and never mutated afterwards, so a
// single Source is safely shared across all workers without ownership
// transfer.
type Source struct {
	data []byte
}

// NewSource copies data into an immutable Source. The payload must be at
// least one byte long; the infinite repetition of an empty payload is
// meaningless.
func NewSource(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, api.ErrEmptyPayload
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Source{data: buf}, nil
}

// Len returns the payload length in bytes.
func (s *Source) Len() int {
	return len(s.data)
}

// Bytes exposes the backing buffer. Callers must treat it as read-only.
func (s *Source) Bytes() []byte {
	return s.data
}

// Chunk returns the largest contiguous byte range available for a single
// write call, given a cursor into the logical payload stream. While the
// cursor lies inside the buffer the chunk runs from the cursor to the end;
// once the cursor has consumed the whole buffer it wraps, and the full
// buffer is returned again. base is the cursor position the returned chunk
// starts at: after writing n bytes of the chunk the caller's next cursor is
// base + n. The wrap is exact: reassembling every written chunk yields the
// payload repeated verbatim, with no gap or duplication.
func (s *Source) Chunk(off int) (chunk []byte, base int) {
	if off >= len(s.data) || off < 0 {
		return s.data, 0
	}
	return s.data[off:], off
}
