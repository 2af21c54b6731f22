package bind_group_provider

// BufferWrite describes a single GPU buffer write operation targeting a
// specific binding on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// NewBufferWrite builds a whole-buffer write at offset zero.
//
// Parameters:
//   - p: the provider owning the target buffer
//   - binding: the binding index of the target buffer
//   - data: the bytes to upload
//
// Returns:
//   - BufferWrite: the described write
func NewBufferWrite(p BindGroupProvider, binding int, data []byte) BufferWrite {
	return BufferWrite{Provider: p, Binding: binding, Data: data}
}
