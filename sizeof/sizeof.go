package sizeof

import "unsafe"

const sliceHeader = 3 * 8

func Slice[V any](v []V) uint64 {
	return sliceHeader + uint64(unsafe.Sizeof(*new(V)))*uint64(cap(v))
}
