// Package gatomic provides small generic wrappers around sync/atomic so that
// plain pointer-typed struct fields can be operated on atomically without
// every caller repeating the unsafe.Pointer conversion dance.
package gatomic

import (
	"sync/atomic"
	"unsafe"
)

func LoadPointer[T any](addr **T) *T {
	return (*T)(atomic.LoadPointer((*unsafe.Pointer)(unsafe.Pointer(addr))))
}

func StorePointer[T any](addr **T, val *T) {
	atomic.StorePointer((*unsafe.Pointer)(unsafe.Pointer(addr)), unsafe.Pointer(val))
}

func CompareAndSwapPointer[T any](addr **T, old, new *T) (swapped bool) {
	return atomic.CompareAndSwapPointer(
		(*unsafe.Pointer)(unsafe.Pointer(addr)),
		unsafe.Pointer(old),
		unsafe.Pointer(new),
	)
}

func LoadInt32(x *int32) int32 {
	return atomic.LoadInt32(x)
}

func StoreInt32(x *int32, v int32) {
	atomic.StoreInt32(x, v)
}

// Bool is a tiny atomic boolean backed by int32, following the same
// load/store convention as LoadInt32/StoreInt32 above rather than pulling
// in a second representation for a single bit of state.
type Bool struct {
	v int32
}

func (b *Bool) Load() bool {
	return atomic.LoadInt32(&b.v) != 0
}

func (b *Bool) Store(val bool) {
	var n int32
	if val {
		n = 1
	}
	atomic.StoreInt32(&b.v, n)
}
