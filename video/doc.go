// Package video implements in-memory pixel surfaces: 2D byte buffers
// interpreted through a pluggable pixel format. Direct-color formats pack
// channels behind bit masks and shifts; indexed formats resolve small
// integer values through a shared palette, down to 1 and 4 bits per pixel.
//
// Surfaces support raw and color-level pixel access, rectangle fills,
// clipped and scaled blits with optional color-key transparency, and
// conversion between formats. Nothing here touches a window, a GPU, or the
// filesystem; a surface's buffer and pitch are exposed so presentation
// code can copy them out.
//
// A Surface has no internal locking. Sharing one between goroutines, or
// mutating a palette referenced by surfaces in use elsewhere, needs
// external synchronization.
package video
