// Package mmap provides a minimal read-only memory mapping for model
// files, with a heap-buffer fallback on platforms without mmap support.
package mmap
