// Package p3dtest holds helpers shared by chunk package tests.
package p3dtest

import (
	"bytes"
	"testing"

	"github.com/mogaika/p3d_offset/p3d"
)

// Reload writes f and reads it back, so payloads are decoded from bytes.
func Reload(t testing.TB, f *p3d.File) *p3d.File {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := p3d.Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return loaded
}

// Bytes encodes f.
func Bytes(t testing.TB, f *p3d.File) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf.Bytes()
}
