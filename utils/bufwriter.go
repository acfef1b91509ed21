package utils

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BufWriter is the encoding counterpart of BufStack.
type BufWriter struct {
	bytes.Buffer
}

func NewBufWriter() *BufWriter {
	return &BufWriter{}
}

func (bw *BufWriter) WriteLU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	bw.Write(b[:])
}

func (bw *BufWriter) WriteLU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	bw.Write(b[:])
}

func (bw *BufWriter) WriteLI32(v int32) { bw.WriteLU32(uint32(v)) }
func (bw *BufWriter) WriteLI16(v int16) { bw.WriteLU16(uint16(v)) }

func (bw *BufWriter) WriteLF(v float32) {
	bw.WriteLU32(math.Float32bits(v))
}

func (bw *BufWriter) WriteVec2(v mgl32.Vec2) {
	bw.WriteLF(v[0])
	bw.WriteLF(v[1])
}

func (bw *BufWriter) WriteVec3(v mgl32.Vec3) {
	for _, f := range v {
		bw.WriteLF(f)
	}
}

func (bw *BufWriter) WriteMat4(m mgl32.Mat4) {
	for _, f := range m {
		bw.WriteLF(f)
	}
}

func (bw *BufWriter) WriteQuat(q mgl32.Quat) {
	bw.WriteLF(q.W)
	bw.WriteVec3(q.V)
}

// WriteFourCC writes exactly 4 bytes, space padded.
func (bw *BufWriter) WriteFourCC(s string) {
	b := [4]byte{' ', ' ', ' ', ' '}
	copy(b[:], s)
	bw.Write(b[:])
}

// WritePString writes a u8 length followed by the name NUL-padded to a
// multiple of 4 bytes (at least one terminating NUL).
func (bw *BufWriter) WritePString(s string) {
	raw := StringToBytes(s, true)
	padded := (len(raw) + 3) &^ 3
	if padded > 0xff {
		panic("string too long for p3d: " + s)
	}
	bw.WriteByte(byte(padded))
	bw.Write(raw)
	bw.Write(make([]byte, padded-len(raw)))
}

func (bw *BufWriter) WriteVec3Array(vs []mgl32.Vec3) {
	for _, v := range vs {
		bw.WriteVec3(v)
	}
}

func (bw *BufWriter) WriteLU16Array(vs []uint16) {
	for _, v := range vs {
		bw.WriteLU16(v)
	}
}

func (bw *BufWriter) WriteLU32Array(vs []uint32) {
	for _, v := range vs {
		bw.WriteLU32(v)
	}
}
