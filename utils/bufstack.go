package utils

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BufStack is a little-endian read cursor over a chunk payload.
// Reads past the end panic with *BufOverrun; callers at the file boundary
// recover it into an error.
type BufStack struct {
	buf  []byte
	pos  int
	kind string
}

type BufOverrun struct {
	Kind   string
	Pos    int
	Want   int
	Length int
}

func (e *BufOverrun) Error() string {
	return fmt.Sprintf("buf<%s> overrun: need %d bytes at 0x%x, have 0x%x", e.Kind, e.Want, e.Pos, e.Length)
}

func NewBufStack(kind string, b []byte) *BufStack {
	return &BufStack{buf: b, kind: kind}
}

func (bs *BufStack) Kind() string { return bs.kind }
func (bs *BufStack) Pos() int     { return bs.pos }
func (bs *BufStack) Size() int    { return len(bs.buf) }
func (bs *BufStack) Left() int    { return len(bs.buf) - bs.pos }

// Tail returns unread bytes without advancing.
func (bs *BufStack) Tail() []byte {
	return bs.buf[bs.pos:]
}

func (bs *BufStack) String() string {
	return fmt.Sprintf("buf<%v>[p:0x%x,s:0x%x]", bs.kind, bs.pos, len(bs.buf))
}

func (bs *BufStack) Read(amount int) []byte {
	if amount < 0 || bs.pos+amount > len(bs.buf) {
		panic(&BufOverrun{Kind: bs.kind, Pos: bs.pos, Want: amount, Length: len(bs.buf)})
	}
	oldPos := bs.pos
	bs.pos += amount
	return bs.buf[oldPos:bs.pos]
}

func (bs *BufStack) Skip(amount int) {
	bs.Read(amount)
}

func (bs *BufStack) ReadLU32() uint32 {
	return binary.LittleEndian.Uint32(bs.Read(4))
}

func (bs *BufStack) ReadLU16() uint16 {
	return binary.LittleEndian.Uint16(bs.Read(2))
}

func (bs *BufStack) ReadLI32() int32 {
	return int32(bs.ReadLU32())
}

func (bs *BufStack) ReadLI16() int16 {
	return int16(bs.ReadLU16())
}

func (bs *BufStack) ReadByte() byte {
	return bs.Read(1)[0]
}

func (bs *BufStack) ReadLF() float32 {
	return math.Float32frombits(bs.ReadLU32())
}

func (bs *BufStack) ReadVec2() mgl32.Vec2 {
	return mgl32.Vec2{bs.ReadLF(), bs.ReadLF()}
}

func (bs *BufStack) ReadVec3() mgl32.Vec3 {
	return mgl32.Vec3{bs.ReadLF(), bs.ReadLF(), bs.ReadLF()}
}

// ReadMat4 reads 16 floats as stored. The on-disk layout keeps the
// translation in elements 12..14, which is mgl32's column-major layout.
func (bs *BufStack) ReadMat4() (m mgl32.Mat4) {
	for i := range m {
		m[i] = bs.ReadLF()
	}
	return m
}

// ReadQuat reads a W,X,Y,Z quaternion.
func (bs *BufStack) ReadQuat() mgl32.Quat {
	w := bs.ReadLF()
	return mgl32.Quat{W: w, V: bs.ReadVec3()}
}

// ReadFourCC reads a 4-byte tag like "TRAN" or "PTRN".
func (bs *BufStack) ReadFourCC() string {
	return string(bs.Read(4))
}

// ReadPString reads a length-prefixed (u8) NUL-padded string.
func (bs *BufStack) ReadPString() string {
	l := int(bs.ReadByte())
	return BytesToString(bs.Read(l))
}

func (bs *BufStack) ReadVec3Array(count int) []mgl32.Vec3 {
	if count*12 > bs.Left() {
		panic(&BufOverrun{Kind: bs.kind, Pos: bs.pos, Want: count * 12, Length: len(bs.buf)})
	}
	r := make([]mgl32.Vec3, count)
	for i := range r {
		r[i] = bs.ReadVec3()
	}
	return r
}

func (bs *BufStack) ReadLU16Array(count int) []uint16 {
	if count*2 > bs.Left() {
		panic(&BufOverrun{Kind: bs.kind, Pos: bs.pos, Want: count * 2, Length: len(bs.buf)})
	}
	r := make([]uint16, count)
	for i := range r {
		r[i] = bs.ReadLU16()
	}
	return r
}

func (bs *BufStack) ReadLU32Array(count int) []uint32 {
	if count*4 > bs.Left() {
		panic(&BufOverrun{Kind: bs.kind, Pos: bs.pos, Want: count * 4, Length: len(bs.buf)})
	}
	r := make([]uint32, count)
	for i := range r {
		r[i] = bs.ReadLU32()
	}
	return r
}
