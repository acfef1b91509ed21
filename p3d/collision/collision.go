package collision

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const (
	CHUNK_OBJECT       = 0x07010000
	CHUNK_VOLUME       = 0x07010001
	CHUNK_SPHERE       = 0x07010002
	CHUNK_CYLINDER     = 0x07010003
	CHUNK_ORIENTED_BOX = 0x07010004
	CHUNK_WALL         = 0x07010005
	CHUNK_VECTOR       = 0x07010007
)

type Object struct {
	Name         string
	Version      uint32
	StringData   string
	NumSubObject uint32
	NumOwner     uint32
}

func (o *Object) ChunkName() string { return o.Name }

func (o *Object) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(o.Name)
	bw.WriteLU32(o.Version)
	bw.WritePString(o.StringData)
	bw.WriteLU32(o.NumSubObject)
	bw.WriteLU32(o.NumOwner)
}

// Volume groups shapes and nested volumes.
type Volume struct {
	ObjectReferenceIndex uint32
	OwnerIndex           int32
	NumSubVolume         uint32
}

func (v *Volume) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(v.ObjectReferenceIndex)
	bw.WriteLI32(v.OwnerIndex)
	bw.WriteLU32(v.NumSubVolume)
}

// Sphere has one Vector child, the centre.
type Sphere struct {
	Radius float32
}

func (s *Sphere) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLF(s.Radius)
}

// Cylinder has two Vector children, centre and axis.
type Cylinder struct {
	Radius  float32
	Length  float32
	FlatEnd uint16
}

func (c *Cylinder) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLF(c.Radius)
	bw.WriteLF(c.Length)
	bw.WriteLU16(c.FlatEnd)
}

// OrientedBox has four Vector children, centre and three axes.
type OrientedBox struct {
	HalfExtents mgl32.Vec3
}

func (ob *OrientedBox) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteVec3(ob.HalfExtents)
}

// Wall has two Vector children, a point on the plane and its normal.
type Wall struct{}

func (w *Wall) MarshalChunk(bw *utils.BufWriter) {}

type Vector struct {
	Value mgl32.Vec3
}

func (v *Vector) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteVec3(v.Value)
}

func init() {
	p3d.SetHandler(CHUNK_OBJECT, "CollisionObject", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Object{
			Name:         bs.ReadPString(),
			Version:      bs.ReadLU32(),
			StringData:   bs.ReadPString(),
			NumSubObject: bs.ReadLU32(),
			NumOwner:     bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_VOLUME, "CollisionVolume", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Volume{
			ObjectReferenceIndex: bs.ReadLU32(),
			OwnerIndex:           bs.ReadLI32(),
			NumSubVolume:         bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_SPHERE, "CollisionSphere", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Sphere{Radius: bs.ReadLF()}, nil
	})
	p3d.SetHandler(CHUNK_CYLINDER, "CollisionCylinder", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Cylinder{Radius: bs.ReadLF(), Length: bs.ReadLF(), FlatEnd: bs.ReadLU16()}, nil
	})
	p3d.SetHandler(CHUNK_ORIENTED_BOX, "CollisionOrientedBoundingBox", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &OrientedBox{HalfExtents: bs.ReadVec3()}, nil
	})
	p3d.SetHandler(CHUNK_WALL, "CollisionWall", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Wall{}, nil
	})
	p3d.SetHandler(CHUNK_VECTOR, "CollisionVector", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Vector{Value: bs.ReadVec3()}, nil
	})
}
