package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const (
	CHUNK_MESH                = 0x00010000
	CHUNK_SKIN                = 0x00010001
	CHUNK_OLD_PRIMITIVE_GROUP = 0x00010002
	CHUNK_BOUNDING_BOX        = 0x00010003
	CHUNK_BOUNDING_SPHERE     = 0x00010004
	CHUNK_POSITION_LIST       = 0x00010005
	CHUNK_NORMAL_LIST         = 0x00010006
	CHUNK_INDEX_LIST          = 0x0001000A
)

const (
	PRIMITIVE_TRIANGLE_LIST  = 0
	PRIMITIVE_TRIANGLE_STRIP = 1
	PRIMITIVE_LINE_LIST      = 2
	PRIMITIVE_LINE_STRIP     = 3
)

type Position = mgl32.Vec3
type Normal = mgl32.Vec3

type Mesh struct {
	Name          string
	Version       uint32
	NumPrimGroups uint32
}

func (m *Mesh) ChunkName() string { return m.Name }

func (m *Mesh) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(m.Name)
	bw.WriteLU32(m.Version)
	bw.WriteLU32(m.NumPrimGroups)
}

// Skin is a mesh bound to a skeleton; vertices are stored in bind space.
type Skin struct {
	Name          string
	Version       uint32
	SkeletonName  string
	NumPrimGroups uint32
}

func (s *Skin) ChunkName() string { return s.Name }

func (s *Skin) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(s.Name)
	bw.WriteLU32(s.Version)
	bw.WritePString(s.SkeletonName)
	bw.WriteLU32(s.NumPrimGroups)
}

type OldPrimitiveGroup struct {
	Version       uint32
	ShaderName    string
	PrimitiveType uint32
	VertexType    uint32
	NumVertices   uint32
	NumIndices    uint32
	NumMatrices   uint32
}

func (pg *OldPrimitiveGroup) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(pg.Version)
	bw.WritePString(pg.ShaderName)
	bw.WriteLU32(pg.PrimitiveType)
	bw.WriteLU32(pg.VertexType)
	bw.WriteLU32(pg.NumVertices)
	bw.WriteLU32(pg.NumIndices)
	bw.WriteLU32(pg.NumMatrices)
}

type PositionList struct {
	Positions []Position
}

func (pl *PositionList) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(uint32(len(pl.Positions)))
	bw.WriteVec3Array(pl.Positions)
}

type NormalList struct {
	Normals []Normal
}

func (nl *NormalList) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(uint32(len(nl.Normals)))
	bw.WriteVec3Array(nl.Normals)
}

type IndexList struct {
	Indices []uint32
}

func (il *IndexList) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(uint32(len(il.Indices)))
	bw.WriteLU32Array(il.Indices)
}

type BoundingBox struct {
	Low  mgl32.Vec3
	High mgl32.Vec3
}

func (bb *BoundingBox) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteVec3(bb.Low)
	bw.WriteVec3(bb.High)
}

type BoundingSphere struct {
	Centre mgl32.Vec3
	Radius float32
}

func (bs *BoundingSphere) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteVec3(bs.Centre)
	bw.WriteLF(bs.Radius)
}

func init() {
	p3d.SetHandler(CHUNK_MESH, "Mesh", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Mesh{
			Name:          bs.ReadPString(),
			Version:       bs.ReadLU32(),
			NumPrimGroups: bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_SKIN, "Skin", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Skin{
			Name:          bs.ReadPString(),
			Version:       bs.ReadLU32(),
			SkeletonName:  bs.ReadPString(),
			NumPrimGroups: bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_OLD_PRIMITIVE_GROUP, "OldPrimitiveGroup", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &OldPrimitiveGroup{
			Version:       bs.ReadLU32(),
			ShaderName:    bs.ReadPString(),
			PrimitiveType: bs.ReadLU32(),
			VertexType:    bs.ReadLU32(),
			NumVertices:   bs.ReadLU32(),
			NumIndices:    bs.ReadLU32(),
			NumMatrices:   bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_POSITION_LIST, "PositionList", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &PositionList{Positions: bs.ReadVec3Array(int(bs.ReadLU32()))}, nil
	})
	p3d.SetHandler(CHUNK_NORMAL_LIST, "NormalList", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &NormalList{Normals: bs.ReadVec3Array(int(bs.ReadLU32()))}, nil
	})
	p3d.SetHandler(CHUNK_INDEX_LIST, "IndexList", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &IndexList{Indices: bs.ReadLU32Array(int(bs.ReadLU32()))}, nil
	})
	p3d.SetHandler(CHUNK_BOUNDING_BOX, "BoundingBox", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &BoundingBox{Low: bs.ReadVec3(), High: bs.ReadVec3()}, nil
	})
	p3d.SetHandler(CHUNK_BOUNDING_SPHERE, "BoundingSphere", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &BoundingSphere{Centre: bs.ReadVec3(), Radius: bs.ReadLF()}, nil
	})
}
