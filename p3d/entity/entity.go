// Package entity holds the world-building containers that own meshes,
// collision objects and composite drawables.
package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const (
	CHUNK_STATIC_ENTITY    = 0x03F00000
	CHUNK_STATIC_PHYS      = 0x03F00001
	CHUNK_DYNA_PHYS        = 0x03F00002
	CHUNK_INTERSECT        = 0x03F00003
	CHUNK_INST_STAT_ENTITY = 0x03F00008
	CHUNK_INST_STAT_PHYS   = 0x03F00009
	CHUNK_ANIM_COLL        = 0x03F0000A
	CHUNK_WORLD_SPHERE     = 0x03F0000B
	CHUNK_ANIM             = 0x03F0000C
	CHUNK_ANIM_DYNA_PHYS   = 0x03F0000E
)

// Entity is the common header of the entity kinds.
type Entity struct {
	Name     string
	Version  uint32
	HasAlpha uint32
}

func (e *Entity) ChunkName() string { return e.Name }

func (e *Entity) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(e.Name)
	bw.WriteLU32(e.Version)
	bw.WriteLU32(e.HasAlpha)
}

type StaticPhys struct {
	Name    string
	Version uint32
}

func (sp *StaticPhys) ChunkName() string { return sp.Name }

func (sp *StaticPhys) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(sp.Name)
	bw.WriteLU32(sp.Version)
}

// Intersect is a triangle soup used for ground queries. Normals are per face.
type Intersect struct {
	Indices   []uint32
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
}

func (i *Intersect) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(uint32(len(i.Indices)))
	bw.WriteLU32Array(i.Indices)
	bw.WriteLU32(uint32(len(i.Positions)))
	bw.WriteVec3Array(i.Positions)
	bw.WriteLU32(uint32(len(i.Normals)))
	bw.WriteVec3Array(i.Normals)
}

// WorldSphere is anchored to the camera; it rotates with the world but is
// never translated.
type WorldSphere struct {
	Name                   string
	Version                uint32
	NumMeshes              uint32
	NumBillboardQuadGroups uint32
}

func (ws *WorldSphere) ChunkName() string { return ws.Name }

func (ws *WorldSphere) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(ws.Name)
	bw.WriteLU32(ws.Version)
	bw.WriteLU32(ws.NumMeshes)
	bw.WriteLU32(ws.NumBillboardQuadGroups)
}

func loadEntity(bs *utils.BufStack) (p3d.Payload, error) {
	return &Entity{
		Name:     bs.ReadPString(),
		Version:  bs.ReadLU32(),
		HasAlpha: bs.ReadLU32(),
	}, nil
}

func init() {
	p3d.SetHandler(CHUNK_STATIC_ENTITY, "StaticEntity", loadEntity)
	p3d.SetHandler(CHUNK_DYNA_PHYS, "DynaPhys", loadEntity)
	p3d.SetHandler(CHUNK_INST_STAT_ENTITY, "InstStatEntity", loadEntity)
	p3d.SetHandler(CHUNK_INST_STAT_PHYS, "InstStatPhys", loadEntity)
	p3d.SetHandler(CHUNK_ANIM_COLL, "AnimColl", loadEntity)
	p3d.SetHandler(CHUNK_ANIM, "Anim", loadEntity)
	p3d.SetHandler(CHUNK_ANIM_DYNA_PHYS, "AnimDynaPhys", loadEntity)
	p3d.SetHandler(CHUNK_STATIC_PHYS, "StaticPhys", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &StaticPhys{Name: bs.ReadPString(), Version: bs.ReadLU32()}, nil
	})
	p3d.SetHandler(CHUNK_INTERSECT, "Intersect", func(bs *utils.BufStack) (p3d.Payload, error) {
		i := &Intersect{}
		i.Indices = bs.ReadLU32Array(int(bs.ReadLU32()))
		i.Positions = bs.ReadVec3Array(int(bs.ReadLU32()))
		i.Normals = bs.ReadVec3Array(int(bs.ReadLU32()))
		return i, nil
	})
	p3d.SetHandler(CHUNK_WORLD_SPHERE, "WorldSphere", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &WorldSphere{
			Name:                   bs.ReadPString(),
			Version:                bs.ReadLU32(),
			NumMeshes:              bs.ReadLU32(),
			NumBillboardQuadGroups: bs.ReadLU32(),
		}, nil
	})
}
