// Package sg holds scene graph chunks. Placement is relative: a transform
// node is expressed in the space of its closest transform ancestor.
package sg

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const (
	CHUNK_SCENEGRAPH  = 0x00120100
	CHUNK_ROOT        = 0x00120101
	CHUNK_BRANCH      = 0x00120102
	CHUNK_TRANSFORM   = 0x00120103
	CHUNK_VISIBILITY  = 0x00120104
	CHUNK_DRAWABLE    = 0x00120107
	CHUNK_LIGHT_GROUP = 0x00120109

	CHUNK_INSTANCE_LIST = 0x03000008
)

type SceneGraph struct {
	Name    string
	Version uint32
}

func (s *SceneGraph) ChunkName() string { return s.Name }

func (s *SceneGraph) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(s.Name)
	bw.WriteLU32(s.Version)
}

type Root struct{}

func (r *Root) MarshalChunk(bw *utils.BufWriter) {}

type Branch struct {
	Name        string
	NumChildren uint32
}

func (b *Branch) ChunkName() string { return b.Name }

func (b *Branch) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(b.Name)
	bw.WriteLU32(b.NumChildren)
}

type Transform struct {
	Name        string
	NumChildren uint32
	Matrix      mgl32.Mat4
}

func (t *Transform) ChunkName() string { return t.Name }

func (t *Transform) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(t.Name)
	bw.WriteLU32(t.NumChildren)
	bw.WriteMat4(t.Matrix)
}

type Visibility struct {
	Name        string
	NumChildren uint32
	IsVisible   uint32
}

func (v *Visibility) ChunkName() string { return v.Name }

func (v *Visibility) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(v.Name)
	bw.WriteLU32(v.NumChildren)
	bw.WriteLU32(v.IsVisible)
}

// Drawable references a mesh, skin or composite drawable by name.
type Drawable struct {
	Name          string
	DrawableName  string
	IsTranslucent uint32
}

func (d *Drawable) ChunkName() string { return d.Name }

func (d *Drawable) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(d.Name)
	bw.WritePString(d.DrawableName)
	bw.WriteLU32(d.IsTranslucent)
}

// LightGroup references a top-level light group by name.
type LightGroup struct {
	Name           string
	LightGroupName string
}

func (lg *LightGroup) ChunkName() string { return lg.Name }

func (lg *LightGroup) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(lg.Name)
	bw.WritePString(lg.LightGroupName)
}

// InstanceList wraps a scene graph that places copies of its owner.
type InstanceList struct {
	Name string
}

func (il *InstanceList) ChunkName() string { return il.Name }

func (il *InstanceList) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(il.Name)
}

func init() {
	p3d.SetHandler(CHUNK_SCENEGRAPH, "SceneGraph", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &SceneGraph{Name: bs.ReadPString(), Version: bs.ReadLU32()}, nil
	})
	p3d.SetHandler(CHUNK_ROOT, "SceneGraphRoot", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Root{}, nil
	})
	p3d.SetHandler(CHUNK_BRANCH, "SceneGraphBranch", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Branch{Name: bs.ReadPString(), NumChildren: bs.ReadLU32()}, nil
	})
	p3d.SetHandler(CHUNK_TRANSFORM, "SceneGraphTransform", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Transform{Name: bs.ReadPString(), NumChildren: bs.ReadLU32(), Matrix: bs.ReadMat4()}, nil
	})
	p3d.SetHandler(CHUNK_VISIBILITY, "SceneGraphVisibility", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Visibility{Name: bs.ReadPString(), NumChildren: bs.ReadLU32(), IsVisible: bs.ReadLU32()}, nil
	})
	p3d.SetHandler(CHUNK_DRAWABLE, "SceneGraphDrawable", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Drawable{Name: bs.ReadPString(), DrawableName: bs.ReadPString(), IsTranslucent: bs.ReadLU32()}, nil
	})
	p3d.SetHandler(CHUNK_LIGHT_GROUP, "SceneGraphLightGroup", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &LightGroup{Name: bs.ReadPString(), LightGroupName: bs.ReadPString()}, nil
	})
	p3d.SetHandler(CHUNK_INSTANCE_LIST, "InstanceList", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &InstanceList{Name: bs.ReadPString()}, nil
	})
}
