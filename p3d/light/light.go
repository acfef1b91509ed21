package light

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const (
	CHUNK_LIGHT           = 0x00013000
	CHUNK_LIGHT_DIRECTION = 0x00013001
	CHUNK_LIGHT_POSITION  = 0x00013002
	CHUNK_LIGHT_GROUP     = 0x00002380
)

const (
	TYPE_AMBIENT     = 0
	TYPE_POINT       = 1
	TYPE_DIRECTIONAL = 2
	TYPE_SPOT        = 3
)

type Light struct {
	Name     string
	Version  uint32
	Type     uint32
	Colour   uint32
	Constant float32
	Linear   float32
	Squared  float32
	Enabled  uint32
}

func (l *Light) ChunkName() string { return l.Name }

func (l *Light) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(l.Name)
	bw.WriteLU32(l.Version)
	bw.WriteLU32(l.Type)
	bw.WriteLU32(l.Colour)
	bw.WriteLF(l.Constant)
	bw.WriteLF(l.Linear)
	bw.WriteLF(l.Squared)
	bw.WriteLU32(l.Enabled)
}

// Vector is the payload of both the position and the direction child.
type Vector struct {
	Value mgl32.Vec3
}

func (v *Vector) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteVec3(v.Value)
}

type Group struct {
	Name   string
	Lights []string
}

func (g *Group) ChunkName() string { return g.Name }

func (g *Group) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(g.Name)
	bw.WriteLU32(uint32(len(g.Lights)))
	for _, name := range g.Lights {
		bw.WritePString(name)
	}
}

func loadVector(bs *utils.BufStack) (p3d.Payload, error) {
	return &Vector{Value: bs.ReadVec3()}, nil
}

func init() {
	p3d.SetHandler(CHUNK_LIGHT, "Light", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Light{
			Name:     bs.ReadPString(),
			Version:  bs.ReadLU32(),
			Type:     bs.ReadLU32(),
			Colour:   bs.ReadLU32(),
			Constant: bs.ReadLF(),
			Linear:   bs.ReadLF(),
			Squared:  bs.ReadLF(),
			Enabled:  bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_LIGHT_DIRECTION, "LightDirection", loadVector)
	p3d.SetHandler(CHUNK_LIGHT_POSITION, "LightPosition", loadVector)
	p3d.SetHandler(CHUNK_LIGHT_GROUP, "LightGroup", func(bs *utils.BufStack) (p3d.Payload, error) {
		g := &Group{Name: bs.ReadPString()}
		count := int(bs.ReadLU32())
		if count > bs.Left() {
			return nil, &utils.BufOverrun{Kind: bs.Kind(), Pos: bs.Pos(), Want: count, Length: bs.Size()}
		}
		g.Lights = make([]string, count)
		for i := range g.Lights {
			g.Lights[i] = bs.ReadPString()
		}
		return g, nil
	})
}
