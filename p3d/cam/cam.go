package cam

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const CHUNK_CAMERA = 0x00002200

type Camera struct {
	Name     string
	Version  uint32
	FOV      float32
	Aspect   float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
	Look     mgl32.Vec3
	Up       mgl32.Vec3
}

func (c *Camera) ChunkName() string { return c.Name }

func (c *Camera) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(c.Name)
	bw.WriteLU32(c.Version)
	bw.WriteLF(c.FOV)
	bw.WriteLF(c.Aspect)
	bw.WriteLF(c.Near)
	bw.WriteLF(c.Far)
	bw.WriteVec3(c.Position)
	bw.WriteVec3(c.Look)
	bw.WriteVec3(c.Up)
}

func init() {
	p3d.SetHandler(CHUNK_CAMERA, "Camera", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Camera{
			Name:     bs.ReadPString(),
			Version:  bs.ReadLU32(),
			FOV:      bs.ReadLF(),
			Aspect:   bs.ReadLF(),
			Near:     bs.ReadLF(),
			Far:      bs.ReadLF(),
			Position: bs.ReadVec3(),
			Look:     bs.ReadVec3(),
			Up:       bs.ReadVec3(),
		}, nil
	})
}
