// Package locator holds world markers: locators, triggers, splines, paths
// and fences.
package locator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const (
	CHUNK_LOCATOR = 0x00014000

	CHUNK_WALL           = 0x03000000
	CHUNK_WORLD_LOCATOR  = 0x03000005
	CHUNK_TRIGGER_VOLUME = 0x03000006
	CHUNK_SPLINE         = 0x03000007
	CHUNK_PATH           = 0x0300000B
	CHUNK_LOCATOR_MATRIX = 0x0300000C
	CHUNK_FENCE          = 0x03F00007
)

// Locator is the old-style named point.
type Locator struct {
	Name     string
	Position mgl32.Vec3
}

func (l *Locator) ChunkName() string { return l.Name }

func (l *Locator) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(l.Name)
	bw.WriteVec3(l.Position)
}

type WorldLocator struct {
	Name        string
	Type        uint32
	Data        []uint32
	Position    mgl32.Vec3
	NumTriggers uint32
}

func (wl *WorldLocator) ChunkName() string { return wl.Name }

func (wl *WorldLocator) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(wl.Name)
	bw.WriteLU32(wl.Type)
	bw.WriteLU32(uint32(len(wl.Data)))
	bw.WriteLU32Array(wl.Data)
	bw.WriteVec3(wl.Position)
	bw.WriteLU32(wl.NumTriggers)
}

type TriggerVolume struct {
	Name        string
	IsRect      uint32
	HalfExtents mgl32.Vec3
	Matrix      mgl32.Mat4
}

func (tv *TriggerVolume) ChunkName() string { return tv.Name }

func (tv *TriggerVolume) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(tv.Name)
	bw.WriteLU32(tv.IsRect)
	bw.WriteVec3(tv.HalfExtents)
	bw.WriteMat4(tv.Matrix)
}

type Spline struct {
	Name      string
	Positions []mgl32.Vec3
}

func (s *Spline) ChunkName() string { return s.Name }

func (s *Spline) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(s.Name)
	bw.WriteLU32(uint32(len(s.Positions)))
	bw.WriteVec3Array(s.Positions)
}

type LocatorMatrix struct {
	Matrix mgl32.Mat4
}

func (lm *LocatorMatrix) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteMat4(lm.Matrix)
}

type Path struct {
	Positions []mgl32.Vec3
}

func (p *Path) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(uint32(len(p.Positions)))
	bw.WriteVec3Array(p.Positions)
}

// Fence has no fields of its own, walls are its children.
type Fence struct{}

func (f *Fence) MarshalChunk(bw *utils.BufWriter) {}

// Wall normal lies on the X/Z plane and marks the blocking side.
type Wall struct {
	Start  mgl32.Vec3
	End    mgl32.Vec3
	Normal mgl32.Vec3
}

func (w *Wall) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteVec3(w.Start)
	bw.WriteVec3(w.End)
	bw.WriteVec3(w.Normal)
}

func init() {
	p3d.SetHandler(CHUNK_LOCATOR, "Locator", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Locator{Name: bs.ReadPString(), Position: bs.ReadVec3()}, nil
	})
	p3d.SetHandler(CHUNK_WORLD_LOCATOR, "WorldLocator", func(bs *utils.BufStack) (p3d.Payload, error) {
		wl := &WorldLocator{Name: bs.ReadPString(), Type: bs.ReadLU32()}
		wl.Data = bs.ReadLU32Array(int(bs.ReadLU32()))
		wl.Position = bs.ReadVec3()
		wl.NumTriggers = bs.ReadLU32()
		return wl, nil
	})
	p3d.SetHandler(CHUNK_TRIGGER_VOLUME, "TriggerVolume", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &TriggerVolume{
			Name:        bs.ReadPString(),
			IsRect:      bs.ReadLU32(),
			HalfExtents: bs.ReadVec3(),
			Matrix:      bs.ReadMat4(),
		}, nil
	})
	p3d.SetHandler(CHUNK_SPLINE, "Spline", func(bs *utils.BufStack) (p3d.Payload, error) {
		s := &Spline{Name: bs.ReadPString()}
		s.Positions = bs.ReadVec3Array(int(bs.ReadLU32()))
		return s, nil
	})
	p3d.SetHandler(CHUNK_LOCATOR_MATRIX, "LocatorMatrix", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &LocatorMatrix{Matrix: bs.ReadMat4()}, nil
	})
	p3d.SetHandler(CHUNK_PATH, "Path", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Path{Positions: bs.ReadVec3Array(int(bs.ReadLU32()))}, nil
	})
	p3d.SetHandler(CHUNK_FENCE, "Fence", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Fence{}, nil
	})
	p3d.SetHandler(CHUNK_WALL, "Wall", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Wall{Start: bs.ReadVec3(), End: bs.ReadVec3(), Normal: bs.ReadVec3()}, nil
	})
}
