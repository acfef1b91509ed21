package anm

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const (
	CHUNK_ANIMATION          = 0x00121000
	CHUNK_ANIMATION_GROUP    = 0x00121001
	CHUNK_GROUP_LIST         = 0x00121002
	CHUNK_ANIMATION_SIZE     = 0x00121004
	CHUNK_VECTOR1_DOF        = 0x00121102
	CHUNK_VECTOR2_DOF        = 0x00121103
	CHUNK_VECTOR3_DOF        = 0x00121104
	CHUNK_QUATERNION         = 0x00121105
	CHUNK_INTERPOLATION_MODE = 0x00121110
	CHUNK_COMPRESSED_QUAT    = 0x00121111

	CHUNK_OLD_FRAME_CONTROLLER = 0x00121200
)

// Channel params touched by rigid transforms.
const (
	PARAM_TRANSLATION = "TRAN"
	PARAM_LOOK        = "LOOK"
	PARAM_UP          = "UP  "
	PARAM_ROTATION    = "ROT "
)

// Vector1DOF mapping values.
const (
	AXIS_X = 0
	AXIS_Y = 1
	AXIS_Z = 2
)

type Animation struct {
	Version   uint32
	Name      string
	Type      string
	NumFrames float32
	FrameRate float32
	Cyclic    uint32
}

func (a *Animation) ChunkName() string { return a.Name }

func (a *Animation) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(a.Version)
	bw.WritePString(a.Name)
	bw.WriteFourCC(a.Type)
	bw.WriteLF(a.NumFrames)
	bw.WriteLF(a.FrameRate)
	bw.WriteLU32(a.Cyclic)
}

// Group holds the channels of one joint or object; Name matches the joint.
type Group struct {
	Version     uint32
	Name        string
	GroupId     uint32
	NumChannels uint32
}

func (g *Group) ChunkName() string { return g.Name }

func (g *Group) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(g.Version)
	bw.WritePString(g.Name)
	bw.WriteLU32(g.GroupId)
	bw.WriteLU32(g.NumChannels)
}

type GroupList struct {
	Version   uint32
	NumGroups uint32
}

func (gl *GroupList) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(gl.Version)
	bw.WriteLU32(gl.NumGroups)
}

// Size caches per-platform memory sizes of an animation.
type Size struct {
	Version uint32
	PC      uint32
	PS2     uint32
	XBOX    uint32
	GC      uint32
}

func (s *Size) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(s.Version)
	bw.WriteLU32(s.PC)
	bw.WriteLU32(s.PS2)
	bw.WriteLU32(s.XBOX)
	bw.WriteLU32(s.GC)
}

// Channel is implemented by every keyframed channel payload.
type Channel interface {
	p3d.Payload
	ChannelParam() string
	FrameCount() int
}

// ChannelHeader leads every channel payload.
type ChannelHeader struct {
	Version uint32
	Param   string
}

func (ch *ChannelHeader) ChannelParam() string { return ch.Param }

// Vector1DOF animates one axis, Mapping selects it; the other two come from
// Constants.
type Vector1DOF struct {
	ChannelHeader
	Mapping   uint16
	Constants mgl32.Vec3
	Frames    []uint16
	Values    []float32
}

func (c *Vector1DOF) FrameCount() int { return len(c.Frames) }

func (c *Vector1DOF) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(c.Version)
	bw.WriteFourCC(c.Param)
	bw.WriteLU16(c.Mapping)
	bw.WriteVec3(c.Constants)
	bw.WriteLU32(uint32(len(c.Frames)))
	bw.WriteLU16Array(c.Frames)
	for _, v := range c.Values {
		bw.WriteLF(v)
	}
}

// Vector2DOF keeps Mapping axis constant and animates the other two in
// X, Y, Z order.
type Vector2DOF struct {
	ChannelHeader
	Mapping   uint16
	Constants mgl32.Vec3
	Frames    []uint16
	Values    []mgl32.Vec2
}

func (c *Vector2DOF) FrameCount() int { return len(c.Frames) }

func (c *Vector2DOF) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(c.Version)
	bw.WriteFourCC(c.Param)
	bw.WriteLU16(c.Mapping)
	bw.WriteVec3(c.Constants)
	bw.WriteLU32(uint32(len(c.Frames)))
	bw.WriteLU16Array(c.Frames)
	for _, v := range c.Values {
		bw.WriteVec2(v)
	}
}

type Vector3DOF struct {
	ChannelHeader
	Frames []uint16
	Values []mgl32.Vec3
}

func (c *Vector3DOF) FrameCount() int { return len(c.Frames) }

func (c *Vector3DOF) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(c.Version)
	bw.WriteFourCC(c.Param)
	bw.WriteLU32(uint32(len(c.Frames)))
	bw.WriteLU16Array(c.Frames)
	bw.WriteVec3Array(c.Values)
}

type Quaternion struct {
	ChannelHeader
	Frames []uint16
	Values []mgl32.Quat
}

func (c *Quaternion) FrameCount() int { return len(c.Frames) }

func (c *Quaternion) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(c.Version)
	bw.WriteFourCC(c.Param)
	bw.WriteLU32(uint32(len(c.Frames)))
	bw.WriteLU16Array(c.Frames)
	for _, q := range c.Values {
		bw.WriteQuat(q)
	}
}

// CompressedQuaternion stores W,X,Y,Z scaled by 32767.
type CompressedQuaternion struct {
	ChannelHeader
	Frames []uint16
	Values [][4]int16
}

func (c *CompressedQuaternion) FrameCount() int { return len(c.Frames) }

func (c *CompressedQuaternion) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(c.Version)
	bw.WriteFourCC(c.Param)
	bw.WriteLU32(uint32(len(c.Frames)))
	bw.WriteLU16Array(c.Frames)
	for _, v := range c.Values {
		for _, x := range v {
			bw.WriteLI16(x)
		}
	}
}

type InterpolationMode struct {
	Version     uint32
	Interpolate uint32
}

func (im *InterpolationMode) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(im.Version)
	bw.WriteLU32(im.Interpolate)
}

// OldFrameController binds an animation to a hierarchy (skeleton, camera,
// light) by name.
type OldFrameController struct {
	Version       uint32
	Name          string
	Type          string
	FrameOffset   float32
	HierarchyName string
	AnimationName string
}

func (fc *OldFrameController) ChunkName() string { return fc.Name }

func (fc *OldFrameController) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(fc.Version)
	bw.WritePString(fc.Name)
	bw.WriteFourCC(fc.Type)
	bw.WriteLF(fc.FrameOffset)
	bw.WritePString(fc.HierarchyName)
	bw.WritePString(fc.AnimationName)
}

func readHeader(bs *utils.BufStack) ChannelHeader {
	return ChannelHeader{Version: bs.ReadLU32(), Param: bs.ReadFourCC()}
}

func init() {
	p3d.SetHandler(CHUNK_ANIMATION, "Animation", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Animation{
			Version:   bs.ReadLU32(),
			Name:      bs.ReadPString(),
			Type:      bs.ReadFourCC(),
			NumFrames: bs.ReadLF(),
			FrameRate: bs.ReadLF(),
			Cyclic:    bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_ANIMATION_GROUP, "AnimationGroup", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Group{
			Version:     bs.ReadLU32(),
			Name:        bs.ReadPString(),
			GroupId:     bs.ReadLU32(),
			NumChannels: bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_GROUP_LIST, "AnimationGroupList", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &GroupList{Version: bs.ReadLU32(), NumGroups: bs.ReadLU32()}, nil
	})
	p3d.SetHandler(CHUNK_ANIMATION_SIZE, "AnimationSize", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Size{
			Version: bs.ReadLU32(),
			PC:      bs.ReadLU32(),
			PS2:     bs.ReadLU32(),
			XBOX:    bs.ReadLU32(),
			GC:      bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_VECTOR1_DOF, "Vector1DOFChannel", func(bs *utils.BufStack) (p3d.Payload, error) {
		c := &Vector1DOF{
			ChannelHeader: readHeader(bs),
			Mapping:       bs.ReadLU16(),
			Constants:     bs.ReadVec3(),
		}
		count := int(bs.ReadLU32())
		c.Frames = bs.ReadLU16Array(count)
		c.Values = make([]float32, count)
		for i := range c.Values {
			c.Values[i] = bs.ReadLF()
		}
		return c, nil
	})
	p3d.SetHandler(CHUNK_VECTOR2_DOF, "Vector2DOFChannel", func(bs *utils.BufStack) (p3d.Payload, error) {
		c := &Vector2DOF{
			ChannelHeader: readHeader(bs),
			Mapping:       bs.ReadLU16(),
			Constants:     bs.ReadVec3(),
		}
		count := int(bs.ReadLU32())
		c.Frames = bs.ReadLU16Array(count)
		c.Values = make([]mgl32.Vec2, count)
		for i := range c.Values {
			c.Values[i] = bs.ReadVec2()
		}
		return c, nil
	})
	p3d.SetHandler(CHUNK_VECTOR3_DOF, "Vector3DOFChannel", func(bs *utils.BufStack) (p3d.Payload, error) {
		c := &Vector3DOF{ChannelHeader: readHeader(bs)}
		count := int(bs.ReadLU32())
		c.Frames = bs.ReadLU16Array(count)
		c.Values = bs.ReadVec3Array(count)
		return c, nil
	})
	p3d.SetHandler(CHUNK_QUATERNION, "QuaternionChannel", func(bs *utils.BufStack) (p3d.Payload, error) {
		c := &Quaternion{ChannelHeader: readHeader(bs)}
		count := int(bs.ReadLU32())
		c.Frames = bs.ReadLU16Array(count)
		c.Values = make([]mgl32.Quat, count)
		for i := range c.Values {
			c.Values[i] = bs.ReadQuat()
		}
		return c, nil
	})
	p3d.SetHandler(CHUNK_COMPRESSED_QUAT, "CompressedQuaternionChannel", func(bs *utils.BufStack) (p3d.Payload, error) {
		c := &CompressedQuaternion{ChannelHeader: readHeader(bs)}
		count := int(bs.ReadLU32())
		c.Frames = bs.ReadLU16Array(count)
		c.Values = make([][4]int16, count)
		for i := range c.Values {
			for j := range c.Values[i] {
				c.Values[i][j] = bs.ReadLI16()
			}
		}
		return c, nil
	})
	p3d.SetHandler(CHUNK_INTERPOLATION_MODE, "ChannelInterpolationMode", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &InterpolationMode{Version: bs.ReadLU32(), Interpolate: bs.ReadLU32()}, nil
	})
	p3d.SetHandler(CHUNK_OLD_FRAME_CONTROLLER, "OldFrameController", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &OldFrameController{
			Version:       bs.ReadLU32(),
			Name:          bs.ReadPString(),
			Type:          bs.ReadFourCC(),
			FrameOffset:   bs.ReadLF(),
			HierarchyName: bs.ReadPString(),
			AnimationName: bs.ReadPString(),
		}, nil
	})
}
