package skel

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

const (
	CHUNK_SKELETON       = 0x00004500
	CHUNK_SKELETON_JOINT = 0x00004501

	CHUNK_COMPOSITE_DRAWABLE           = 0x00004512
	CHUNK_COMPOSITE_DRAWABLE_SKIN_LIST = 0x00004513
	CHUNK_COMPOSITE_DRAWABLE_PROP_LIST = 0x00004514
	CHUNK_COMPOSITE_DRAWABLE_SKIN      = 0x00004515
	CHUNK_COMPOSITE_DRAWABLE_PROP      = 0x00004516
)

type Skeleton struct {
	Name      string
	Version   uint32
	NumJoints uint32
}

func (s *Skeleton) ChunkName() string { return s.Name }

func (s *Skeleton) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(s.Name)
	bw.WriteLU32(s.Version)
	bw.WriteLU32(s.NumJoints)
}

// Joint rest pose is relative to the parent joint. The first joint is the
// root and its parent index points to itself.
type Joint struct {
	Name          string
	Parent        uint32
	DOF           int32
	FreeAxis      int32
	PrimaryAxis   int32
	SecondaryAxis int32
	TwistAxis     int32
	RestPose      mgl32.Mat4
}

func (j *Joint) ChunkName() string { return j.Name }

func (j *Joint) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(j.Name)
	bw.WriteLU32(j.Parent)
	bw.WriteLI32(j.DOF)
	bw.WriteLI32(j.FreeAxis)
	bw.WriteLI32(j.PrimaryAxis)
	bw.WriteLI32(j.SecondaryAxis)
	bw.WriteLI32(j.TwistAxis)
	bw.WriteMat4(j.RestPose)
}

type CompositeDrawable struct {
	Name         string
	SkeletonName string
}

func (cd *CompositeDrawable) ChunkName() string { return cd.Name }

func (cd *CompositeDrawable) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(cd.Name)
	bw.WritePString(cd.SkeletonName)
}

// ElementList is the payload of both the skin list and the prop list.
type ElementList struct {
	NumElements uint32
}

func (el *ElementList) MarshalChunk(bw *utils.BufWriter) {
	bw.WriteLU32(el.NumElements)
}

// DrawableSkin references a top-level skin by name.
type DrawableSkin struct {
	Name          string
	IsTranslucent uint32
}

func (ds *DrawableSkin) ChunkName() string { return ds.Name }

func (ds *DrawableSkin) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(ds.Name)
	bw.WriteLU32(ds.IsTranslucent)
}

// DrawableProp attaches a drawable to a joint, in that joint's space.
type DrawableProp struct {
	Name            string
	IsTranslucent   uint32
	SkeletonJointId uint32
}

func (dp *DrawableProp) ChunkName() string { return dp.Name }

func (dp *DrawableProp) MarshalChunk(bw *utils.BufWriter) {
	bw.WritePString(dp.Name)
	bw.WriteLU32(dp.IsTranslucent)
	bw.WriteLU32(dp.SkeletonJointId)
}

func loadElementList(bs *utils.BufStack) (p3d.Payload, error) {
	return &ElementList{NumElements: bs.ReadLU32()}, nil
}

func init() {
	p3d.SetHandler(CHUNK_SKELETON, "Skeleton", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Skeleton{
			Name:      bs.ReadPString(),
			Version:   bs.ReadLU32(),
			NumJoints: bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_SKELETON_JOINT, "SkeletonJoint", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &Joint{
			Name:          bs.ReadPString(),
			Parent:        bs.ReadLU32(),
			DOF:           bs.ReadLI32(),
			FreeAxis:      bs.ReadLI32(),
			PrimaryAxis:   bs.ReadLI32(),
			SecondaryAxis: bs.ReadLI32(),
			TwistAxis:     bs.ReadLI32(),
			RestPose:      bs.ReadMat4(),
		}, nil
	})
	p3d.SetHandler(CHUNK_COMPOSITE_DRAWABLE, "CompositeDrawable", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &CompositeDrawable{
			Name:         bs.ReadPString(),
			SkeletonName: bs.ReadPString(),
		}, nil
	})
	p3d.SetHandler(CHUNK_COMPOSITE_DRAWABLE_SKIN_LIST, "CompositeDrawableSkinList", loadElementList)
	p3d.SetHandler(CHUNK_COMPOSITE_DRAWABLE_PROP_LIST, "CompositeDrawablePropList", loadElementList)
	p3d.SetHandler(CHUNK_COMPOSITE_DRAWABLE_SKIN, "CompositeDrawableSkin", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &DrawableSkin{
			Name:          bs.ReadPString(),
			IsTranslucent: bs.ReadLU32(),
		}, nil
	})
	p3d.SetHandler(CHUNK_COMPOSITE_DRAWABLE_PROP, "CompositeDrawableProp", func(bs *utils.BufStack) (p3d.Payload, error) {
		return &DrawableProp{
			Name:            bs.ReadPString(),
			IsTranslucent:   bs.ReadLU32(),
			SkeletonJointId: bs.ReadLU32(),
		}, nil
	})
}
