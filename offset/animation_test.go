package offset

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/anm"
	"github.com/mogaika/p3d_offset/p3d/mesh"
	"github.com/mogaika/p3d_offset/p3d/sg"
	"github.com/mogaika/p3d_offset/p3d/skel"
	"github.com/mogaika/p3d_offset/utils"
)

// addCharacter builds a skinned composite drawable with a two joint
// skeleton and a walk animation in scope.
func addCharacter(f *p3d.File, scope p3d.NodeId) {
	addMesh(f, scope, mesh.CHUNK_SKIN, "body", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 2, 0})
	addMesh(f, scope, mesh.CHUNK_MESH, "hat", mgl32.Vec3{0, 0.5, 0})

	s := f.AddChild(scope, skel.CHUNK_SKELETON, &skel.Skeleton{Name: "hero_skel", NumJoints: 2})
	f.AddChild(s, skel.CHUNK_SKELETON_JOINT, &skel.Joint{Name: "root", RestPose: mgl32.Translate3D(0, 1, 0)})
	f.AddChild(s, skel.CHUNK_SKELETON_JOINT, &skel.Joint{Name: "head", RestPose: mgl32.Translate3D(0, 1, 0)})

	cd := f.AddChild(scope, skel.CHUNK_COMPOSITE_DRAWABLE, &skel.CompositeDrawable{Name: "hero", SkeletonName: "hero_skel"})
	skins := f.AddChild(cd, skel.CHUNK_COMPOSITE_DRAWABLE_SKIN_LIST, &skel.ElementList{NumElements: 2})
	f.AddChild(skins, skel.CHUNK_COMPOSITE_DRAWABLE_SKIN, &skel.DrawableSkin{Name: "body"})
	f.AddChild(skins, skel.CHUNK_COMPOSITE_DRAWABLE_SKIN, &skel.DrawableSkin{Name: "no_such_skin"})
	props := f.AddChild(cd, skel.CHUNK_COMPOSITE_DRAWABLE_PROP_LIST, &skel.ElementList{NumElements: 1})
	f.AddChild(props, skel.CHUNK_COMPOSITE_DRAWABLE_PROP, &skel.DrawableProp{Name: "hat", SkeletonJointId: 1})

	for _, name := range []string{"fc_walk", "fc_walk_again"} {
		f.AddChild(scope, anm.CHUNK_OLD_FRAME_CONTROLLER, &anm.OldFrameController{
			Name: name, Type: "PTRN", HierarchyName: "hero_skel", AnimationName: "walk",
		})
	}
	f.AddChild(scope, anm.CHUNK_OLD_FRAME_CONTROLLER, &anm.OldFrameController{
		Name: "fc_other", Type: "PTRN", HierarchyName: "someone_else", AnimationName: "walk",
	})

	anim := f.AddChild(scope, anm.CHUNK_ANIMATION, &anm.Animation{Name: "walk", Type: "PTRN", NumFrames: 2, FrameRate: 30})
	f.AddChild(anim, anm.CHUNK_ANIMATION_SIZE, &anm.Size{PC: 1})
	f.AddChild(anim, anm.CHUNK_ANIMATION_SIZE, &anm.Size{PC: 2})
	list := f.AddChild(anim, anm.CHUNK_GROUP_LIST, &anm.GroupList{NumGroups: 2})

	root := f.AddChild(list, anm.CHUNK_ANIMATION_GROUP, &anm.Group{Name: "root", NumChannels: 4})
	tran := f.AddChild(root, anm.CHUNK_VECTOR1_DOF, &anm.Vector1DOF{
		ChannelHeader: anm.ChannelHeader{Param: anm.PARAM_TRANSLATION},
		Mapping:       anm.AXIS_Y,
		Constants:     mgl32.Vec3{1, 0, 3},
		Frames:        []uint16{0, 1},
		Values:        []float32{5, 6},
	})
	f.AddChild(tran, anm.CHUNK_INTERPOLATION_MODE, &anm.InterpolationMode{Interpolate: 1})
	f.AddChild(root, anm.CHUNK_VECTOR2_DOF, &anm.Vector2DOF{
		ChannelHeader: anm.ChannelHeader{Param: anm.PARAM_LOOK},
		Mapping:       anm.AXIS_Y,
		Constants:     mgl32.Vec3{0, 7, 0},
		Frames:        []uint16{0, 1},
		Values:        []mgl32.Vec2{{1, 2}, {3, 4}},
	})
	f.AddChild(root, anm.CHUNK_QUATERNION, &anm.Quaternion{
		ChannelHeader: anm.ChannelHeader{Param: anm.PARAM_ROTATION},
		Frames:        []uint16{0},
		Values:        []mgl32.Quat{mgl32.QuatIdent()},
	})
	f.AddChild(root, anm.CHUNK_COMPRESSED_QUAT, &anm.CompressedQuaternion{
		ChannelHeader: anm.ChannelHeader{Param: anm.PARAM_ROTATION},
		Frames:        []uint16{0},
		Values:        [][4]int16{utils.QuatToStorage(mgl32.QuatIdent())},
	})

	head := f.AddChild(list, anm.CHUNK_ANIMATION_GROUP, &anm.Group{Name: "head", NumChannels: 1})
	f.AddChild(head, anm.CHUNK_VECTOR1_DOF, &anm.Vector1DOF{
		ChannelHeader: anm.ChannelHeader{Param: anm.PARAM_TRANSLATION},
		Mapping:       anm.AXIS_X,
		Frames:        []uint16{0},
		Values:        []float32{9},
	})
}

func rootGroup(t *testing.T, f *p3d.File, scope p3d.NodeId, group string) p3d.NodeId {
	anim := byName(t, f, scope, anm.CHUNK_ANIMATION, "walk")
	return byName(t, f, f.FirstOfType(anim, anm.CHUNK_GROUP_LIST), anm.CHUNK_ANIMATION_GROUP, group)
}

func TestCompositeDrawable(t *testing.T) {
	f := p3d.NewFile()
	addCharacter(f, p3d.NODE_INVALID)

	out := applyReloaded(t, f, translation(10, 0, 0))
	scope := p3d.NODE_INVALID

	assert.Equal(t, []mgl32.Vec3{{10, 1, 0}, {10, 2, 0}}, meshPositions(t, out, byName(t, out, scope, mesh.CHUNK_SKIN, "body")))
	// props live in joint space
	assert.Equal(t, []mgl32.Vec3{{0, 0.5, 0}}, meshPositions(t, out, byName(t, out, scope, mesh.CHUNK_MESH, "hat")))

	s := byName(t, out, scope, skel.CHUNK_SKELETON, "hero_skel")
	joints := out.ChildrenOfType(s, skel.CHUNK_SKELETON_JOINT)
	require.Len(t, joints, 2)
	assert.Equal(t, mgl32.Translate3D(10, 1, 0), payload[*skel.Joint](t, out, joints[0]).RestPose)
	assert.Equal(t, mgl32.Translate3D(0, 1, 0), payload[*skel.Joint](t, out, joints[1]).RestPose)
}

func TestAnimationChannels(t *testing.T) {
	f := p3d.NewFile()
	addCharacter(f, p3d.NODE_INVALID)

	out := applyReloaded(t, f, translation(10, 0, 0))

	anim := byName(t, out, p3d.NODE_INVALID, anm.CHUNK_ANIMATION, "walk")
	assert.Empty(t, out.ChildrenOfType(anim, anm.CHUNK_ANIMATION_SIZE))

	root := rootGroup(t, out, p3d.NODE_INVALID, "root")
	assert.Empty(t, out.ChildrenOfType(root, anm.CHUNK_VECTOR1_DOF, anm.CHUNK_VECTOR2_DOF))
	channels := out.ChildrenOfType(root, anm.CHUNK_VECTOR3_DOF)
	require.Len(t, channels, 2)

	// translated once although two controllers drive the animation
	tran := payload[*anm.Vector3DOF](t, out, channels[0])
	assert.Equal(t, anm.PARAM_TRANSLATION, tran.Param)
	assert.Equal(t, []uint16{0, 1}, tran.Frames)
	assert.Equal(t, []mgl32.Vec3{{11, 5, 3}, {11, 6, 3}}, tran.Values)
	assert.Len(t, out.ChildrenOfType(channels[0], anm.CHUNK_INTERPOLATION_MODE), 1)

	look := payload[*anm.Vector3DOF](t, out, channels[1])
	assert.Equal(t, anm.PARAM_LOOK, look.Param)
	assert.Equal(t, []mgl32.Vec3{{1, 7, 2}, {3, 7, 4}}, look.Values)

	// only the root joint group is rewritten
	head := rootGroup(t, out, p3d.NODE_INVALID, "head")
	v1 := payload[*anm.Vector1DOF](t, out, out.FirstOfType(head, anm.CHUNK_VECTOR1_DOF))
	assert.Equal(t, []float32{9}, v1.Values)
}

func TestAnimationRotation(t *testing.T) {
	f := p3d.NewFile()
	addCharacter(f, p3d.NODE_INVALID)

	tr := Compose(mgl32.Vec3{10, 0, 0}, mgl32.Vec3{0, 0, 90}, DefaultAxisOrder)
	out := applyReloaded(t, f, tr)
	root := rootGroup(t, out, p3d.NODE_INVALID, "root")

	channels := out.ChildrenOfType(root, anm.CHUNK_VECTOR3_DOF)
	require.Len(t, channels, 2)
	assertVec3s(t, []mgl32.Vec3{{5, 1, 3}, {4, 1, 3}}, payload[*anm.Vector3DOF](t, out, channels[0]).Values)
	assertVec3s(t, []mgl32.Vec3{{-7, 1, 2}, {-7, 3, 4}}, payload[*anm.Vector3DOF](t, out, channels[1]).Values)

	q := payload[*anm.Quaternion](t, out, out.FirstOfType(root, anm.CHUNK_QUATERNION)).Values[0]
	assert.True(t, q.ApproxEqualThreshold(tr.Quat(), eps), "%v", q)

	cq := payload[*anm.CompressedQuaternion](t, out, out.FirstOfType(root, anm.CHUNK_COMPRESSED_QUAT)).Values[0]
	assert.True(t, utils.QuatFromStorage(cq).ApproxEqualThreshold(tr.Quat(), 1e-3), "%v", cq)

	s := byName(t, out, p3d.NODE_INVALID, skel.CHUNK_SKELETON, "hero_skel")
	rootJoint := payload[*skel.Joint](t, out, out.ChildrenOfType(s, skel.CHUNK_SKELETON_JOINT)[0])
	assertVec3(t, mgl32.Vec3{9, 0, 0}, rootJoint.RestPose.Col(3).Vec3())
}

func TestCompositeReachedFromSceneGraphOnce(t *testing.T) {
	f := p3d.NewFile()
	graph := f.AddChild(p3d.NODE_INVALID, sg.CHUNK_SCENEGRAPH, &sg.SceneGraph{Name: "world"})
	root := f.AddChild(graph, sg.CHUNK_ROOT, &sg.Root{})
	for _, name := range []string{"a", "b"} {
		f.AddChild(root, sg.CHUNK_DRAWABLE, &sg.Drawable{Name: name, DrawableName: "hero"})
	}
	addCharacter(f, p3d.NODE_INVALID)

	out := applyReloaded(t, f, translation(0, 3, 0))
	assert.Equal(t, []mgl32.Vec3{{0, 4, 0}, {0, 5, 0}},
		meshPositions(t, out, byName(t, out, p3d.NODE_INVALID, mesh.CHUNK_SKIN, "body")))
	s := byName(t, out, p3d.NODE_INVALID, skel.CHUNK_SKELETON, "hero_skel")
	assert.Equal(t, mgl32.Translate3D(0, 4, 0), payload[*skel.Joint](t, out, out.ChildrenOfType(s, skel.CHUNK_SKELETON_JOINT)[0]).RestPose)

	tran := out.ChildrenOfType(rootGroup(t, out, p3d.NODE_INVALID, "root"), anm.CHUNK_VECTOR3_DOF)[0]
	assert.Equal(t, []mgl32.Vec3{{1, 8, 3}, {1, 9, 3}}, payload[*anm.Vector3DOF](t, out, tran).Values)
}
