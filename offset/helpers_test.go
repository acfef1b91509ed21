package offset

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/mesh"
	"github.com/mogaika/p3d_offset/p3d/p3dtest"
)

const eps = 1e-4

func translation(x, y, z float32) *Transform {
	return Compose(mgl32.Vec3{x, y, z}, mgl32.Vec3{}, DefaultAxisOrder)
}

// applyReloaded round trips f through bytes, applies tr and round trips the
// result again, so every payload goes through its codec.
func applyReloaded(t *testing.T, f *p3d.File, tr *Transform) *p3d.File {
	t.Helper()
	loaded := p3dtest.Reload(t, f)
	require.NoError(t, Apply(loaded, tr))
	return p3dtest.Reload(t, loaded)
}

func payload[T p3d.Payload](t *testing.T, f *p3d.File, id p3d.NodeId) T {
	t.Helper()
	require.NotEqual(t, p3d.NODE_INVALID, id)
	p, err := f.Payload(id)
	require.NoError(t, err)
	v, ok := p.(T)
	require.True(t, ok, "unexpected payload %T", p)
	return v
}

func byName(t *testing.T, f *p3d.File, scope p3d.NodeId, chunkId uint32, name string) p3d.NodeId {
	t.Helper()
	id := f.FirstOfTypeByName(scope, chunkId, name)
	require.NotEqual(t, p3d.NODE_INVALID, id, "%s %q not found", p3d.KindName(chunkId), name)
	return id
}

func assertVec3(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, msgAndArgs...)
	}
}

func assertVec3s(t *testing.T, want, got []mgl32.Vec3) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assertVec3(t, want[i], got[i], "index %d", i)
	}
}

// addMesh builds a mesh or skin with one primitive group and consistent
// bounds.
func addMesh(f *p3d.File, scope p3d.NodeId, chunkId uint32, name string, positions ...mgl32.Vec3) p3d.NodeId {
	var id p3d.NodeId
	if chunkId == mesh.CHUNK_SKIN {
		id = f.AddChild(scope, chunkId, &mesh.Skin{Name: name, Version: 4, NumPrimGroups: 1})
	} else {
		id = f.AddChild(scope, chunkId, &mesh.Mesh{Name: name, Version: 14, NumPrimGroups: 1})
	}
	group := f.AddChild(id, mesh.CHUNK_OLD_PRIMITIVE_GROUP, &mesh.OldPrimitiveGroup{
		ShaderName:  "shader",
		NumVertices: uint32(len(positions)),
	})
	f.AddChild(group, mesh.CHUNK_POSITION_LIST, &mesh.PositionList{Positions: append([]mgl32.Vec3(nil), positions...)})
	normals := make([]mgl32.Vec3, len(positions))
	for i := range normals {
		normals[i] = mgl32.Vec3{0, 1, 0}
	}
	f.AddChild(group, mesh.CHUNK_NORMAL_LIST, &mesh.NormalList{Normals: normals})

	low, high := BoundingBox(positions)
	f.AddChild(id, mesh.CHUNK_BOUNDING_BOX, &mesh.BoundingBox{Low: low, High: high})
	centre, radius := BoundingSphere(positions)
	f.AddChild(id, mesh.CHUNK_BOUNDING_SPHERE, &mesh.BoundingSphere{Centre: centre, Radius: radius})
	return id
}

func meshPositions(t *testing.T, f *p3d.File, id p3d.NodeId) []mgl32.Vec3 {
	t.Helper()
	group := f.FirstOfType(id, mesh.CHUNK_OLD_PRIMITIVE_GROUP)
	return payload[*mesh.PositionList](t, f, f.FirstOfType(group, mesh.CHUNK_POSITION_LIST)).Positions
}

func meshNormals(t *testing.T, f *p3d.File, id p3d.NodeId) []mgl32.Vec3 {
	t.Helper()
	group := f.FirstOfType(id, mesh.CHUNK_OLD_PRIMITIVE_GROUP)
	return payload[*mesh.NormalList](t, f, f.FirstOfType(group, mesh.CHUNK_NORMAL_LIST)).Normals
}
