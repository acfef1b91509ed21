package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/p3dtest"
)

func TestExportGLTF(t *testing.T) {
	f := p3d.NewFile()
	meshId := f.AddChild(p3d.NODE_INVALID, CHUNK_MESH, &Mesh{Name: "tri", NumPrimGroups: 1})
	groupId := f.AddChild(meshId, CHUNK_OLD_PRIMITIVE_GROUP, &OldPrimitiveGroup{ShaderName: "s", NumVertices: 3, NumIndices: 3})
	f.AddChild(groupId, CHUNK_POSITION_LIST, &PositionList{Positions: []Position{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}})
	f.AddChild(groupId, CHUNK_NORMAL_LIST, &NormalList{Normals: []Normal{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}})
	f.AddChild(groupId, CHUNK_INDEX_LIST, &IndexList{Indices: []uint32{0, 1, 2}})

	doc := gltf.NewDocument()
	node, err := ExportGLTF(f, doc, meshId)
	require.NoError(t, err)

	require.Len(t, doc.Meshes, 1)
	assert.Equal(t, "tri", doc.Meshes[0].Name)
	prim := doc.Meshes[0].Primitives[0]
	assert.Equal(t, gltf.PrimitiveTriangles, prim.Mode)
	assert.Contains(t, prim.Attributes, "POSITION")
	assert.Contains(t, prim.Attributes, "NORMAL")
	assert.NotNil(t, prim.Indices)
	assert.Contains(t, doc.Scenes[0].Nodes, node)
}

func TestExportGLTFEmptyMesh(t *testing.T) {
	f := p3d.NewFile()
	meshId := f.AddChild(p3d.NODE_INVALID, CHUNK_MESH, &Mesh{Name: "empty"})

	_, err := ExportGLTF(f, gltf.NewDocument(), meshId)
	assert.Error(t, err)
}

func TestMeshRoundTrip(t *testing.T) {
	f := p3d.NewFile()
	meshId := f.AddChild(p3d.NODE_INVALID, CHUNK_MESH, &Mesh{Name: "m", Version: 14, NumPrimGroups: 1})
	f.AddChild(meshId, CHUNK_BOUNDING_BOX, &BoundingBox{Low: mgl32.Vec3{-1, -2, -3}, High: mgl32.Vec3{1, 2, 3}})
	f.AddChild(meshId, CHUNK_BOUNDING_SPHERE, &BoundingSphere{Centre: mgl32.Vec3{0, 0, 0}, Radius: 3.75})

	loaded := p3dtest.Reload(t, f)
	id := loaded.FirstOfTypeByName(p3d.NODE_INVALID, CHUNK_MESH, "m")
	require.NotEqual(t, p3d.NODE_INVALID, id)

	p, err := loaded.Payload(id)
	require.NoError(t, err)
	assert.Equal(t, &Mesh{Name: "m", Version: 14, NumPrimGroups: 1}, p)

	bb, err := loaded.Payload(loaded.FirstOfType(id, CHUNK_BOUNDING_BOX))
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, bb.(*BoundingBox).High)

	sphere, err := loaded.Payload(loaded.FirstOfType(id, CHUNK_BOUNDING_SPHERE))
	require.NoError(t, err)
	assert.Equal(t, float32(3.75), sphere.(*BoundingSphere).Radius)
}
