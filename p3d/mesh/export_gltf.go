package mesh

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/p3d_offset/p3d"
)

var gltfModes = map[uint32]gltf.PrimitiveMode{
	PRIMITIVE_TRIANGLE_LIST:  gltf.PrimitiveTriangles,
	PRIMITIVE_TRIANGLE_STRIP: gltf.PrimitiveTriangleStrip,
	PRIMITIVE_LINE_LIST:      gltf.PrimitiveLines,
	PRIMITIVE_LINE_STRIP:     gltf.PrimitiveLineStrip,
}

// ExportGLTF adds a mesh or skin chunk as a glTF node to doc and returns the
// node index. Skins are exported unskinned, in bind pose.
func ExportGLTF(f *p3d.File, doc *gltf.Document, id p3d.NodeId) (uint32, error) {
	name := f.Name(id)
	gltfMesh := &gltf.Mesh{Name: name}

	for iGroup, groupId := range f.ChildrenOfType(id, CHUNK_OLD_PRIMITIVE_GROUP) {
		p, err := f.Payload(groupId)
		if err != nil {
			return 0, errors.Wrapf(err, "Mesh %q group %d", name, iGroup)
		}
		group := p.(*OldPrimitiveGroup)

		positionsId := f.FirstOfType(groupId, CHUNK_POSITION_LIST)
		if positionsId == p3d.NODE_INVALID {
			continue
		}
		pl, err := f.Payload(positionsId)
		if err != nil {
			return 0, errors.Wrapf(err, "Mesh %q group %d positions", name, iGroup)
		}
		positions := make([][3]float32, len(pl.(*PositionList).Positions))
		for i, pos := range pl.(*PositionList).Positions {
			positions[i] = pos
		}

		attributes := make(map[string]uint32)
		attributes["POSITION"] = modeler.WritePosition(doc, positions)

		if normalsId := f.FirstOfType(groupId, CHUNK_NORMAL_LIST); normalsId != p3d.NODE_INVALID {
			if nl, err := f.Payload(normalsId); err == nil && len(nl.(*NormalList).Normals) == len(positions) {
				normals := make([][3]float32, len(positions))
				for i, n := range nl.(*NormalList).Normals {
					if n.Len() > 0.5 {
						n = n.Normalize()
					}
					normals[i] = n
				}
				attributes["NORMAL"] = modeler.WriteNormal(doc, normals)
			}
		}

		mode, ok := gltfModes[group.PrimitiveType]
		if !ok {
			return 0, errors.Errorf("Mesh %q group %d: unknown primitive type %d", name, iGroup, group.PrimitiveType)
		}
		primitive := &gltf.Primitive{
			Mode:       mode,
			Attributes: attributes,
		}

		if indicesId := f.FirstOfType(groupId, CHUNK_INDEX_LIST); indicesId != p3d.NODE_INVALID {
			il, err := f.Payload(indicesId)
			if err != nil {
				return 0, errors.Wrapf(err, "Mesh %q group %d indices", name, iGroup)
			}
			primitive.Indices = gltf.Index(modeler.WriteIndices(doc, il.(*IndexList).Indices))
		}

		gltfMesh.Primitives = append(gltfMesh.Primitives, primitive)
	}

	if len(gltfMesh.Primitives) == 0 {
		return 0, errors.Errorf("Mesh %q has no exportable primitive groups", name)
	}

	doc.Meshes = append(doc.Meshes, gltfMesh)
	nodeIndex := uint32(len(doc.Nodes))
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: fmt.Sprintf("%s_%d", name, id),
		Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, nodeIndex)
	return nodeIndex, nil
}
