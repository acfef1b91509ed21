package offset

import (
	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/mesh"
	"github.com/mogaika/p3d_offset/p3d/sg"
	"github.com/mogaika/p3d_offset/p3d/skel"
)

// instanceTransformDepth is the transform level that places each instance.
// Level 1 is the instance list frame, deeper levels are instance-local.
const instanceTransformDepth = 2

func (e *engine) transformSceneGraph(id p3d.NodeId) {
	e.walkSceneGraph(id, false)
}

// walkSceneGraph composes only the outermost transforms; nested ones are
// relative to them.
func (e *engine) walkSceneGraph(id p3d.NodeId, underTransform bool) {
	for _, child := range e.doc.Node(id).Children {
		switch e.doc.Node(child).ChunkId {
		case sg.CHUNK_TRANSFORM:
			if !underTransform {
				if t, ok := payloadOf[*sg.Transform](e, child); ok {
					t.Matrix = e.t.Affine().Mul4(t.Matrix)
				}
			}
			e.walkSceneGraph(child, true)
		case sg.CHUNK_DRAWABLE:
			if d, ok := payloadOf[*sg.Drawable](e, child); ok {
				e.resolveDrawable(d.DrawableName)
			}
		case sg.CHUNK_LIGHT_GROUP:
			// light groups drawn by the scene graph are camera relative
			if lg, ok := payloadOf[*sg.LightGroup](e, child); ok {
				e.reg.SkipLightGroup(lg.LightGroupName)
			}
		default:
			e.walkSceneGraph(child, underTransform)
		}
	}
}

// resolveDrawable looks a scene graph drawable up as a mesh, then a skin,
// then a composite drawable, and transforms it on first visit.
func (e *engine) resolveDrawable(name string) {
	if e.reg.IsProp(name) {
		return
	}
	for _, chunkId := range []uint32{mesh.CHUNK_MESH, mesh.CHUNK_SKIN} {
		if id := e.doc.FirstOfTypeByName(p3d.NODE_INVALID, chunkId, name); id != p3d.NODE_INVALID {
			if e.reg.VisitDrawable(id) {
				e.transformMesh(id, true)
			}
			return
		}
	}
	if id := e.resolve(skel.CHUNK_COMPOSITE_DRAWABLE, name, p3d.NODE_INVALID); id != p3d.NODE_INVALID {
		if e.reg.VisitDrawable(id) {
			e.resolveComposite(id, p3d.NODE_INVALID, true)
		}
	}
}

func (e *engine) transformInstanceList(id p3d.NodeId) {
	e.walkInstances(id, 0)
}

func (e *engine) walkInstances(id p3d.NodeId, depth int) {
	for _, child := range e.doc.Node(id).Children {
		switch e.doc.Node(child).ChunkId {
		case sg.CHUNK_TRANSFORM:
			if depth+1 == instanceTransformDepth {
				if t, ok := payloadOf[*sg.Transform](e, child); ok {
					t.Matrix = e.t.Affine().Mul4(t.Matrix)
				}
			}
			e.walkInstances(child, depth+1)
		case sg.CHUNK_DRAWABLE, sg.CHUNK_LIGHT_GROUP:
		default:
			e.walkInstances(child, depth)
		}
	}
}
