package offset

import (
	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/mesh"
	"github.com/mogaika/p3d_offset/p3d/skel"
	"github.com/mogaika/p3d_offset/utils"
)

// collectProps marks the props of every composite drawable in scope before
// anything is transformed, so they are never treated as world meshes.
func (e *engine) collectProps(scope p3d.NodeId) {
	for _, cd := range e.doc.ChildrenOfType(scope, skel.CHUNK_COMPOSITE_DRAWABLE) {
		for _, list := range e.doc.ChildrenOfType(cd, skel.CHUNK_COMPOSITE_DRAWABLE_PROP_LIST) {
			for _, prop := range e.doc.ChildrenOfType(list, skel.CHUNK_COMPOSITE_DRAWABLE_PROP) {
				if name := e.doc.Name(prop); name != "" {
					e.reg.MarkProp(name)
				}
			}
		}
	}
}

// resolveComposite transforms the skins and the skeleton a composite
// drawable references within scope. Props stay in joint space, they were
// marked by collectProps.
func (e *engine) resolveComposite(id, scope p3d.NodeId, translate bool) {
	cd, ok := payloadOf[*skel.CompositeDrawable](e, id)
	if !ok {
		return
	}

	for _, list := range e.doc.ChildrenOfType(id, skel.CHUNK_COMPOSITE_DRAWABLE_SKIN_LIST) {
		for _, ref := range e.doc.ChildrenOfType(list, skel.CHUNK_COMPOSITE_DRAWABLE_SKIN) {
			skinId := e.resolve(mesh.CHUNK_SKIN, e.doc.Name(ref), scope)
			if skinId != p3d.NODE_INVALID && e.reg.VisitDrawable(skinId) {
				e.transformMesh(skinId, translate)
			}
		}
	}
	skelId := e.resolve(skel.CHUNK_SKELETON, cd.SkeletonName, scope)
	if skelId != p3d.NODE_INVALID && e.reg.VisitSkeleton(skelId) {
		e.transformSkeleton(skelId, scope, translate)
	}
}

// transformSkeleton moves the root joint; every other joint is relative to
// it. The root joint animation follows.
func (e *engine) transformSkeleton(id, scope p3d.NodeId, translate bool) {
	s, ok := payloadOf[*skel.Skeleton](e, id)
	if !ok {
		return
	}
	joints := e.doc.ChildrenOfType(id, skel.CHUNK_SKELETON_JOINT)
	if len(joints) == 0 {
		utils.LogDebug("skeleton without joints", "name", s.Name)
		return
	}
	root, ok := payloadOf[*skel.Joint](e, joints[0])
	if !ok {
		return
	}
	root.RestPose = e.t.matrix(translate).Mul4(root.RestPose)
	e.animateHierarchy(s.Name, root.Name, scope, translate)
}
