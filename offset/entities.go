package offset

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/entity"
	"github.com/mogaika/p3d_offset/p3d/mesh"
	"github.com/mogaika/p3d_offset/p3d/sg"
	"github.com/mogaika/p3d_offset/p3d/skel"
	"github.com/mogaika/p3d_offset/utils"
)

// transformMesh applies the mesh rule to a mesh or skin: positions follow
// the transform, normals only rotate, bounds are rebuilt.
func (e *engine) transformMesh(id p3d.NodeId, translate bool) {
	var points []mgl32.Vec3
	for _, groupId := range e.doc.ChildrenOfType(id, mesh.CHUNK_OLD_PRIMITIVE_GROUP) {
		for _, plId := range e.doc.ChildrenOfType(groupId, mesh.CHUNK_POSITION_LIST) {
			pl, ok := payloadOf[*mesh.PositionList](e, plId)
			if !ok {
				continue
			}
			for i := range pl.Positions {
				pl.Positions[i] = e.t.position(pl.Positions[i], translate)
			}
			points = append(points, pl.Positions...)
		}
		for _, nlId := range e.doc.ChildrenOfType(groupId, mesh.CHUNK_NORMAL_LIST) {
			if nl, ok := payloadOf[*mesh.NormalList](e, nlId); ok {
				for i := range nl.Normals {
					nl.Normals[i] = e.t.direction(nl.Normals[i])
				}
			}
		}
	}
	e.recomputeBounds(id, points)
	utils.LogDebug("mesh transformed", "name", e.doc.Name(id), "vertices", len(points), "translate", translate)
}

// transformMeshes applies the mesh rule to every mesh owned by scope that
// was not transformed already and is not a joint prop.
func (e *engine) transformMeshes(scope p3d.NodeId, translate bool) {
	for _, id := range e.doc.ChildrenOfType(scope, mesh.CHUNK_MESH) {
		if e.reg.IsProp(e.doc.Name(id)) {
			continue
		}
		if e.reg.VisitDrawable(id) {
			e.transformMesh(id, translate)
		}
	}
}

// transformComposites resolves every composite drawable owned by scope
// against that same scope.
func (e *engine) transformComposites(scope p3d.NodeId, translate bool) {
	e.collectProps(scope)
	for _, id := range e.doc.ChildrenOfType(scope, skel.CHUNK_COMPOSITE_DRAWABLE) {
		if e.reg.VisitDrawable(id) {
			e.resolveComposite(id, scope, translate)
		}
	}
}

func (e *engine) transformIntersect(id p3d.NodeId) {
	i, ok := payloadOf[*entity.Intersect](e, id)
	if !ok {
		return
	}
	for idx := range i.Positions {
		i.Positions[idx] = e.t.point(i.Positions[idx])
	}
	for idx := range i.Normals {
		i.Normals[idx] = e.t.direction(i.Normals[idx])
	}
	e.recomputeBounds(id, i.Positions)
}

// transformInstanced handles entities that may be placed by an instance
// list. Instanced contents are in instance space and stay as they are.
func (e *engine) transformInstanced(id p3d.NodeId) {
	if lists := e.doc.ChildrenOfType(id, sg.CHUNK_INSTANCE_LIST); len(lists) != 0 {
		for _, il := range lists {
			e.transformInstanceList(il)
		}
		return
	}
	e.transformComposites(id, true)
	e.transformMeshes(id, true)
	e.transformCollisionObjects(id)
}

func (e *engine) transformAnimEntity(id p3d.NodeId) {
	e.transformComposites(id, true)
	e.transformCollisionObjects(id)
}

// transformWorldSphere rotates the sky around the camera without moving it.
func (e *engine) transformWorldSphere(id p3d.NodeId) {
	e.transformComposites(id, false)
	e.transformMeshes(id, false)
}

// transformStandaloneDrawables runs after the main pass and catches the
// top-level meshes, skins and skeletons nothing referenced.
func (e *engine) transformStandaloneDrawables() {
	for _, id := range e.doc.ChildrenOfType(p3d.NODE_INVALID, mesh.CHUNK_MESH, mesh.CHUNK_SKIN) {
		if e.reg.IsProp(e.doc.Name(id)) {
			continue
		}
		if e.reg.VisitDrawable(id) {
			e.transformMesh(id, true)
		}
	}
	for _, id := range e.doc.ChildrenOfType(p3d.NODE_INVALID, skel.CHUNK_SKELETON) {
		if e.reg.VisitSkeleton(id) {
			e.transformSkeleton(id, p3d.NODE_INVALID, true)
		}
	}
}
