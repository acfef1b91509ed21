// Package offset moves every geometric value of a p3d document by one
// rigid transform and recomputes the values derived from geometry.
package offset

import (
	"github.com/pkg/errors"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/cam"
	"github.com/mogaika/p3d_offset/p3d/entity"
	"github.com/mogaika/p3d_offset/p3d/locator"
	"github.com/mogaika/p3d_offset/p3d/sg"
	"github.com/mogaika/p3d_offset/p3d/skel"
	"github.com/mogaika/p3d_offset/utils"
)

type engine struct {
	doc Document
	t   *Transform
	reg *Registry
}

// Apply edits doc in place. Chunks of unknown kinds are left as they are.
func Apply(doc Document, t *Transform) error {
	if t == nil {
		return errors.New("nil transform")
	}
	e := &engine{doc: doc, t: t, reg: NewRegistry()}
	utils.LogInfo("applying transform", "transform", t)

	e.collectProps(p3d.NODE_INVALID)

	top := append([]p3d.NodeId(nil), doc.Node(doc.Root()).Children...)
	for _, id := range top {
		e.dispatch(id)
	}

	e.transformStandaloneDrawables()
	e.transformLights()
	return nil
}

func (e *engine) dispatch(id p3d.NodeId) {
	switch e.doc.Node(id).ChunkId {
	case cam.CHUNK_CAMERA:
		e.transformCamera(id)
	case locator.CHUNK_LOCATOR:
		e.transformLocator(id)
	case locator.CHUNK_WORLD_LOCATOR:
		e.transformWorldLocator(id)
	case locator.CHUNK_PATH:
		e.transformPath(id)
	case locator.CHUNK_FENCE:
		e.transformFence(id)
	case entity.CHUNK_STATIC_ENTITY:
		e.transformMeshes(id, true)
	case entity.CHUNK_STATIC_PHYS:
		e.transformCollisionObjects(id)
	case entity.CHUNK_INTERSECT:
		e.transformIntersect(id)
	case entity.CHUNK_DYNA_PHYS, entity.CHUNK_INST_STAT_ENTITY,
		entity.CHUNK_INST_STAT_PHYS, entity.CHUNK_ANIM_DYNA_PHYS:
		e.transformInstanced(id)
	case entity.CHUNK_ANIM, entity.CHUNK_ANIM_COLL:
		e.transformAnimEntity(id)
	case entity.CHUNK_WORLD_SPHERE:
		e.transformWorldSphere(id)
	case sg.CHUNK_SCENEGRAPH:
		e.transformSceneGraph(id)
	case skel.CHUNK_COMPOSITE_DRAWABLE:
		if !e.reg.IsProp(e.doc.Name(id)) && e.reg.VisitDrawable(id) {
			e.resolveComposite(id, p3d.NODE_INVALID, true)
		}
	}
}

func (e *engine) transformCamera(id p3d.NodeId) {
	c, ok := payloadOf[*cam.Camera](e, id)
	if !ok {
		return
	}
	c.Position = e.t.point(c.Position)
	c.Look = e.t.direction(c.Look)
	c.Up = e.t.direction(c.Up)
	e.animateHierarchy(c.Name, "", p3d.NODE_INVALID, true)
}

func (e *engine) transformLocator(id p3d.NodeId) {
	if l, ok := payloadOf[*locator.Locator](e, id); ok {
		l.Position = e.t.point(l.Position)
	}
}

func (e *engine) transformWorldLocator(id p3d.NodeId) {
	wl, ok := payloadOf[*locator.WorldLocator](e, id)
	if !ok {
		return
	}
	wl.Position = e.t.point(wl.Position)

	affine := e.t.Affine()
	for _, child := range e.doc.ChildrenOfType(id, locator.CHUNK_TRIGGER_VOLUME) {
		if tv, ok := payloadOf[*locator.TriggerVolume](e, child); ok {
			tv.Matrix = affine.Mul4(tv.Matrix)
		}
	}
	for _, child := range e.doc.ChildrenOfType(id, locator.CHUNK_LOCATOR_MATRIX) {
		if lm, ok := payloadOf[*locator.LocatorMatrix](e, child); ok {
			lm.Matrix = affine.Mul4(lm.Matrix)
		}
	}
	for _, child := range e.doc.ChildrenOfType(id, locator.CHUNK_SPLINE) {
		if s, ok := payloadOf[*locator.Spline](e, child); ok {
			for i := range s.Positions {
				s.Positions[i] = e.t.point(s.Positions[i])
			}
		}
	}
}

func (e *engine) transformPath(id p3d.NodeId) {
	if p, ok := payloadOf[*locator.Path](e, id); ok {
		for i := range p.Positions {
			p.Positions[i] = e.t.point(p.Positions[i])
		}
	}
}

// transformFence moves wall endpoints and rebuilds the normals from them,
// keeping which side of the wall the stored normal was on.
func (e *engine) transformFence(id p3d.NodeId) {
	for _, wallId := range e.doc.ChildrenOfType(id, locator.CHUNK_WALL) {
		w, ok := payloadOf[*locator.Wall](e, wallId)
		if !ok {
			continue
		}
		inverted := normalInverted(w.Normal, FenceNormal(w.Start, w.End))
		w.Start = e.t.point(w.Start)
		w.End = e.t.point(w.End)
		w.Normal = FenceNormal(w.Start, w.End)
		if inverted {
			w.Normal = w.Normal.Mul(-1)
		}
	}
}
