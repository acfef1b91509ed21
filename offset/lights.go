package offset

import (
	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/light"
)

// transformLights runs after the main pass, once the scene graphs have
// marked the camera relative light groups. Lights of the remaining groups
// only rotate; lights outside any group move like any other position.
func (e *engine) transformLights() {
	grouped := make(map[string]struct{})
	for _, groupId := range e.doc.ChildrenOfType(p3d.NODE_INVALID, light.CHUNK_LIGHT_GROUP) {
		g, ok := payloadOf[*light.Group](e, groupId)
		if !ok {
			continue
		}
		for _, name := range g.Lights {
			grouped[name] = struct{}{}
		}
		if e.reg.LightGroupSkipped(g.Name) {
			continue
		}
		for _, name := range g.Lights {
			id := e.resolve(light.CHUNK_LIGHT, name, p3d.NODE_INVALID)
			if id != p3d.NODE_INVALID && e.reg.VisitLight(id) {
				e.transformLight(id, false)
			}
		}
	}

	for _, id := range e.doc.ChildrenOfType(p3d.NODE_INVALID, light.CHUNK_LIGHT) {
		if _, ok := grouped[e.doc.Name(id)]; ok {
			continue
		}
		if e.reg.VisitLight(id) {
			e.transformLight(id, true)
		}
	}
}

func (e *engine) transformLight(id p3d.NodeId, translate bool) {
	for _, posId := range e.doc.ChildrenOfType(id, light.CHUNK_LIGHT_POSITION) {
		if v, ok := payloadOf[*light.Vector](e, posId); ok {
			v.Value = e.t.position(v.Value, translate)
		}
	}
	for _, dirId := range e.doc.ChildrenOfType(id, light.CHUNK_LIGHT_DIRECTION) {
		if v, ok := payloadOf[*light.Vector](e, dirId); ok {
			v.Value = e.t.direction(v.Value)
		}
	}
}
