package offset

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/anm"
	"github.com/mogaika/p3d_offset/utils"
)

// animateHierarchy rewrites the animations that frame controllers in scope
// bind to hierarchy. With a group name only that group is touched.
func (e *engine) animateHierarchy(hierarchy, group string, scope p3d.NodeId, translate bool) {
	for _, fcId := range e.doc.ChildrenOfType(scope, anm.CHUNK_OLD_FRAME_CONTROLLER) {
		fc, ok := payloadOf[*anm.OldFrameController](e, fcId)
		if !ok || fc.HierarchyName != hierarchy {
			continue
		}
		animId := e.resolve(anm.CHUNK_ANIMATION, fc.AnimationName, scope)
		if animId == p3d.NODE_INVALID || !e.reg.VisitAnimation(animId) {
			continue
		}
		e.rewriteAnimation(animId, group, translate)
	}
}

func (e *engine) rewriteAnimation(id p3d.NodeId, group string, translate bool) {
	promoted := false
	for _, list := range e.doc.ChildrenOfType(id, anm.CHUNK_GROUP_LIST) {
		for _, groupId := range e.doc.ChildrenOfType(list, anm.CHUNK_ANIMATION_GROUP) {
			if group != "" && e.doc.Name(groupId) != group {
				continue
			}
			if e.rewriteGroup(groupId, translate) {
				promoted = true
			}
		}
	}

	if promoted {
		for _, sizeId := range e.doc.ChildrenOfType(id, anm.CHUNK_ANIMATION_SIZE) {
			e.doc.Remove(sizeId)
		}
	}
	utils.LogDebug("animation transformed", "name", e.doc.Name(id), "promoted", promoted)
}

// rewriteGroup reports whether any channel was promoted to three axes.
func (e *engine) rewriteGroup(id p3d.NodeId, translate bool) bool {
	promoted := false
	for _, ch := range e.doc.Node(id).Children {
		switch e.doc.Node(ch).ChunkId {
		case anm.CHUNK_VECTOR1_DOF:
			if c, ok := payloadOf[*anm.Vector1DOF](e, ch); ok && isSpatialParam(c.Param) {
				if v3 := promote1DOF(c); v3 != nil {
					e.doc.Replace(ch, anm.CHUNK_VECTOR3_DOF, v3)
					e.transformVectorChannel(v3, translate)
					promoted = true
				}
			}
		case anm.CHUNK_VECTOR2_DOF:
			if c, ok := payloadOf[*anm.Vector2DOF](e, ch); ok && isSpatialParam(c.Param) {
				if v3 := promote2DOF(c); v3 != nil {
					e.doc.Replace(ch, anm.CHUNK_VECTOR3_DOF, v3)
					e.transformVectorChannel(v3, translate)
					promoted = true
				}
			}
		case anm.CHUNK_VECTOR3_DOF:
			if c, ok := payloadOf[*anm.Vector3DOF](e, ch); ok {
				e.transformVectorChannel(c, translate)
			}
		case anm.CHUNK_QUATERNION:
			if c, ok := payloadOf[*anm.Quaternion](e, ch); ok {
				for i, q := range c.Values {
					c.Values[i] = e.t.Quat().Mul(q)
				}
			}
		case anm.CHUNK_COMPRESSED_QUAT:
			if c, ok := payloadOf[*anm.CompressedQuaternion](e, ch); ok {
				for i, q := range c.Values {
					c.Values[i] = utils.QuatToStorage(e.t.Quat().Mul(utils.QuatFromStorage(q)))
				}
			}
		}
	}
	return promoted
}

func isSpatialParam(param string) bool {
	switch param {
	case anm.PARAM_TRANSLATION, anm.PARAM_LOOK, anm.PARAM_UP:
		return true
	}
	return false
}

func (e *engine) transformVectorChannel(c *anm.Vector3DOF, translate bool) {
	switch c.Param {
	case anm.PARAM_TRANSLATION:
		for i := range c.Values {
			c.Values[i] = e.t.position(c.Values[i], translate)
		}
	case anm.PARAM_LOOK, anm.PARAM_UP:
		for i := range c.Values {
			c.Values[i] = e.t.direction(c.Values[i])
		}
	}
}

// promote1DOF expands a single animated axis into full vectors. Returns nil
// for an out of range mapping.
func promote1DOF(c *anm.Vector1DOF) *anm.Vector3DOF {
	if c.Mapping > anm.AXIS_Z {
		utils.LogWarn("bad 1 DOF channel mapping", "param", c.Param, "mapping", c.Mapping)
		return nil
	}
	v3 := &anm.Vector3DOF{
		ChannelHeader: c.ChannelHeader,
		Frames:        c.Frames,
		Values:        make([]mgl32.Vec3, len(c.Values)),
	}
	for i, value := range c.Values {
		v := c.Constants
		v[c.Mapping] = value
		v3.Values[i] = v
	}
	return v3
}

// promote2DOF fills the two axes other than Mapping, in X, Y, Z order.
func promote2DOF(c *anm.Vector2DOF) *anm.Vector3DOF {
	if c.Mapping > anm.AXIS_Z {
		utils.LogWarn("bad 2 DOF channel mapping", "param", c.Param, "mapping", c.Mapping)
		return nil
	}
	v3 := &anm.Vector3DOF{
		ChannelHeader: c.ChannelHeader,
		Frames:        c.Frames,
		Values:        make([]mgl32.Vec3, len(c.Values)),
	}
	for i, value := range c.Values {
		v := c.Constants
		next := 0
		for axis := range v {
			if axis != int(c.Mapping) {
				v[axis] = value[next]
				next++
			}
		}
		v3.Values[i] = v
	}
	return v3
}
