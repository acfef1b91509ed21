package offset

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/collision"
	"github.com/mogaika/p3d_offset/utils"
)

type vectorRule int

const (
	rulePoint vectorRule = iota
	ruleDirection
	// ruleAxis rotates by the transposed rotation. Cylinder axes are stored
	// in the opposite multiplication convention to every other vector.
	ruleAxis
)

// shapeRules lists, per shape kind, how each leading vector child moves.
var shapeRules = map[uint32][]vectorRule{
	collision.CHUNK_SPHERE:       {rulePoint},
	collision.CHUNK_CYLINDER:     {rulePoint, ruleAxis},
	collision.CHUNK_ORIENTED_BOX: {rulePoint, ruleDirection, ruleDirection, ruleDirection},
	collision.CHUNK_WALL:         {rulePoint, ruleDirection},
}

func (e *engine) transformCollisionObjects(scope p3d.NodeId) {
	for _, id := range e.doc.ChildrenOfType(scope, collision.CHUNK_OBJECT) {
		for _, vol := range e.doc.ChildrenOfType(id, collision.CHUNK_VOLUME) {
			e.transformCollisionVolume(vol)
		}
	}
}

func (e *engine) transformCollisionVolume(id p3d.NodeId) {
	for _, child := range e.doc.Node(id).Children {
		chunkId := e.doc.Node(child).ChunkId
		if chunkId == collision.CHUNK_VOLUME {
			e.transformCollisionVolume(child)
		} else if rules, ok := shapeRules[chunkId]; ok {
			e.transformShape(child, rules)
		}
	}
}

// transformShape changes nothing unless every vector the shape needs is
// present and decodable.
func (e *engine) transformShape(id p3d.NodeId, rules []vectorRule) {
	vectorIds := e.doc.ChildrenOfType(id, collision.CHUNK_VECTOR)
	if len(vectorIds) < len(rules) {
		utils.LogWarn("skipping malformed collision shape",
			"kind", p3d.KindName(e.doc.Node(id).ChunkId), "vectors", len(vectorIds), "want", len(rules))
		return
	}

	vectors := make([]*collision.Vector, len(rules))
	for i := range rules {
		v, ok := payloadOf[*collision.Vector](e, vectorIds[i])
		if !ok {
			return
		}
		vectors[i] = v
	}

	for i, rule := range rules {
		vectors[i].Value = e.applyRule(rule, vectors[i].Value)
	}
}

func (e *engine) applyRule(rule vectorRule, v mgl32.Vec3) mgl32.Vec3 {
	switch rule {
	case rulePoint:
		return e.t.point(v)
	case ruleAxis:
		return utils.TransformDirection(e.t.RotationMatrix().Transpose(), v)
	default:
		return e.t.direction(v)
	}
}
