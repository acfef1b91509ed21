package offset

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/mesh"
)

const fenceNormalTolerance = 0.001

// BoundingBox returns per-axis min and max. No points gives a zero box.
func BoundingBox(points []mgl32.Vec3) (low, high mgl32.Vec3) {
	if len(points) == 0 {
		return
	}
	low, high = points[0], points[0]
	for _, p := range points[1:] {
		for i := range p {
			low[i] = min(low[i], p[i])
			high[i] = max(high[i], p[i])
		}
	}
	return
}

// BoundingSphere is centred on the box midpoint and reaches the farthest
// point.
func BoundingSphere(points []mgl32.Vec3) (centre mgl32.Vec3, radius float32) {
	if len(points) == 0 {
		return
	}
	low, high := BoundingBox(points)
	centre = low.Add(high).Mul(0.5)
	for _, p := range points {
		radius = max(radius, p.Sub(centre).Len())
	}
	return
}

// FenceNormal is the unit perpendicular of a wall on the X/Z plane.
// Degenerate walls get a zero normal.
func FenceNormal(start, end mgl32.Vec3) mgl32.Vec3 {
	d := end.Sub(start)
	n := mgl32.Vec3{-d[2], 0, d[0]}
	if n.Len() == 0 {
		return n
	}
	return n.Normalize()
}

// normalInverted reports whether stored points away from the geometric
// normal of the wall.
func normalInverted(stored, geometric mgl32.Vec3) bool {
	for i := range stored {
		if mgl32.Abs(stored[i]+geometric[i]) > fenceNormalTolerance {
			return false
		}
	}
	return true
}

// recomputeBounds rewrites every bounding box and sphere child of id.
func (e *engine) recomputeBounds(id p3d.NodeId, points []mgl32.Vec3) {
	for _, bbId := range e.doc.ChildrenOfType(id, mesh.CHUNK_BOUNDING_BOX) {
		if bb, ok := payloadOf[*mesh.BoundingBox](e, bbId); ok {
			bb.Low, bb.High = BoundingBox(points)
		}
	}
	for _, bsId := range e.doc.ChildrenOfType(id, mesh.CHUNK_BOUNDING_SPHERE) {
		if bs, ok := payloadOf[*mesh.BoundingSphere](e, bsId); ok {
			bs.Centre, bs.Radius = BoundingSphere(points)
		}
	}
}
