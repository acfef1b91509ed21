package offset

import "github.com/mogaika/p3d_offset/p3d"

type nodeSet map[p3d.NodeId]struct{}

// visit adds id and reports whether it was new.
func (s nodeSet) visit(id p3d.NodeId) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Registry tracks shared entities during one Apply run. Everything enters
// it on first visit, before being transformed.
type Registry struct {
	drawables  nodeSet
	skeletons  nodeSet
	animations nodeSet
	lights     nodeSet

	skippedLightGroups map[string]struct{}
	props              map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		drawables:          make(nodeSet),
		skeletons:          make(nodeSet),
		animations:         make(nodeSet),
		lights:             make(nodeSet),
		skippedLightGroups: make(map[string]struct{}),
		props:              make(map[string]struct{}),
	}
}

func (r *Registry) VisitDrawable(id p3d.NodeId) bool  { return r.drawables.visit(id) }
func (r *Registry) VisitSkeleton(id p3d.NodeId) bool  { return r.skeletons.visit(id) }
func (r *Registry) VisitAnimation(id p3d.NodeId) bool { return r.animations.visit(id) }
func (r *Registry) VisitLight(id p3d.NodeId) bool     { return r.lights.visit(id) }

func (r *Registry) DrawableVisited(id p3d.NodeId) bool {
	_, ok := r.drawables[id]
	return ok
}

func (r *Registry) SkipLightGroup(name string) {
	r.skippedLightGroups[name] = struct{}{}
}

func (r *Registry) LightGroupSkipped(name string) bool {
	_, ok := r.skippedLightGroups[name]
	return ok
}

// MarkProp records a drawable placed in joint space by a composite drawable.
func (r *Registry) MarkProp(name string) {
	r.props[name] = struct{}{}
}

func (r *Registry) IsProp(name string) bool {
	_, ok := r.props[name]
	return ok
}
