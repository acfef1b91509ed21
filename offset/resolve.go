package offset

import (
	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/utils"
)

// Document is the chunk tree the engine edits in place. *p3d.File
// implements it. Scope p3d.NODE_INVALID means the document root.
type Document interface {
	Root() p3d.NodeId
	Node(id p3d.NodeId) *p3d.Node
	Payload(id p3d.NodeId) (p3d.Payload, error)
	Name(id p3d.NodeId) string
	ChildrenOfType(scope p3d.NodeId, chunkIds ...uint32) []p3d.NodeId
	FirstOfTypeByName(scope p3d.NodeId, chunkId uint32, name string) p3d.NodeId
	Remove(id p3d.NodeId)
	Replace(id p3d.NodeId, chunkId uint32, payload p3d.Payload)
}

// resolve follows a named reference. A missing target is not an error, the
// referencing entity simply has nothing to carry along.
func (e *engine) resolve(chunkId uint32, name string, scope p3d.NodeId) p3d.NodeId {
	id := e.doc.FirstOfTypeByName(scope, chunkId, name)
	if id == p3d.NODE_INVALID {
		utils.LogDebug("reference not found", "kind", p3d.KindName(chunkId), "name", name)
	}
	return id
}

// payloadOf decodes a node as T. Undecodable nodes are logged and skipped.
func payloadOf[T p3d.Payload](e *engine, id p3d.NodeId) (T, bool) {
	var zero T
	p, err := e.doc.Payload(id)
	if err != nil {
		utils.LogWarn("skipping undecodable chunk", "kind", p3d.KindName(e.doc.Node(id).ChunkId), "err", err)
		return zero, false
	}
	t, ok := p.(T)
	return t, ok
}
