// Package p3d loads Pure3D chunk files into an arena of nodes and writes
// them back. Chunk payloads are decoded on demand by handlers that the
// per-kind packages register from init().
package p3d

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mogaika/p3d_offset/utils"
)

const CHUNK_HEADER_SIZE = 12

// CHUNK_ROOT is the "P3D\xff" file signature chunk.
const CHUNK_ROOT = 0xFF443350

// Payload is a decoded chunk header. Implementations encode themselves back
// in the layout they were decoded from.
type Payload interface {
	MarshalChunk(bw *utils.BufWriter)
}

// Named is implemented by payloads that carry a lookup name.
type Named interface {
	ChunkName() string
}

type PayloadLoader func(bs *utils.BufStack) (Payload, error)

type handler struct {
	kind   string
	loader PayloadLoader
}

var gHandlers map[uint32]handler = make(map[uint32]handler)

func SetHandler(chunkId uint32, kind string, ldr PayloadLoader) {
	gHandlers[chunkId] = handler{kind: kind, loader: ldr}
}

// KindName returns the registered name for a chunk id, or its hex value.
func KindName(chunkId uint32) string {
	if chunkId == CHUNK_ROOT {
		return "Root"
	}
	if h, ok := gHandlers[chunkId]; ok {
		return h.kind
	}
	return fmt.Sprintf("0x%.8x", chunkId)
}

type NodeId int

const NODE_INVALID NodeId = -1

type Node struct {
	Id       NodeId
	ChunkId  uint32
	Parent   NodeId
	Children []NodeId
	Data     []byte // payload bytes as loaded

	payload Payload
	tail    []byte // payload bytes the decoder did not consume
	removed bool
}

func (n *Node) IsDecoded() bool {
	return n.payload != nil
}

type File struct {
	Nodes []*Node
	root  NodeId
}

func NewFile() *File {
	f := &File{}
	f.root = f.addNode(NODE_INVALID, CHUNK_ROOT, nil).Id
	return f
}

func (f *File) addNode(parent NodeId, chunkId uint32, data []byte) *Node {
	n := &Node{
		Id:      NodeId(len(f.Nodes)),
		ChunkId: chunkId,
		Parent:  parent,
		Data:    data,
	}
	f.Nodes = append(f.Nodes, n)
	if parent != NODE_INVALID {
		p := f.Nodes[parent]
		p.Children = append(p.Children, n.Id)
	}
	return n
}

// AddChild appends a new chunk with an already decoded payload.
// scope NODE_INVALID means the root.
func (f *File) AddChild(scope NodeId, chunkId uint32, payload Payload) NodeId {
	if scope == NODE_INVALID {
		scope = f.root
	}
	n := f.addNode(scope, chunkId, nil)
	n.payload = payload
	return n.Id
}

func (f *File) Root() NodeId {
	return f.root
}

func (f *File) Node(id NodeId) *Node {
	if id == NODE_INVALID {
		return nil
	}
	return f.Nodes[id]
}

func (f *File) scopeNode(scope NodeId) *Node {
	if scope == NODE_INVALID {
		return f.Nodes[f.root]
	}
	return f.Nodes[scope]
}

// Payload decodes the node header on first use and caches it, so changes
// made through the returned value are written on Save.
// Chunks without a registered handler return (nil, nil).
func (f *File) Payload(id NodeId) (p Payload, err error) {
	n := f.Node(id)
	if n.payload != nil {
		return n.payload, nil
	}
	h, ok := gHandlers[n.ChunkId]
	if !ok {
		return nil, nil
	}

	bs := utils.NewBufStack(h.kind, n.Data)
	defer func() {
		if r := recover(); r != nil {
			if overrun, ok := r.(*utils.BufOverrun); ok {
				p, err = nil, errors.Wrapf(overrun, "Can't decode %s chunk %d", h.kind, id)
				return
			}
			panic(r)
		}
	}()

	p, err = h.loader(bs)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't decode %s chunk %d", h.kind, id)
	}
	n.payload = p
	n.tail = bs.Tail()
	return p, nil
}

// Name returns the lookup name of a node, or "" for unnamed or
// undecodable chunks.
func (f *File) Name(id NodeId) string {
	p, err := f.Payload(id)
	if err != nil || p == nil {
		return ""
	}
	if named, ok := p.(Named); ok {
		return named.ChunkName()
	}
	return ""
}

// ChildrenOfType returns the direct children of scope with one of the given
// chunk ids, in file order.
func (f *File) ChildrenOfType(scope NodeId, chunkIds ...uint32) []NodeId {
	result := make([]NodeId, 0)
	for _, child := range f.scopeNode(scope).Children {
		id := f.Nodes[child].ChunkId
		for _, want := range chunkIds {
			if id == want {
				result = append(result, child)
				break
			}
		}
	}
	return result
}

// FirstOfType returns the first direct child of the given type.
func (f *File) FirstOfType(scope NodeId, chunkId uint32) NodeId {
	for _, child := range f.scopeNode(scope).Children {
		if f.Nodes[child].ChunkId == chunkId {
			return child
		}
	}
	return NODE_INVALID
}

// FirstOfTypeByName returns the first direct child of scope of the given
// type whose name matches, or NODE_INVALID.
func (f *File) FirstOfTypeByName(scope NodeId, chunkId uint32, name string) NodeId {
	for _, child := range f.scopeNode(scope).Children {
		if f.Nodes[child].ChunkId == chunkId && f.Name(child) == name {
			return child
		}
	}
	return NODE_INVALID
}

// Remove detaches a node from its parent. Its id stays valid but it is no
// longer written.
func (f *File) Remove(id NodeId) {
	n := f.Node(id)
	if n == nil || n.removed || n.Parent == NODE_INVALID {
		return
	}
	p := f.Nodes[n.Parent]
	for i, child := range p.Children {
		if child == id {
			p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
			break
		}
	}
	n.removed = true
}

// Replace swaps the chunk kind and payload of a node in place, keeping its
// position and children.
func (f *File) Replace(id NodeId, chunkId uint32, payload Payload) {
	n := f.Node(id)
	n.ChunkId = chunkId
	n.payload = payload
	n.tail = nil
}

func (f *File) encodeNode(id NodeId) []byte {
	n := f.Nodes[id]

	var header []byte
	if n.payload != nil {
		bw := utils.NewBufWriter()
		n.payload.MarshalChunk(bw)
		bw.Write(n.tail)
		header = bw.Bytes()
	} else {
		header = n.Data
	}

	var children bytes.Buffer
	for _, child := range n.Children {
		children.Write(f.encodeNode(child))
	}

	headerSize := CHUNK_HEADER_SIZE + len(header)
	buf := make([]byte, CHUNK_HEADER_SIZE, headerSize+children.Len())
	binary.LittleEndian.PutUint32(buf[0:], n.ChunkId)
	binary.LittleEndian.PutUint32(buf[4:], uint32(headerSize))
	binary.LittleEndian.PutUint32(buf[8:], uint32(headerSize+children.Len()))
	buf = append(buf, header...)
	return append(buf, children.Bytes()...)
}

func (f *File) Write(w io.Writer) error {
	if _, err := w.Write(f.encodeNode(f.root)); err != nil {
		return errors.Wrap(err, "Error writing p3d")
	}
	return nil
}

func (f *File) Save(path string) error {
	if err := os.WriteFile(path, f.encodeNode(f.root), 0666); err != nil {
		return errors.Wrapf(err, "Can't save %q", path)
	}
	return nil
}

func (f *File) parseChunk(buf []byte, parent NodeId) (*Node, int, error) {
	if len(buf) < CHUNK_HEADER_SIZE {
		return nil, 0, errors.Errorf("Truncated chunk header (%d bytes)", len(buf))
	}
	chunkId := binary.LittleEndian.Uint32(buf[0:])
	headerSize := int(binary.LittleEndian.Uint32(buf[4:]))
	chunkSize := int(binary.LittleEndian.Uint32(buf[8:]))
	if headerSize < CHUNK_HEADER_SIZE || chunkSize < headerSize || chunkSize > len(buf) {
		return nil, 0, errors.Errorf("Invalid chunk %s sizes header=%d chunk=%d available=%d",
			KindName(chunkId), headerSize, chunkSize, len(buf))
	}

	n := f.addNode(parent, chunkId, buf[CHUNK_HEADER_SIZE:headerSize])
	for pos := headerSize; pos < chunkSize; {
		_, size, err := f.parseChunk(buf[pos:chunkSize], n.Id)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "In %s", KindName(chunkId))
		}
		pos += size
	}
	return n, chunkSize, nil
}

func Read(r io.Reader) (*File, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Error reading p3d")
	}
	if len(buf) < CHUNK_HEADER_SIZE || binary.LittleEndian.Uint32(buf) != CHUNK_ROOT {
		return nil, errors.New("Not a p3d file: missing root chunk signature")
	}

	f := &File{}
	root, size, err := f.parseChunk(buf, NODE_INVALID)
	if err != nil {
		return nil, errors.Wrap(err, "Error parsing chunks")
	}
	if size != len(buf) {
		utils.LogWarn("trailing bytes after root chunk", "bytes", len(buf)-size)
	}
	f.root = root.Id
	return f, nil
}

func Load(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open %q", path)
	}
	defer fd.Close()

	f, err := Read(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load %q", path)
	}
	return f, nil
}
