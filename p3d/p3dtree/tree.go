// Package p3dtree renders the chunk tree of a p3d file as YAML.
package p3dtree

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/p3d_offset/p3d"
)

type Node struct {
	ChunkId  uint32
	Name     string
	Size     int
	Decoded  bool
	Children []*Node
}

var _ yaml.Marshaler = (*Node)(nil)

type nodeYAMLType struct {
	Kind     yaml.Node
	Name     string  `yaml:",omitempty"`
	Size     int     `yaml:",omitempty"`
	Children []*Node `yaml:",omitempty"`
}

func (n *Node) MarshalYAML() (interface{}, error) {
	comment := fmt.Sprintf("0x%.8x", n.ChunkId)
	if !n.Decoded {
		comment += " raw"
	}
	return &nodeYAMLType{
		Kind: yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       p3d.KindName(n.ChunkId),
			LineComment: comment,
		},
		Name:     n.Name,
		Size:     n.Size,
		Children: n.Children,
	}, nil
}

// Build walks f from id. Payloads are decoded to get names; a payload that
// fails to decode is reported as raw.
func Build(f *p3d.File, id p3d.NodeId) *Node {
	node := f.Node(id)
	n := &Node{ChunkId: node.ChunkId, Size: len(node.Data)}
	if id != f.Root() {
		if _, err := f.Payload(id); err == nil {
			n.Decoded = node.IsDecoded()
			n.Name = f.Name(id)
		}
	}
	for _, child := range node.Children {
		n.Children = append(n.Children, Build(f, child))
	}
	return n
}

func Write(w io.Writer, f *p3d.File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Build(f, f.Root())); err != nil {
		return errors.Wrapf(err, "Failed to marshal yaml")
	}
	return errors.Wrapf(enc.Close(), "Failed to close yaml encoder")
}
