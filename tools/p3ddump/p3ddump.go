package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mogaika/p3d_offset/p3d"
	"github.com/mogaika/p3d_offset/p3d/mesh"
	"github.com/mogaika/p3d_offset/p3d/p3dtree"
	"github.com/mogaika/p3d_offset/utils"
	"github.com/mogaika/p3d_offset/utils/gltfutils"

	_ "github.com/mogaika/p3d_offset/p3d/anm"
	_ "github.com/mogaika/p3d_offset/p3d/cam"
	_ "github.com/mogaika/p3d_offset/p3d/collision"
	_ "github.com/mogaika/p3d_offset/p3d/entity"
	_ "github.com/mogaika/p3d_offset/p3d/light"
	_ "github.com/mogaika/p3d_offset/p3d/locator"
	_ "github.com/mogaika/p3d_offset/p3d/sg"
	_ "github.com/mogaika/p3d_offset/p3d/skel"
)

func dumpPayloads(f *p3d.File, id p3d.NodeId, depth int) {
	if id != f.Root() {
		p, err := f.Payload(id)
		switch {
		case err != nil:
			fmt.Printf("%*s%s: %v\n", depth*2, "", p3d.KindName(f.Node(id).ChunkId), err)
		case p != nil:
			fmt.Printf("%*s%s", depth*2, "", utils.SDump(p))
		}
	}
	for _, child := range f.Node(id).Children {
		dumpPayloads(f, child, depth+1)
	}
}

func exportMeshes(f *p3d.File, path string) error {
	doc := gltfutils.NewDocument()
	var walk func(id p3d.NodeId)
	walk = func(id p3d.NodeId) {
		for _, child := range f.Node(id).Children {
			switch f.Node(child).ChunkId {
			case mesh.CHUNK_MESH, mesh.CHUNK_SKIN:
				if _, err := mesh.ExportGLTF(f, doc, child); err != nil {
					utils.LogWarn("mesh not exported", "name", f.Name(child), "err", err)
				}
			default:
				walk(child)
			}
		}
	}
	walk(f.Root())

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return gltfutils.ExportBinary(out, doc)
}

func main() {
	var inPath, gltfPath string
	var spew, verbose bool
	flag.StringVar(&inPath, "i", "", "Input p3d file")
	flag.BoolVar(&spew, "spew", false, "Dump decoded payloads after the chunk tree")
	flag.StringVar(&gltfPath, "gltf", "", "Export meshes and skins to this .glb file")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()
	utils.SetVerbose(verbose)

	if inPath == "" {
		flag.PrintDefaults()
		os.Exit(2)
	}

	f, err := p3d.Load(inPath)
	if err != nil {
		utils.LogError("Can't load input", "err", err)
		os.Exit(6)
	}

	if err := p3dtree.Write(os.Stdout, f); err != nil {
		utils.LogError("Can't dump tree", "err", err)
		os.Exit(6)
	}
	if spew {
		fmt.Println("---")
		dumpPayloads(f, f.Root(), -1)
	}

	if gltfPath != "" {
		if err := exportMeshes(f, gltfPath); err != nil {
			utils.LogError("Can't export gltf", "path", gltfPath, "err", err)
			os.Exit(6)
		}
	}
}
