package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
)

// Document converts the subtree rooted at root into a glTF document whose
// default scene holds root. Meshes shared between nodes are written once.
func Document(root *Node) *gltf.Document {
	doc := gltf.NewDocument()
	meshes := make(map[*models.Mesh]int)
	idx := addNode(doc, root, meshes)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, idx)
	return doc
}

// WriteGLB saves the subtree rooted at root as binary glTF.
func WriteGLB(root *Node, path string) error {
	if err := gltf.SaveBinary(Document(root), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func addNode(doc *gltf.Document, n *Node, meshes map[*models.Mesh]int) int {
	q := math3d.EulerToQuat(n.Rotation)
	gn := &gltf.Node{
		Name:        n.Name,
		Translation: [3]float64{n.Position.X, n.Position.Y, n.Position.Z},
		Rotation:    [4]float64{q.X, q.Y, q.Z, q.W},
		Scale:       [3]float64{n.Scale.X, n.Scale.Y, n.Scale.Z},
	}
	if n.Mesh != nil {
		mi, ok := meshes[n.Mesh]
		if !ok {
			mi = models.AddToDocument(doc, n.Mesh)
			meshes[n.Mesh] = mi
			doc.Meshes[mi].Primitives[0].Material = gltf.Index(addMaterial(doc, n))
		}
		gn.Mesh = gltf.Index(mi)
	}
	doc.Nodes = append(doc.Nodes, gn)
	self := len(doc.Nodes) - 1
	for _, c := range n.children {
		gn.Children = append(gn.Children, addNode(doc, c, meshes))
	}
	return self
}

func addMaterial(doc *gltf.Document, n *Node) int {
	c := n.Color
	if c == (render.Color{}) {
		c = render.ColorWhite
	}
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:        n.Name,
		DoubleSided: n.Material.DoubleSide,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{
				float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255,
			},
		},
	})
	return len(doc.Materials) - 1
}
