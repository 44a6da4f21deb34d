package models

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/orrery/pkg/math3d"
)

// ErrNoMesh is returned when a glTF document contains no triangle geometry.
var ErrNoMesh = errors.New("gltf: no triangle mesh")

// AddToDocument writes m as a single-primitive glTF mesh and returns its index in doc.Meshes.
func AddToDocument(doc *gltf.Document, m *Mesh) int {
	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	uvs := make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z)}
		normals[i] = [3]float32{float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z)}
		// glTF puts V=0 at the top of the image
		uvs[i] = [2]float32{float32(v.UV.X), float32(1 - v.UV.Y)}
	}
	indices := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		indices = append(indices, uint32(f.V[0]), uint32(f.V[1]), uint32(f.V[2]))
	}

	prim := &gltf.Primitive{
		Indices: gltf.Index(int(modeler.WriteIndices(doc, indices))),
		Attributes: map[string]int{
			gltf.POSITION:   int(modeler.WritePosition(doc, positions)),
			gltf.NORMAL:     int(modeler.WriteNormal(doc, normals)),
			gltf.TEXCOORD_0: int(modeler.WriteTextureCoord(doc, uvs)),
		},
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: m.Name, Primitives: []*gltf.Primitive{prim}})
	return len(doc.Meshes) - 1
}

// LoadGLB loads a glTF/GLB file and flattens every triangle primitive of the
// default scene into one mesh in world space.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil {
			sceneIdx = int(*doc.Scene)
		}
		for _, nodeIdx := range doc.Scenes[sceneIdx].Nodes {
			if err := appendNode(doc, int(nodeIdx), math3d.Identity(), mesh); err != nil {
				return nil, err
			}
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoMesh)
	}

	hasNormals := false
	for _, v := range mesh.Vertices {
		if v.Normal.LenSq() > 1e-6 {
			hasNormals = true
			break
		}
	}
	if !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// nodeTransform returns the local matrix of a glTF node.
func nodeTransform(node *gltf.Node) math3d.Mat4 {
	if node.Matrix != [16]float64{} && node.Matrix != [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1} {
		// glTF matrices are column-major
		var m math3d.Mat4
		for col := range 4 {
			for row := range 4 {
				m[row*4+col] = node.Matrix[col*4+row]
			}
		}
		return m
	}
	local := math3d.Translate(math3d.V3(node.Translation[0], node.Translation[1], node.Translation[2]))
	if r := node.Rotation; r != [4]float64{} {
		local = local.Mul(math3d.QuatToMat4(r[0], r[1], r[2], r[3]))
	}
	if s := node.Scale; s != [3]float64{} {
		local = local.Mul(math3d.Scale(math3d.V3(s[0], s[1], s[2])))
	}
	return local
}

func appendNode(doc *gltf.Document, nodeIdx int, parent math3d.Mat4, mesh *Mesh) error {
	node := doc.Nodes[nodeIdx]
	world := parent.Mul(nodeTransform(node))

	if node.Mesh != nil {
		if err := appendMesh(doc, doc.Meshes[int(*node.Mesh)], world, mesh); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}
	for _, child := range node.Children {
		if err := appendNode(doc, int(child), world, mesh); err != nil {
			return err
		}
	}
	return nil
}

func appendMesh(doc *gltf.Document, m *gltf.Mesh, transform math3d.Mat4, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}
		var normals [][3]float32
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}
		var uvs [][2]float32
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{
				Position: transform.MulVec3(math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))),
			}
			if i < len(normals) {
				n := normals[i]
				v.Normal = transform.MulVec3Dir(math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))).Normalize()
			}
			if i < len(uvs) {
				v.UV = math3d.V2(float64(uvs[i][0]), 1-float64(uvs[i][1]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		if prim.Indices == nil {
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{base + i, base + i + 1, base + i + 2}})
			}
			continue
		}
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{V: [3]int{
				base + int(indices[i]),
				base + int(indices[i+1]),
				base + int(indices[i+2]),
			}})
		}
	}
	return nil
}
