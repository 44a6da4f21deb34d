package models

import (
	"fmt"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// Default tessellation used for celestial bodies.
const (
	SphereSegments = 30
	RingSegments   = 32
)

// NewSphere builds a UV sphere centered on the origin.
//
// Vertices are laid out in (heightSegments+1) rows of (widthSegments+1)
// columns starting at the north pole; the seam column is duplicated so each
// row spans U from 0 to 1. V runs from 1 at the north pole to 0 at the south.
func NewSphere(radius float64, widthSegments, heightSegments int) *Mesh {
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	mesh := NewMesh(fmt.Sprintf("sphere-%g", radius))
	mesh.Vertices = make([]MeshVertex, 0, (widthSegments+1)*(heightSegments+1))

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			n := math3d.V3(
				-math.Cos(phi)*math.Sin(theta),
				math.Cos(theta),
				math.Sin(phi)*math.Sin(theta),
			)
			mesh.Vertices = append(mesh.Vertices, MeshVertex{
				Position: n.Scale(radius),
				Normal:   n.Normalize(),
				UV:       math3d.V2(u, 1-v),
			})
		}
	}

	row := widthSegments + 1
	for iy := range heightSegments {
		for ix := range widthSegments {
			a := iy*row + ix + 1
			b := iy*row + ix
			c := (iy+1)*row + ix
			d := (iy+1)*row + ix + 1
			// The pole rows collapse to a point, so one triangle of each quad is degenerate.
			if iy != 0 {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{a, b, d}})
			}
			if iy != heightSegments-1 {
				mesh.Faces = append(mesh.Faces, Face{V: [3]int{b, c, d}})
			}
		}
	}

	mesh.CalculateBounds()
	return mesh
}

// NewRing builds a flat annulus in the XY plane facing +Z, with a single
// radial segment between inner and outer.
//
// Vertices are two concentric loops of thetaSegments+1 points (inner loop
// first). UVs project the ring onto the unit square scaled by outer.
func NewRing(inner, outer float64, thetaSegments int) *Mesh {
	thetaSegments = max(3, thetaSegments)
	const radialSegments = 1

	mesh := NewMesh(fmt.Sprintf("ring-%g-%g", inner, outer))
	step := (outer - inner) / radialSegments

	for j := 0; j <= radialSegments; j++ {
		radius := inner + float64(j)*step
		for i := 0; i <= thetaSegments; i++ {
			angle := float64(i) / float64(thetaSegments) * 2 * math.Pi
			p := math3d.V3(radius*math.Cos(angle), radius*math.Sin(angle), 0)
			var uv math3d.Vec2
			if outer != 0 {
				uv = math3d.V2((p.X/outer+1)/2, (p.Y/outer+1)/2)
			}
			mesh.Vertices = append(mesh.Vertices, MeshVertex{
				Position: p,
				Normal:   math3d.V3(0, 0, 1),
				UV:       uv,
			})
		}
	}

	for j := range radialSegments {
		level := j * (thetaSegments + 1)
		for i := range thetaSegments {
			seg := level + i
			a := seg
			b := seg + thetaSegments + 1
			c := seg + thetaSegments + 2
			d := seg + 1
			mesh.Faces = append(mesh.Faces,
				Face{V: [3]int{a, b, d}},
				Face{V: [3]int{b, c, d}},
			)
		}
	}

	mesh.CalculateBounds()
	return mesh
}
