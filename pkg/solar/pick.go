package solar

import (
	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

// Pick casts a ray from cam through the normalized device coordinate
// (ndcX, ndcY) and returns the nearest body it hits. Picking a ring selects
// its planet. A miss returns (nil, false).
func Pick(reg *Registry, cam *render.Camera, ndcX, ndcY float64) (*Body, bool) {
	ray := cam.Ray(ndcX, ndcY)
	for _, hit := range scene.Intersect(reg.Root(), ray) {
		if b, ok := reg.BodyForMesh(hit.Node); ok {
			return b, true
		}
	}
	return nil, false
}
