package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// Leaf threshold: if we have this many or fewer objects, store them in a leaf node
const leafThreshold = 4

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Objects     []core.Hittable // Leaf members (nil for internal nodes)
}

// BVH is a Bounding Volume Hierarchy over a set of hittables. It answers the
// same nearest-hit query as HittableList, skipping subtrees whose boxes the ray misses.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of hittables. The input slice is not modified.
func NewBVH(objects []core.Hittable) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}

	objectsCopy := make([]core.Hittable, len(objects))
	copy(objectsCopy, objects)

	return &BVH{Root: buildBVH(objectsCopy)}
}

// buildBVH recursively splits objects at the midpoint of the longest axis
func buildBVH(objects []core.Hittable) *BVHNode {
	boundingBox := objects[0].BoundingBox()
	for _, object := range objects[1:] {
		boundingBox = boundingBox.Union(object.BoundingBox())
	}

	if len(objects) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Objects: objects}
	}

	// Split on the spread of object centers, not of the boxes: a huge member
	// such as a plane would otherwise put every center on one side.
	centers := objects[0].BoundingBox().Center()
	centerBox := core.NewAABB(centers, centers)
	for _, object := range objects[1:] {
		c := object.BoundingBox().Center()
		centerBox = centerBox.Union(core.NewAABB(c, c))
	}

	axis := centerBox.LongestAxis()
	splitPos := centerBox.Center().Component(axis)

	var left, right []core.Hittable
	for _, object := range objects {
		if object.BoundingBox().Center().Component(axis) < splitPos {
			left = append(left, object)
		} else {
			right = append(right, object)
		}
	}

	// All centers coincide: no useful split exists
	if len(left) == 0 || len(right) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Objects: objects}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(left),
		Right:       buildBVH(right),
	}
}

// Hit tests if a ray intersects any object in the BVH and returns the closest hit
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if bvh.Root == nil || tMin >= tMax {
		return nil, false
	}
	hit := bvh.hitNode(bvh.Root, ray, tMin, tMax)
	return hit, hit != nil
}

// hitNode returns the closest hit within node, or nil
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) *core.HitRecord {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil
	}

	var closestHit *core.HitRecord
	closestSoFar := tMax

	if node.Objects != nil {
		for _, object := range node.Objects {
			if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
				closestSoFar = hit.T
				closestHit = hit
			}
		}
		return closestHit
	}

	if hit := bvh.hitNode(node.Left, ray, tMin, closestSoFar); hit != nil {
		closestSoFar = hit.T
		closestHit = hit
	}
	if hit := bvh.hitNode(node.Right, ray, tMin, closestSoFar); hit != nil {
		closestHit = hit
	}

	return closestHit
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}
