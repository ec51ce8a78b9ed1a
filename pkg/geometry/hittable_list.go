package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
)

// HittableList is the scene composite: an ordered collection of hittables
// whose intersection is the nearest member hit, independent of order.
type HittableList struct {
	Objects []core.Hittable
}

// NewHittableList creates a list containing the given objects
func NewHittableList(objects ...core.Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends objects to the list
func (l *HittableList) Add(objects ...core.Hittable) {
	l.Objects = append(l.Objects, objects...)
}

// Len returns the number of members
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all members
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if tMin >= tMax {
		return nil, false
	}

	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all member bounding boxes
func (l *HittableList) BoundingBox() core.AABB {
	if len(l.Objects) == 0 {
		return core.AABB{}
	}
	box := l.Objects[0].BoundingBox()
	for _, object := range l.Objects[1:] {
		box = box.Union(object.BoundingBox())
	}
	return box
}
