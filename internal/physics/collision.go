package physics

// Collider runs player-vs-collection queries through a Broadphase.
// One Collider is kept per collection so each has its own index.
type Collider struct {
	index Broadphase

	// MaxReach skips candidates whose centre is further than this from the
	// query on either axis. Zero disables the cull. It must be at least the
	// query radius plus the largest item radius or hits will be missed.
	MaxReach float64
}

// NewCollider wraps a broadphase strategy.
func NewCollider(index Broadphase, maxReach float64) *Collider {
	return &Collider{index: index, MaxReach: maxReach}
}

// Rebuild clears the index and inserts every item.
func Rebuild[T Circular](c *Collider, items []T) {
	c.index.Clear()
	for i, it := range items {
		s := it.Circle()
		c.index.Insert(s.X, s.Y, s.Radius, i)
	}
}

// FirstHit rebuilds the index from items and returns the index of the first item
// overlapping the query circle, or -1 when nothing overlaps.
func FirstHit[T Circular](c *Collider, query Circle, items []T) int {
	Rebuild(c, items)
	hit := -1
	c.index.QueryNear(query.X, query.Y, query.Radius, func(i int) bool {
		if c.hits(query, items[i].Circle()) {
			hit = i
			return true
		}
		return false
	})
	return hit
}

// EachHit rebuilds the index from items and calls fn for every item overlapping
// the query circle. The order of calls is unspecified.
func EachHit[T Circular](c *Collider, query Circle, items []T, fn func(index int)) {
	Rebuild(c, items)
	c.index.QueryNear(query.X, query.Y, query.Radius, func(i int) bool {
		if c.hits(query, items[i].Circle()) {
			fn(i)
		}
		return false
	})
}

func (c *Collider) hits(query, item Circle) bool {
	if c.MaxReach > 0 {
		dx := item.X - query.X
		dy := item.Y - query.Y
		if dx > c.MaxReach || dx < -c.MaxReach || dy > c.MaxReach || dy < -c.MaxReach {
			return false
		}
	}
	return Overlaps(query, item)
}
