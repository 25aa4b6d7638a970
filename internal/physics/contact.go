package physics

// Contact is a detected collision between A and an optional B. A nil B is an
// immovable anchor. Normal points from B towards A and must be unit length.
type Contact struct {
	A, B        *Particle
	Restitution float64
	Normal      Vector3
}

// SeparatingSpeed is the relative velocity of A and B along Normal. A
// positive value means the pair is already moving apart.
func (c *Contact) SeparatingSpeed() float64 {
	rel := c.A.Velocity
	if c.B != nil {
		rel = rel.Sub(c.B.Velocity)
	}
	return rel.Dot(c.Normal)
}

func (c *Contact) totalInverseMass() float64 {
	total := c.A.InverseMass()
	if c.B != nil {
		total += c.B.InverseMass()
	}
	return total
}

// Resolve applies the velocity impulse for this contact. Separating pairs
// and pairs with no movable member are left untouched. Positions are not
// corrected.
func (c *Contact) Resolve(dt float64) {
	c.resolveVelocity(dt)
}

func (c *Contact) resolveVelocity(dt float64) {
	separating := c.SeparatingSpeed()
	if separating > 0 {
		return
	}

	newSeparating := -c.Restitution * separating
	deltaSpeed := newSeparating - separating

	totalInvMass := c.totalInverseMass()
	if totalInvMass <= 0 {
		return
	}

	impulse := c.Normal.Scale(deltaSpeed / totalInvMass)

	c.A.Velocity.AddInPlace(impulse.Scale(c.A.InverseMass()))
	if c.B != nil {
		c.B.Velocity.SubInPlace(impulse.Scale(c.B.InverseMass()))
	}
}

// ContactResolver resolves a batch of contacts, always picking the one that
// is closing fastest. Iterations <= 0 means twice the batch size.
type ContactResolver struct {
	Iterations int
}

func NewContactResolver(iterations int) *ContactResolver {
	return &ContactResolver{Iterations: iterations}
}

// Resolve returns the number of contacts resolved. It stops early once no
// contact in the batch is closing.
func (r *ContactResolver) Resolve(contacts []*Contact, dt float64) int {
	limit := r.Iterations
	if limit <= 0 {
		limit = 2 * len(contacts)
	}

	used := 0
	for used < limit {
		worst := -1
		lowest := 0.0
		for i, c := range contacts {
			if c.totalInverseMass() <= 0 {
				continue
			}
			if s := c.SeparatingSpeed(); s < lowest {
				lowest = s
				worst = i
			}
		}
		if worst < 0 {
			break
		}
		contacts[worst].Resolve(dt)
		used++
	}
	return used
}
