package physics

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Contact", func() {
	It("leaves separating pairs untouched", func() {
		a := NewParticle(1)
		b := NewParticle(1)
		a.Velocity = Vec3(2, 0, 0)
		b.Velocity = Vec3(-1, 0, 0)
		c := &Contact{A: a, B: b, Restitution: 1, Normal: Vec3(1, 0, 0)}

		Expect(c.SeparatingSpeed()).To(BeNumerically(">", 0))
		c.Resolve(0.016)

		Expect(a.Velocity).To(Equal(Vec3(2, 0, 0)))
		Expect(b.Velocity).To(Equal(Vec3(-1, 0, 0)))
	})

	It("preserves closing speed for an elastic head-on pair", func() {
		a := NewParticle(1)
		b := NewParticle(1)
		a.Velocity = Vec3(5, 0, 0)
		b.Velocity = Vec3(-5, 0, 0)
		c := &Contact{A: a, B: b, Restitution: 1, Normal: Vec3(-1, 0, 0)}

		Expect(c.SeparatingSpeed()).To(BeNumerically("~", -10, 1e-12))
		c.Resolve(0.016)

		Expect(c.SeparatingSpeed()).To(BeNumerically("~", 10, 1e-12))
		Expect(a.Velocity.X).To(BeNumerically("~", -5, 1e-12))
		Expect(b.Velocity.X).To(BeNumerically("~", 5, 1e-12))
	})

	It("conserves momentum between unequal masses", func() {
		a := NewParticle(2)
		b := NewParticle(6)
		a.Velocity = Vec3(0, -3, 0)
		b.Velocity = Vec3(0, 1, 0)
		before := a.Velocity.Scale(a.Mass).Add(b.Velocity.Scale(b.Mass))

		c := &Contact{A: a, B: b, Restitution: 0.5, Normal: Vec3(0, 1, 0)}
		c.Resolve(0.016)

		after := a.Velocity.Scale(a.Mass).Add(b.Velocity.Scale(b.Mass))
		Expect(after.Y).To(BeNumerically("~", before.Y, 1e-9))
		Expect(c.SeparatingSpeed()).To(BeNumerically("~", 2, 1e-9))
	})

	It("bounces off an anchor with the restitution applied", func() {
		ball := NewParticle(2)
		ball.Velocity = Vec3(1, -4, 0)
		c := &Contact{A: ball, Restitution: 0.5, Normal: Vec3(0, 1, 0)}

		c.Resolve(0.016)

		Expect(ball.Velocity.X).To(BeNumerically("~", 1, 1e-12))
		Expect(ball.Velocity.Y).To(BeNumerically("~", 2, 1e-12))
	})

	It("skips pairs with no movable member", func() {
		a := NewParticle(0)
		b := NewParticle(-1)
		a.Velocity = Vec3(1, 0, 0)
		b.Velocity = Vec3(-1, 0, 0)
		c := &Contact{A: a, B: b, Restitution: 1, Normal: Vec3(-1, 0, 0)}

		c.Resolve(0.016)

		Expect(a.Velocity).To(Equal(Vec3(1, 0, 0)))
		Expect(b.Velocity).To(Equal(Vec3(-1, 0, 0)))
	})

	It("treats an immovable partner as a wall", func() {
		wall := NewParticle(0)
		ball := NewParticle(1)
		ball.Velocity = Vec3(-3, 0, 0)
		c := &Contact{A: ball, B: wall, Restitution: 1, Normal: Vec3(1, 0, 0)}

		c.Resolve(0.016)

		Expect(ball.Velocity.X).To(BeNumerically("~", 3, 1e-12))
		Expect(wall.Velocity.IsZero()).To(BeTrue())
	})
})

var _ = Describe("ContactResolver", func() {
	It("resolves the fastest closing contact first and stops when all separate", func() {
		slow := NewParticle(1)
		slow.Velocity = Vec3(0, -1, 0)
		fast := NewParticle(1)
		fast.Velocity = Vec3(0, -6, 0)
		resting := NewParticle(1)
		resting.Velocity = Vec3(0, 2, 0)

		contacts := []*Contact{
			{A: slow, Restitution: 0, Normal: Vec3(0, 1, 0)},
			{A: fast, Restitution: 0, Normal: Vec3(0, 1, 0)},
			{A: resting, Restitution: 0, Normal: Vec3(0, 1, 0)},
		}

		r := NewContactResolver(1)
		Expect(r.Resolve(contacts, 0.016)).To(Equal(1))
		Expect(fast.Velocity.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(slow.Velocity.Y).To(BeNumerically("~", -1, 1e-12))

		r.Iterations = 0
		Expect(r.Resolve(contacts, 0.016)).To(Equal(1))
		Expect(slow.Velocity.Y).To(BeNumerically("~", 0, 1e-12))
		Expect(resting.Velocity.Y).To(BeNumerically("~", 2, 1e-12))
	})

	It("ignores contacts between immovable members", func() {
		a := NewParticle(0)
		a.Velocity = Vec3(0, -1, 0)
		r := NewContactResolver(0)

		Expect(r.Resolve([]*Contact{{A: a, Normal: Vec3(0, 1, 0)}}, 0.016)).To(BeZero())
	})
})
