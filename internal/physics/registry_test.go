package physics

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var (
		arena *Arena
		reg   *Registry
		p     *Particle
		h     Handle
	)

	BeforeEach(func() {
		arena = NewArena()
		reg = NewRegistry(arena)
		p = NewParticle(1)
		h = arena.Insert(p)
	})

	It("applies duplicate associations twice", func() {
		gen := &countingGenerator{force: Vec3(1, 0, 0)}
		reg.Add(h, gen)
		reg.Add(h, gen)

		reg.UpdateForces(0.1)

		Expect(gen.calls).To(Equal(2))
		Expect(p.Force()).To(Equal(Vec3(2, 0, 0)))
	})

	It("sums the same force regardless of insertion order", func() {
		g1 := &countingGenerator{force: Vec3(0.1, 2, -3)}
		g2 := &countingGenerator{force: Vec3(5, -0.25, 1)}

		other := NewParticle(1)
		oh := arena.Insert(other)

		reg.Add(h, g1)
		reg.Add(h, g2)
		reg.Add(oh, g2)
		reg.Add(oh, g1)
		reg.UpdateForces(0.1)

		Expect(p.Force()).To(Equal(other.Force()))
	})

	It("removes exactly one matching pair", func() {
		gen := &countingGenerator{}
		reg.Add(h, gen)
		reg.Add(h, gen)

		Expect(reg.Remove(h, gen)).To(BeTrue())
		Expect(reg.Len()).To(Equal(1))

		Expect(reg.Remove(h, &countingGenerator{})).To(BeFalse())
		Expect(reg.Len()).To(Equal(1))
	})

	It("removes every association for a handle", func() {
		reg.Add(h, &countingGenerator{})
		reg.Add(h, NewDrag(0.2, 0.01))
		other := arena.Insert(NewParticle(1))
		reg.Add(other, NewDrag(0.2, 0.01))

		Expect(reg.RemoveAll(h)).To(Equal(2))
		Expect(reg.Len()).To(Equal(1))
	})

	It("clears all associations", func() {
		gen := &countingGenerator{}
		reg.Add(h, gen)
		reg.Add(h, NewDrag(0.2, 0.01))

		reg.Clear()
		reg.UpdateForces(0.1)

		Expect(reg.Len()).To(BeZero())
		Expect(gen.calls).To(BeZero())
	})

	It("drops associations whose handle was released", func() {
		gen := &countingGenerator{}
		reg.Add(h, gen)
		arena.Release(h)

		reg.UpdateForces(0.1)

		Expect(gen.calls).To(BeZero())
		Expect(reg.Len()).To(BeZero())
	})

	It("does not fire stale associations for a reused slot", func() {
		gen := &countingGenerator{}
		reg.Add(h, gen)
		arena.Release(h)
		fresh := NewParticle(1)
		arena.Insert(fresh)

		Expect(reg.Sweep()).To(Equal(1))
		reg.UpdateForces(0.1)

		Expect(gen.calls).To(BeZero())
		Expect(fresh.Force().IsZero()).To(BeTrue())
	})
})
