package physics

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("World", func() {
	var w *World

	BeforeEach(func() {
		w = NewWorld(WorldConfig{Gravity: Vec3(0, -9.8, 0)})
	})

	It("subscribes new particles to the built-in gravity", func() {
		h := w.AddParticle(NewParticle(1))

		Expect(w.Len()).To(Equal(1))
		Expect(w.Registry().Generators(h)).To(ConsistOf(w.Gravity()))
	})

	It("lags position by one tick on the first update", func() {
		p := NewParticle(1)
		p.Damping = 1
		w.AddParticle(p)

		w.Update(1.0)

		Expect(p.Velocity.X).To(BeZero())
		Expect(p.Velocity.Y).To(BeNumerically("~", -9.8, 1e-9))
		Expect(p.Velocity.Z).To(BeZero())
		Expect(p.Position).To(Equal(Vector3{}))

		w.Update(1.0)

		Expect(p.Position.Y).To(BeNumerically("~", -9.8, 1e-9))
		Expect(p.Velocity.Y).To(BeNumerically("~", -19.6, 1e-9))
	})

	It("scales speed by damping^dt when no force acts", func() {
		flat := NewWorld(WorldConfig{})
		p := NewParticle(1)
		p.Damping = 0.8
		p.Velocity = Vec3(0, 0, 10)
		flat.AddParticle(p)

		flat.Update(0.5)

		Expect(p.Velocity.Magnitude()).To(BeNumerically("~", 10*math.Pow(0.8, 0.5), 1e-12))
	})

	It("prunes destroyed particles before integrating", func() {
		p := NewParticle(1)
		p.Velocity = Vec3(1, 0, 0)
		h := w.AddParticle(p)
		p.Destroy()

		w.Update(1.0)

		Expect(w.Len()).To(BeZero())
		Expect(p.Position).To(Equal(Vector3{}))
		_, ok := w.Particle(h)
		Expect(ok).To(BeFalse())
		Expect(w.Registry().Len()).To(BeZero())
	})

	It("keeps insertion order in Handles and Each", func() {
		a := w.AddParticle(NewParticle(1))
		b := w.AddParticle(NewParticle(2))
		c := w.AddParticle(NewParticle(3))

		Expect(w.Handles()).To(Equal([]Handle{a, b, c}))

		var seen []float64
		w.Each(func(_ Handle, p *Particle) { seen = append(seen, p.Mass) })
		Expect(seen).To(Equal([]float64{1, 2, 3}))
	})

	Describe("RemoveParticle", func() {
		It("stops integration and silences the particle's generators", func() {
			p := NewParticle(1)
			p.Velocity = Vec3(1, 0, 0)
			h := w.AddParticle(p)
			gen := &countingGenerator{force: Vec3(1, 0, 0)}
			w.Registry().Add(h, gen)

			w.Update(0.1)
			Expect(gen.calls).To(Equal(1))
			before := p.Position

			Expect(w.RemoveParticle(h)).To(BeTrue())
			w.Update(0.1)

			Expect(gen.calls).To(Equal(1))
			Expect(p.Position).To(Equal(before))
			Expect(w.Registry().Len()).To(BeZero())
		})

		It("leaves other particles' associations alone", func() {
			gen := &countingGenerator{}
			gone := w.AddParticle(NewParticle(1))
			kept := w.AddParticle(NewParticle(1))
			w.Registry().Add(gone, gen)
			w.Registry().Add(kept, gen)

			w.RemoveParticle(gone)
			w.Update(0.1)

			Expect(gen.calls).To(Equal(1))
			Expect(w.Registry().Generators(kept)).To(HaveLen(2))
		})

		It("rejects stale handles", func() {
			h := w.AddParticle(NewParticle(1))
			Expect(w.RemoveParticle(h)).To(BeTrue())
			Expect(w.RemoveParticle(h)).To(BeFalse())
		})
	})

	Describe("Boost latches", func() {
		var (
			boost  *Boost
			p1, p2 *Particle
			h1, h2 Handle
		)

		BeforeEach(func() {
			boost = NewBoost(Vec3(1, 0, 0), 1, AxisX, 0, 2)
			p1, p2 = NewParticle(1), NewParticle(1)
			h1, h2 = w.AddParticle(p1), w.AddParticle(p2)
			w.Registry().Add(h1, boost)
			w.Registry().Add(h2, boost)
			w.Update(0.1)

			Expect(boost.boosted).To(HaveLen(2))
		})

		It("drops the latch of a destroyed particle", func() {
			p1.Destroy()
			w.Update(0.1)

			Expect(boost.boosted).To(HaveLen(1))
			Expect(boost.Boosted(p1)).To(BeFalse())
			Expect(boost.Boosted(p2)).To(BeTrue())
		})

		It("drops the latch of a removed particle", func() {
			Expect(w.RemoveParticle(h2)).To(BeTrue())

			Expect(boost.boosted).To(HaveLen(1))
			Expect(boost.Boosted(p2)).To(BeFalse())
		})

		It("stays bounded while particles are recycled", func() {
			for i := 0; i < 100; i++ {
				p := NewParticle(1)
				h := w.AddParticle(p)
				w.Registry().Add(h, boost)
				w.Update(0.1)
				p.Destroy()
			}
			w.Update(0.1)

			Expect(boost.boosted).To(HaveLen(2))
		})
	})

	Describe("Validate", func() {
		It("passes for finite state", func() {
			w.AddParticle(NewParticle(1))
			w.Update(0.016)
			Expect(w.Validate()).To(Succeed())
		})

		It("reports the first particle with NaN state", func() {
			w.AddParticle(NewParticle(1))
			bad := NewParticle(1)
			bad.Velocity = Vec3(math.NaN(), 0, 0)
			h := w.AddParticle(bad)

			err := w.Validate()
			Expect(errors.Is(err, ErrInvalidState)).To(BeTrue())

			var se *StateError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Handle).To(Equal(h))
			Expect(se.Field).To(Equal("velocity"))
		})
	})
})
