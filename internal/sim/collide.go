package sim

import "github.com/vovakirdan/tui-duel/internal/core"

// separationScale pushes separated solids a hair further apart than the exact
// overlap so floating-point residue cannot re-trigger the same contact within
// one pass.
const separationScale = 1.0001

// ResolveCollisions detects and resolves every overlap in the live set.
//
// Only solids initiate resolution. A solid-solid overlap is resolved by
// symmetric separation: both bodies move apart along the bearing between
// them, each by half the overlap, with no damage to either. A solid touching
// a massless body triggers the solid's collision reaction and unconditionally
// consumes the massless body. Massless bodies never interact with each other.
//
// Entities are scanned in live-set order. With three or more overlapping
// solids the pass order affects transient positions only; this is an accepted
// approximation, not a simultaneous-contact solver.
func ResolveCollisions(entities []Entity) {
	for _, a := range entities {
		ab := a.Body()
		if ab.Class != ClassSolid || !ab.Alive {
			continue
		}

		for _, b := range entities {
			if a == b {
				continue
			}
			bb := b.Body()
			if !bb.Alive {
				continue
			}

			overlap := ab.Radius + bb.Radius - core.Distance(ab.Pos, bb.Pos)
			if overlap <= 0 {
				continue
			}

			switch bb.Class {
			case ClassSolid:
				separate(ab, bb, overlap)
			case ClassMassless:
				if ship, ok := a.(*Ship); ok {
					ship.CollidedWith(b)
				}
				bb.Kill()
			}
		}
	}
}

// separate pushes two solid bodies apart symmetrically along the a->b
// bearing. The displacement applied to a is the exact negation of the one
// applied to b.
func separate(a, b *Body, overlap float64) {
	bearing := b.Pos.Sub(a.Pos).Angle()
	shift := core.Heading(bearing).Scale(overlap / 2 * separationScale)

	a.Pos = a.Pos.Sub(shift)
	b.Pos = b.Pos.Add(shift)
}
