// Package cloth holds the particle/constraint data model for a
// rectangular cloth mesh.
//
// The mesh owns a contiguous particle store; constraints reference
// particles by index and never outlive the store. Particles carry a
// Verlet position history instead of explicit velocity:
//
//   - [Particle]: point mass with current and previous position
//   - [Constraint]: distance link between two particle indices
//   - [Mesh]: rows x cols grid, row 0 pinned
//
// Constraints transition irreversibly to broken when overstretched or
// cut; callers remove broken links with [Mesh.Prune].
package cloth
