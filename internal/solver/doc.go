// Package solver orchestrates the cloth simulation tick.
//
// Each tick runs in a fixed order that callers cannot rearrange:
//
//  1. Gauss-Seidel constraint relaxation, Iterations passes over the
//     active set in construction order. Later constraints in a pass see
//     corrections from earlier ones.
//  2. Pruning: constraints marked broken (torn or cut) leave the active
//     set, preserving the remaining order.
//  3. Verlet integration of every particle, exactly once.
//
// Position-based integration composes cheaply with constraint
// projection: correcting a position after the fact is equivalent to
// correcting the implicit velocity, so no stiff ODE machinery is needed.
//
// [Solver.Run] drives a headless simulation with context cancellation
// and per-tick [Metric] observation; interactive shells call
// [Solver.Step] directly once per frame.
package solver
