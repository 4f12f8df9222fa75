// Package model provides the equation-oriented modeling primitives that
// process blocks are built from.
//
// A flowsheet is a tree of [Block] values. Each block declares named
// components against a shared [TimeSet]:
//
//   - [Var]: a solver variable, fixed or free per time point
//   - [Param]: a mutable scalar parameter
//   - [Expr]: a lazily evaluated named expression
//   - [Constraint]: a time-indexed equality residual
//
// Nothing is computed at declaration time. Blocks only emit terms; a
// [Solver] evaluates residuals and drives the free variables until every
// active constraint is satisfied.
//
// # Snapshots
//
// [Capture] records the fixed/active specification of a block tree so an
// initialization routine can refit the problem temporarily and hand it
// back unchanged:
//
//	snap := model.Capture(blk)
//	defer snap.Restore(blk)
//
// # Solving
//
// [Newton] is the reference solver: damped Newton iteration with a
// finite-difference Jacobian and a dense LU solve. Non-convergence is a
// reported [TerminationCondition], not an error.
package model
