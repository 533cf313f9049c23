// Package chisel is the native sequence-design engine.
//
// A Problem holds a sequence plus hard constraints and soft objectives.
// ResolveConstraints mutates the sequence until every constraint passes;
// Optimize then improves the objectives without breaking a constraint.
// Mutations are restricted by the specifications themselves: coding
// regions only admit synonymous codons and AvoidChanges locks bases.
package chisel
