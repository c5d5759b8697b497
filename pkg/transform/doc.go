// Package transform traverses and rewrites component trees.
//
// Nodes are immutable, so every rewrite returns a new tree. Subtrees that a
// rewrite leaves untouched are returned by reference and shared between the
// input and the output.
package transform
