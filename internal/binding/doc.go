// Package binding decides how generated print bindings are shaped.
//
// Select turns generator options into a Spec: Concrete bindings are written
// against one sink type (std::ostream by default) and compiled once in the
// implementation unit; Generic bindings are function templates over a sink
// type parameter (OStream_ by default) whose bodies live in a .tcc file
// included by the header.
//
// The Spec fixes the artifact set of a generation run (Artifacts), the
// signatures of printTo and operator<< (Signatures), and the friend grant a
// struct with restricted fields needs (FriendGrant).
package binding
