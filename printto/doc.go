// Package printto renders values of generated types as human-readable text.
//
// Every printer writes into a Sink and is generic over the sink type, so the
// same printer can be instantiated for a fixed sink (io.StringWriter used as
// an interface value) or monomorphised for a concrete one (*strings.Builder,
// *bufio.Writer, a hand-rolled buffer). The produced text never depends on
// the sink.
//
// Rendering grammar:
//   - narrow integers (int8, uint8) are always printed as numbers
//   - enums print their registered name, or their decimal value
//   - pairs print as "first: second"
//   - lists print as "[e1, e2]"
//   - maps and sets print as "{e1, e2}" in the container's iteration order
//   - structs print as "Name(field: value, other: value)"
//
// Printers have no error path. Write errors are left to the sink, the same
// way bufio.Writer keeps the first error until Flush.
package printto
