// Package descriptor holds the resolved type descriptors the generator
// consumes, and loads them from descriptor documents.
//
// A document declares enums, typedefs and structs of one program:
//
//	version: "1"
//	program: ThriftTest
//	namespace: thrift.test
//	enums:
//	  - name: Numberz
//	    values:
//	      - {name: ONE, value: 1}
//	      - {name: FIVE, value: 5}
//	typedefs:
//	  - {name: UserId, type: i64}
//	structs:
//	  - name: Insanity
//	    fields:
//	      - {id: 1, name: userMap, type: "map<Numberz, UserId>"}
//	      - {id: 2, name: xtructs, type: "list<Xtruct>", requiredness: optional}
//
// Resolution validates the document and classifies every type reference into
// exactly one Category. Printers are selected from that category; nothing
// downstream inspects values to decide how to print them.
//
// Documents may be YAML, TOML or JSON; the format is chosen from the file
// extension.
package descriptor
