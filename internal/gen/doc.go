// Package gen generates C++ print bindings for a resolved descriptor program.
//
// Generation uses text/template for the file skeleton and a small line
// writer for declarations and definitions. Output is deterministic: enums
// in declaration order, structs in dependency order.
//
// Per struct the generator emits:
//   - an __isset tracker for fields that may be unset
//   - __set_* setters, and get_* accessors for private optional fields
//   - a printTo member and a free operator<<, concrete or templated
//   - a friend grant when optional fields are private
//
// Per enum it emits a lazily built name table, operator<< and to_string.
package gen
