// Package render prints values of described types with the printto library.
//
// A value document (YAML, decoded with its key order intact) is first
// decoded against a descriptor type into a Value tree. Compile then builds
// one printer per type reference, chosen from the reference's category, so
// printing never inspects a value to decide how to print it.
//
// The text follows the grammar of the generated C++ binding with two
// differences. Maps and sets print in document order, while std::map and
// std::set iterate in key order. Bools inside containers print true/false,
// while the C++ runtime prints them as 1/0; bool struct fields print
// true/false in both.
package render
