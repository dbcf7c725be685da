package descriptor

// reservedWords are names a declared type, field or enum constant cannot
// take because the generated C++ would not compile or would shadow a
// generated member.
var reservedWords = map[string]bool{
	// C++ keywords
	"alignas": true, "alignof": true, "and": true, "asm": true, "auto": true,
	"bitand": true, "bitor": true, "bool": true, "break": true, "case": true,
	"catch": true, "char": true, "class": true, "compl": true, "const": true,
	"constexpr": true, "const_cast": true, "continue": true, "decltype": true,
	"default": true, "delete": true, "do": true, "double": true,
	"dynamic_cast": true, "else": true, "enum": true, "explicit": true,
	"export": true, "extern": true, "false": true, "float": true, "for": true,
	"friend": true, "goto": true, "if": true, "inline": true, "int": true,
	"long": true, "mutable": true, "namespace": true, "new": true,
	"noexcept": true, "not": true, "nullptr": true, "operator": true,
	"or": true, "private": true, "protected": true, "public": true,
	"register": true, "reinterpret_cast": true, "return": true, "short": true,
	"signed": true, "sizeof": true, "static": true, "static_assert": true,
	"static_cast": true, "struct": true, "switch": true, "template": true,
	"this": true, "thread_local": true, "throw": true, "true": true,
	"try": true, "typedef": true, "typeid": true, "typename": true,
	"union": true, "unsigned": true, "using": true, "virtual": true,
	"void": true, "volatile": true, "while": true, "xor": true,

	// generated members and runtime names
	"__isset": true, "printTo": true, "out": true, "obj": true,
}

// IsReserved reports whether name cannot be used for a declaration.
func IsReserved(name string) bool {
	return reservedWords[name]
}
