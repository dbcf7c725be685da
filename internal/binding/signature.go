package binding

import "fmt"

// Signatures holds the spelled-out print binding of one struct or enum under
// a Spec. Declarations end with ';', definitions do not.
type Signatures struct {
	spec Spec
	name string
}

// For returns the signatures of the type called name.
func (s Spec) For(name string) Signatures {
	return Signatures{spec: s, name: name}
}

// Template is the template line preceding every generic declaration and
// definition, or "".
func (g Signatures) Template() string {
	return g.spec.TemplateLine()
}

// MemberDecl is the printTo member declaration inside the class.
func (g Signatures) MemberDecl() string {
	return fmt.Sprintf("void printTo(%s& out) const;", g.spec.SinkRef())
}

// MemberDef is the head of the out-of-line printTo definition.
func (g Signatures) MemberDef() string {
	return fmt.Sprintf("void %s::printTo(%s& out) const", g.name, g.spec.SinkRef())
}

// StreamOp is the head of the free operator<<.
func (g Signatures) StreamOp() string {
	sink := g.spec.SinkRef()
	return fmt.Sprintf("%s& operator<<(%s& out, const %s& obj)", sink, sink, g.name)
}

// StreamOpDecl is the operator<< declaration.
func (g Signatures) StreamOpDecl() string {
	return g.StreamOp() + ";"
}

// ToStringDef is the head of the to_string helper, which always renders into
// a std::string.
func (g Signatures) ToStringDef() string {
	return fmt.Sprintf("std::string to_string(const %s& val)", g.name)
}

// ToStringDecl is the to_string declaration.
func (g Signatures) ToStringDecl() string {
	return g.ToStringDef() + ";"
}
