package binding

// FriendGrant returns the lines that grant the free operator<< of structName
// access to its private fields, in emission order:
//
//	Concrete, Restricted: friend std::ostream& operator<<(std::ostream& out, const S& obj);
//	Generic,  Restricted: template <typename OStream_>
//	                      friend OStream_& operator<<(OStream_& out, const S& obj);
//	any,      Open:       nothing
//
// The template line always stands on its own line before the friend line.
func FriendGrant(spec Spec, vis Visibility, structName string) []string {
	if vis != VisibilityRestricted {
		return nil
	}

	sig := spec.For(structName)
	friend := "friend " + sig.StreamOpDecl()

	if spec.Mode == ModeGeneric {
		return []string{sig.Template(), friend}
	}

	return []string{friend}
}
