package ir

// Type is photon's structural type record. Two Types are equal when their
// shape is equal field-for-field (see Equal), never by identity — the
// semantic engine builds fresh Type values constantly and relies on
// structural comparison for promotion/inference decisions.
type Type struct {
	Name        string // "int", "float", "str", "bool", "array", "map", "file", class name, module name...
	Known       bool
	IsClass     bool
	IsModule    bool
	IsPackage   bool
	Native      bool
	ElementType *Type // array element type
	KeyType     *Type // map key type
	ValType     *Type // map value type
}

// Unknown returns the canonical "not yet inferred" type.
func Unknown() *Type { return &Type{Name: "", Known: false} }

// NativeType constructs a known native scalar type such as int/float/str/bool.
func NativeType(name string) *Type { return &Type{Name: name, Known: true, Native: true} }

// ArrayOf constructs a known array type with the given element type. If
// elem is nil or unknown, the array type itself is left unknown, per
// invariant I4 ("once type.known, element/key/value types are also known
// or explicitly unknown").
func ArrayOf(elem *Type) *Type {
	if elem == nil {
		elem = Unknown()
	}
	return &Type{Name: "array", Known: elem.Known, ElementType: elem}
}

// MapOf constructs a known map type with the given key/value types.
func MapOf(key, val *Type) *Type {
	if key == nil {
		key = Unknown()
	}
	if val == nil {
		val = Unknown()
	}
	return &Type{Name: "map", Known: key.Known && val.Known, KeyType: key, ValType: val}
}

// ClassType constructs the type of instances of the named class.
func ClassType(name string) *Type { return &Type{Name: name, Known: true, IsClass: true} }

// ModuleType constructs the type of a bound module.
func ModuleType(name string) *Type { return &Type{Name: name, Known: true, IsModule: true} }

// PackageType constructs the type of a dotted-import package node.
func PackageType(name string) *Type { return &Type{Name: name, Known: true, IsPackage: true} }

// Equal reports structural equality between two types. Unknown types are
// compared field by field like any other, so Unknown() equals Unknown();
// callers use that to detect "nothing to promote".
func (t *Type) Equal(o *Type) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Known != o.Known || t.Name != o.Name || t.IsClass != o.IsClass ||
		t.IsModule != o.IsModule || t.IsPackage != o.IsPackage || t.Native != o.Native {
		return false
	}
	if !t.ElementType.Equal(o.ElementType) {
		return false
	}
	if !t.KeyType.Equal(o.KeyType) {
		return false
	}
	return t.ValType.Equal(o.ValType)
}

// Clone returns a deep copy of t (nil-safe).
func (t *Type) Clone() *Type {
	if t == nil {
		return nil
	}
	c := *t
	c.ElementType = t.ElementType.Clone()
	c.KeyType = t.KeyType.Clone()
	c.ValType = t.ValType.Clone()
	return &c
}

// Promote returns the common type of a and b per the engine's promotion
// rule: identical known types promote to themselves; int promotes with
// float to float; anything else has no promotion and returns Unknown().
func Promote(a, b *Type) *Type {
	if a == nil || !a.Known {
		return Unknown()
	}
	if b == nil || !b.Known {
		return Unknown()
	}
	if a.Equal(b) {
		return a.Clone()
	}
	if (a.Name == "int" && b.Name == "float") || (a.Name == "float" && b.Name == "int") {
		return NativeType("float")
	}
	return Unknown()
}

// String implements fmt.Stringer for diagnostics.
func (t *Type) String() string {
	if t == nil || !t.Known {
		return "unknown"
	}
	switch t.Name {
	case "array":
		return "array<" + t.ElementType.String() + ">"
	case "map":
		return "map<" + t.KeyType.String() + "," + t.ValType.String() + ">"
	default:
		return t.Name
	}
}
