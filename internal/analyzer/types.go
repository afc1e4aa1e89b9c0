package analyzer

// ClassStereotype classifies a contract-like declaration.
type ClassStereotype string

const (
	ClassNone      ClassStereotype = "None"
	ClassLibrary   ClassStereotype = "Library"
	ClassInterface ClassStereotype = "Interface"
	ClassAbstract  ClassStereotype = "Abstract"
)

// OperatorStereotype classifies a function-like member.
type OperatorStereotype string

const (
	OperatorNone     OperatorStereotype = "None"
	OperatorModifier OperatorStereotype = "Modifier"
	OperatorEvent    OperatorStereotype = "Event"
	OperatorPayable  OperatorStereotype = "Payable"
	OperatorFallback OperatorStereotype = "Fallback"
	OperatorAbstract OperatorStereotype = "Abstract"
)

// Visibility of an attribute or operator. The zero value means the member
// has no visibility (modifiers, events, constructors, fallbacks).
type Visibility string

const (
	VisibilityNone     Visibility = ""
	VisibilityPublic   Visibility = "Public"
	VisibilityExternal Visibility = "External"
	VisibilityInternal Visibility = "Internal"
	VisibilityPrivate  Visibility = "Private"
)

// ReferenceType tells whether an association is rooted in persistent state
// (or inheritance) or in a transient context.
type ReferenceType string

const (
	ReferenceStorage ReferenceType = "Storage"
	ReferenceMemory  ReferenceType = "Memory"
)

// Attribute is a state variable.
type Attribute struct {
	Visibility Visibility `json:"visibility"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
}

// Parameter is a named, typed parameter or struct member.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Operator is a function, constructor, fallback, modifier or event.
type Operator struct {
	Stereotype       OperatorStereotype `json:"stereotype"`
	Visibility       Visibility         `json:"visibility,omitempty"`
	Name             string             `json:"name"`
	Parameters       []Parameter        `json:"parameters"`
	ReturnParameters []Parameter        `json:"returnParameters,omitempty"`
	IsPayable        bool               `json:"isPayable,omitempty"`
}

// StructDef is a struct declared inside a class.
type StructDef struct {
	Name    string      `json:"name"`
	Members []Parameter `json:"members"`
}

// EnumDef is an enum declared inside a class.
type EnumDef struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Association is a directed reference from the owning class to another class,
// known only by name.
type Association struct {
	ReferenceType   ReferenceType `json:"referenceType"`
	TargetClassName string        `json:"targetClassName"`
	Realization     bool          `json:"realization,omitempty"`
}

// ClassModel describes one contract, interface or library.
type ClassModel struct {
	Name         string          `json:"name"`
	SourceFile   string          `json:"sourceFile"`
	Stereotype   ClassStereotype `json:"stereotype"`
	Attributes   []Attribute     `json:"attributes"`
	Operators    []Operator      `json:"operators"`
	Structs      []StructDef     `json:"structs"`
	Enums        []EnumDef       `json:"enums"`
	Associations []Association   `json:"associations"`
}

// NewClassModel returns an empty model with its identity set.
func NewClassModel(name, sourceFile string) *ClassModel {
	return &ClassModel{
		Name:         name,
		SourceFile:   sourceFile,
		Stereotype:   ClassNone,
		Attributes:   []Attribute{},
		Operators:    []Operator{},
		Structs:      []StructDef{},
		Enums:        []EnumDef{},
		Associations: []Association{},
	}
}

// AddAssociation appends a without de-duplication.
func (c *ClassModel) AddAssociation(a Association) {
	c.Associations = append(c.Associations, a)
}

// SetStruct records a struct. Redeclaring a name replaces the earlier
// members in place.
func (c *ClassModel) SetStruct(name string, members []Parameter) {
	for i := range c.Structs {
		if c.Structs[i].Name == name {
			c.Structs[i].Members = members
			return
		}
	}
	c.Structs = append(c.Structs, StructDef{Name: name, Members: members})
}

// SetEnum records an enum. Redeclaring a name replaces the earlier values
// in place.
func (c *ClassModel) SetEnum(name string, values []string) {
	for i := range c.Enums {
		if c.Enums[i].Name == name {
			c.Enums[i].Values = values
			return
		}
	}
	c.Enums = append(c.Enums, EnumDef{Name: name, Values: values})
}

// Struct returns the members of the named struct.
func (c *ClassModel) Struct(name string) ([]Parameter, bool) {
	for _, s := range c.Structs {
		if s.Name == name {
			return s.Members, true
		}
	}
	return nil, false
}

// Enum returns the values of the named enum.
func (c *ClassModel) Enum(name string) ([]string, bool) {
	for _, e := range c.Enums {
		if e.Name == name {
			return e.Values, true
		}
	}
	return nil, false
}

// FilterOptions controls which classes Filter keeps.
type FilterOptions struct {
	Prefix         string // class name prefix filter
	HideLibraries  bool
	HideInterfaces bool
}
