package msbuild

import (
	"regexp"
	"sort"
	"strings"
)

// propertyReference matches a plain property reference such as $(SolutionDir).
// Property functions like $([System.IO.Path]::Combine(...)) do not match and are
// left verbatim by Expand.
var propertyReference = regexp.MustCompile(`\$\(([A-Za-z_][A-Za-z0-9_\-]*)\)`)

// Properties is an evaluated MSBuild property set. Names are case-insensitive and
// the last assignment to a name wins.
type Properties struct {
	values map[string]string
	names  map[string]string
}

// NewProperties creates an empty property set.
func NewProperties() *Properties {
	return &Properties{
		values: make(map[string]string),
		names:  make(map[string]string),
	}
}

// NewPropertiesFrom creates a property set holding the given name/value pairs.
func NewPropertiesFrom(values map[string]string) *Properties {
	p := NewProperties()
	for name, value := range values {
		p.Set(name, value)
	}
	return p
}

// Set assigns value to the named property, replacing any earlier assignment.
func (p *Properties) Set(name, value string) {
	key := strings.ToLower(name)
	p.values[key] = value
	p.names[key] = name
}

// Get returns the value of the named property.
func (p *Properties) Get(name string) (string, bool) {
	v, ok := p.values[strings.ToLower(name)]
	return v, ok
}

// Len returns the number of defined properties.
func (p *Properties) Len() int {
	return len(p.values)
}

// Names returns the defined property names, as last declared, in sorted order.
func (p *Properties) Names() []string {
	names := make([]string, 0, len(p.names))
	for _, n := range p.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the property set.
func (p *Properties) Clone() *Properties {
	c := NewProperties()
	for k, v := range p.values {
		c.values[k] = v
		c.names[k] = p.names[k]
	}
	return c
}

// Expand substitutes every $(Name) in raw with the value of that property. Undefined
// properties expand to the empty string, as they do in MSBuild. Substitution is a
// single pass: a value that itself contains $(Other) is not expanded again.
func (p *Properties) Expand(raw string) string {
	if !strings.Contains(raw, "$(") {
		return raw
	}
	return propertyReference.ReplaceAllStringFunc(raw, func(ref string) string {
		v, _ := p.Get(ref[2 : len(ref)-1])
		return v
	})
}
