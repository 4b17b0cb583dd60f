// Package msbuild loads, inspects and edits MSBuild project files (.csproj, .vbproj,
// .fsproj) in place.
//
// Unlike a struct-mapped model, the document is kept as an element tree so that
// editing one attribute leaves comments, whitespace and unknown elements untouched
// when the file is written back.
package msbuild

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/willibrandon/gohintpath/mspath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Project is a loaded, mutable MSBuild project document.
type Project struct {
	// Path is the absolute path of the project file.
	Path string

	doc      *etree.Document
	layout   layout
	globals  *Properties
	props    *Properties
	modified bool
}

// LoadProject reads and parses the project file at path. Global properties (such as
// SolutionDir) take precedence over definitions inside the project.
func LoadProject(path string, globals map[string]string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	return ParseProject(absPath, data, globals)
}

// ParseProject parses project XML that was read from path. The path only serves to
// derive the project directory and reserved properties; it is not read.
func ParseProject(path string, data []byte, globals map[string]string) (*Project, error) {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalAttrVal = true

	if err := doc.ReadFromBytes(bytes.TrimPrefix(data, utf8BOM)); err != nil {
		return nil, fmt.Errorf("failed to parse project XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "Project" {
		return nil, fmt.Errorf("failed to parse project XML: root element is not <Project>")
	}

	return &Project{
		Path:    path,
		doc:     doc,
		layout:  detectLayout(data),
		globals: NewPropertiesFrom(globals),
	}, nil
}

// Directory returns the directory containing the project file.
func (p *Project) Directory() string {
	return mspath.Dir(p.Path)
}

// Name returns the project file name without its extension.
func (p *Project) Name() string {
	base := mspath.Base(p.Path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// IsSDKStyle reports whether the project uses the Sdk attribute.
func (p *Project) IsSDKStyle() bool {
	return p.doc.Root().SelectAttrValue("Sdk", "") != ""
}

// Modified reports whether any attribute or metadata value was changed since the
// project was loaded or last saved.
func (p *Project) Modified() bool {
	return p.modified
}

func (p *Project) markModified() {
	p.modified = true
}

// SetGlobalProperty sets a global property and invalidates the evaluated property
// set, the way a host re-evaluates a project after changing its global properties.
func (p *Project) SetGlobalProperty(name, value string) {
	if current, ok := p.globals.Get(name); ok && current == value {
		return
	}
	p.globals.Set(name, value)
	p.props = nil
}

// GlobalProperty returns the value of a global property.
func (p *Project) GlobalProperty(name string) (string, bool) {
	return p.globals.Get(name)
}

// Save writes the project back to Path when it was modified.
//
// The file keeps the original's UTF-8 byte order mark and CRLF line endings. Empty
// elements are written as <X /> when the original used that form anywhere and as
// <X/> otherwise. An element written with an empty body (<X></X>) comes back as an
// empty element.
func (p *Project) Save() (err error) {
	if !p.modified {
		return nil
	}

	file, err := os.Create(p.Path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err = p.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}

	p.modified = false
	return nil
}

// WriteTo serializes the project document to w in the layout described by Save.
func (p *Project) WriteTo(w io.Writer) (int64, error) {
	var total int64
	if p.layout.bom {
		n, err := w.Write(utf8BOM)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	data, err := p.serialize()
	if err != nil {
		return total, err
	}
	n, err := w.Write(data)
	return total + int64(n), err
}

// String returns the serialized project document without a byte order mark.
func (p *Project) String() string {
	data, err := p.serialize()
	if err != nil {
		return ""
	}
	return string(data)
}

func (p *Project) serialize() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return p.layout.apply(buf.Bytes()), nil
}

// Properties returns the evaluated property set: reserved MSBuild properties, then
// every PropertyGroup definition in document order with each value expanded against
// the properties defined before it, and global properties, which project definitions
// cannot override. Property conditions are not evaluated.
func (p *Project) Properties() *Properties {
	if p.props != nil {
		return p.props
	}

	props := NewProperties()
	dir := p.Directory()
	dirWithSep := dir
	if !strings.HasSuffix(dir, `\`) && !strings.HasSuffix(dir, "/") {
		dirWithSep = dir + string(mspath.Separator(dir))
	}

	props.Set("MSBuildProjectFullPath", p.Path)
	props.Set("MSBuildProjectDirectory", dir)
	props.Set("MSBuildProjectFile", mspath.Base(p.Path))
	props.Set("MSBuildProjectName", p.Name())
	props.Set("MSBuildThisFileDirectory", dirWithSep)
	props.Set("ProjectDir", dirWithSep)

	for _, name := range p.globals.Names() {
		v, _ := p.globals.Get(name)
		props.Set(name, v)
	}

	for _, group := range descendants(p.doc.Root(), "PropertyGroup") {
		for _, def := range group.ChildElements() {
			if _, global := p.globals.Get(def.Tag); global {
				continue
			}
			props.Set(def.Tag, props.Expand(def.Text()))
		}
	}

	p.props = props
	return props
}

// descendants returns every element named tag below el in document order. Targets
// are not descended into: their contents are executed at build time and are not part
// of the evaluated project.
func descendants(el *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			found = append(found, child)
			continue
		}
		if child.Tag == "Target" {
			continue
		}
		found = append(found, descendants(child, tag)...)
	}
	return found
}
