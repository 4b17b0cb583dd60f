package msbuild

import (
	"github.com/beevik/etree"
	"github.com/willibrandon/gohintpath/mspath"
)

const hintPathMetadata = "HintPath"

// Reference is a <Reference> item (an assembly reference of a classic project).
type Reference struct {
	project *Project
	element *etree.Element
}

// References returns every Reference item in the project in document order.
func (p *Project) References() []*Reference {
	var refs []*Reference
	for _, group := range descendants(p.doc.Root(), "ItemGroup") {
		for _, el := range group.SelectElements("Reference") {
			refs = append(refs, &Reference{project: p, element: el})
		}
	}
	return refs
}

// Include returns the assembly identity of the reference.
func (r *Reference) Include() string {
	return r.element.SelectAttrValue("Include", "")
}

// hintPathElement returns the last <HintPath> child; later metadata definitions win.
func (r *Reference) hintPathElement() *etree.Element {
	children := r.element.SelectElements(hintPathMetadata)
	if len(children) == 0 {
		return nil
	}
	return children[len(children)-1]
}

// HintPath returns the unevaluated HintPath metadata, whether it is written as a
// child element or as an attribute. It is empty when the reference has none.
func (r *Reference) HintPath() string {
	if el := r.hintPathElement(); el != nil {
		return el.Text()
	}
	return r.element.SelectAttrValue(hintPathMetadata, "")
}

// EvaluatedHintPath returns the HintPath with property references expanded.
func (r *Reference) EvaluatedHintPath() string {
	return r.project.Properties().Expand(r.HintPath())
}

// SetHintPath replaces the unevaluated HintPath metadata, keeping its element or
// attribute form.
func (r *Reference) SetHintPath(value string) {
	if el := r.hintPathElement(); el != nil {
		el.SetText(value)
	} else {
		r.element.CreateAttr(hintPathMetadata, value)
	}
	r.project.markModified()
}

// Import is an <Import> statement.
type Import struct {
	project *Project
	element *etree.Element
}

// Imports returns every Import statement outside targets in document order,
// including those nested in ImportGroup, Choose and When elements.
func (p *Project) Imports() []*Import {
	var imports []*Import
	for _, el := range descendants(p.doc.Root(), "Import") {
		imports = append(imports, &Import{project: p, element: el})
	}
	return imports
}

// Project returns the unevaluated Project attribute.
func (i *Import) Project() string {
	return i.element.SelectAttrValue("Project", "")
}

// EvaluatedProject returns the Project attribute with properties expanded and
// resolved against the importing project's directory.
func (i *Import) EvaluatedProject() string {
	expanded := i.project.Properties().Expand(i.Project())
	if expanded == "" {
		return ""
	}
	return mspath.Join(i.project.Directory(), expanded)
}

// SetProject replaces the unevaluated Project attribute.
func (i *Import) SetProject(value string) {
	i.element.CreateAttr("Project", value)
	i.project.markModified()
}

// Condition returns the Condition attribute, or "" when absent.
func (i *Import) Condition() string {
	return i.element.SelectAttrValue("Condition", "")
}

// SetCondition replaces the Condition attribute.
func (i *Import) SetCondition(value string) {
	i.element.CreateAttr("Condition", value)
	i.project.markModified()
}

// ErrorCheck is an <Error> task inside a target.
type ErrorCheck struct {
	project *Project
	element *etree.Element
}

// ErrorChecks returns the Error tasks nested in every target whose Name equals
// targetName exactly.
func (p *Project) ErrorChecks(targetName string) []*ErrorCheck {
	var checks []*ErrorCheck
	for _, target := range p.doc.Root().SelectElements("Target") {
		if target.SelectAttrValue("Name", "") != targetName {
			continue
		}
		for _, el := range errorTasks(target) {
			checks = append(checks, &ErrorCheck{project: p, element: el})
		}
	}
	return checks
}

func errorTasks(el *etree.Element) []*etree.Element {
	var found []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == "Error" {
			found = append(found, child)
			continue
		}
		found = append(found, errorTasks(child)...)
	}
	return found
}

// Condition returns the Condition attribute of the task.
func (e *ErrorCheck) Condition() string {
	return e.element.SelectAttrValue("Condition", "")
}

// SetCondition replaces the Condition attribute of the task.
func (e *ErrorCheck) SetCondition(value string) {
	e.element.CreateAttr("Condition", value)
	e.project.markModified()
}

// Text returns the Text parameter of the task.
func (e *ErrorCheck) Text() string {
	return e.element.SelectAttrValue("Text", "")
}

// SetText replaces the Text parameter of the task.
func (e *ErrorCheck) SetText(value string) {
	e.element.CreateAttr("Text", value)
	e.project.markModified()
}
