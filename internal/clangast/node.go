package clangast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cmmoran/objc2hx/internal/model"
)

var ErrNotTranslationUnit = errors.New("clang AST does not start with a translation unit object")

// node mirrors the subset of clang's -ast-dump=json output the translator reads.
type node struct {
	Kind       string          `json:"kind"`
	Name       string          `json:"name"`
	IsImplicit bool            `json:"isImplicit"`
	Instance   *bool           `json:"instance"`
	ReturnType *qualType       `json:"returnType"`
	Type       *qualType       `json:"type"`
	Super      json.RawMessage `json:"super"`
	Inner      []*node         `json:"inner"`
}

type qualType struct {
	QualType string `json:"qualType"`
}

// Decode reads a clang JSON AST dump and converts it into a declaration
// tree. The top-level declarations are decoded one at a time so only the
// converted tree stays in memory.
func Decode(r io.Reader) (*model.Decl, error) {
	return newConverter().decode(r)
}

type converter struct {
	sc *scope

	// classes whose @interface has been converted
	defined map[string]bool
}

func newConverter() *converter {
	return &converter{sc: newScope(), defined: make(map[string]bool)}
}

func (c *converter) decode(r io.Reader) (*model.Decl, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	root := &model.Decl{Kind: model.DeclTranslationUnit}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		key, _ := tok.(string)

		switch key {
		case "kind":
			var kind string
			if err = dec.Decode(&kind); err != nil {
				return nil, fmt.Errorf("read kind: %w", err)
			}
			if kind != "TranslationUnitDecl" {
				return nil, fmt.Errorf("%w: got %q", ErrNotTranslationUnit, kind)
			}

		case "inner":
			if err = expectDelim(dec, '['); err != nil {
				return nil, err
			}
			for dec.More() {
				var n node
				if err = dec.Decode(&n); err != nil {
					return nil, fmt.Errorf("decode top-level declaration %d: %w", len(root.Children), err)
				}
				if d := c.convertTopLevel(&n); d != nil {
					root.Children = append(root.Children, d)
				}
			}
			if err = expectDelim(dec, ']'); err != nil {
				return nil, err
			}

		default:
			var skip json.RawMessage
			if err = dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("skip %s: %w", key, err)
			}
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return root, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty input", ErrNotTranslationUnit)
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrNotTranslationUnit, want, tok)
	}
	return nil
}

// convertTopLevel returns nil for implicit declarations, which are not part
// of the header as written.
func (c *converter) convertTopLevel(n *node) *model.Decl {
	if n.IsImplicit {
		return nil
	}

	switch n.Kind {
	case "ObjCInterfaceDecl":
		c.sc.classes[n.Name] = true
		if !c.isDefinition(n) {
			// @class forward reference
			return &model.Decl{Kind: model.DeclOther, Name: n.Name}
		}
		c.defined[n.Name] = true
		return c.convertInterface(n)

	case "ObjCProtocolDecl":
		return &model.Decl{Kind: model.DeclProtocol, Name: n.Name}

	case "RecordDecl", "CXXRecordDecl":
		return &model.Decl{Kind: model.DeclRecord, Name: n.Name}
	}

	return &model.Decl{Kind: model.DeclOther, Name: n.Name}
}

// isDefinition separates "@interface Foo : Bar ... @end" from "@class Foo;".
// Type parameter declarations alone ("@class NSArray<ObjectType>;") are not
// members. clang fills "super" on every redeclaration once the class is
// defined, so a memberless redeclaration of a defined class is a forward
// reference even with a superclass.
func (c *converter) isDefinition(n *node) bool {
	if n.hasMembers() {
		return true
	}
	if c.defined[n.Name] {
		return false
	}
	return len(n.Super) > 0 && !bytes.Equal(bytes.TrimSpace(n.Super), []byte("null"))
}

func (n *node) hasMembers() bool {
	for _, in := range n.Inner {
		if in != nil && in.Kind != "ObjCTypeParamDecl" {
			return true
		}
	}
	return false
}

func (c *converter) convertInterface(n *node) *model.Decl {
	c.sc.typeParams = make(map[string]bool)
	defer func() { c.sc.typeParams = nil }()

	for _, in := range n.Inner {
		if in != nil && in.Kind == "ObjCTypeParamDecl" {
			c.sc.typeParams[in.Name] = true
		}
	}

	d := &model.Decl{
		Kind:     model.DeclInterface,
		Name:     n.Name,
		Children: make([]*model.Decl, 0, len(n.Inner)),
	}
	for _, in := range n.Inner {
		if in == nil || in.IsImplicit {
			continue
		}
		switch in.Kind {
		case "ObjCMethodDecl":
			d.Children = append(d.Children, c.convertMethod(in))
		case "ObjCPropertyDecl":
			d.Children = append(d.Children, &model.Decl{Kind: model.DeclProperty, Name: in.Name})
		default:
			d.Children = append(d.Children, &model.Decl{Kind: model.DeclOther, Name: in.Name})
		}
	}
	return d
}

func (c *converter) convertMethod(n *node) *model.Decl {
	d := &model.Decl{
		Kind:      model.DeclInstanceMethod,
		Name:      n.Name,
		Arguments: make([]*model.Param, 0, len(n.Inner)),
	}
	if n.Instance != nil && !*n.Instance {
		d.Kind = model.DeclClassMethod
	}
	if n.ReturnType != nil && n.ReturnType.QualType != "" {
		d.ResultType = c.sc.parse(n.ReturnType.QualType)
	}
	for _, in := range n.Inner {
		if in == nil || in.Kind != "ParmVarDecl" {
			continue
		}
		p := &model.Param{Name: in.Name}
		if in.Type != nil && in.Type.QualType != "" {
			p.Type = c.sc.parse(in.Type.QualType)
		}
		d.Arguments = append(d.Arguments, p)
	}
	return d
}
