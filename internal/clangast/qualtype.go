package clangast

import (
	"strings"
	"unicode"

	"github.com/cmmoran/objc2hx/internal/model"
)

// Qualifiers that carry no structural meaning for the binding. clang prints
// them inside qualType strings ("NSString * _Nullable", "__kindof NSView *").
var droppedQualifiers = map[string]bool{
	"const":               true,
	"volatile":            true,
	"restrict":            true,
	"__restrict":          true,
	"_Nullable":           true,
	"_Nonnull":            true,
	"_Null_unspecified":   true,
	"_Nullable_result":    true,
	"__nullable":          true,
	"__nonnull":           true,
	"__null_unspecified":  true,
	"__strong":            true,
	"__weak":              true,
	"__unsafe_unretained": true,
	"__autoreleasing":     true,
	"__kindof":            true,
	"__block":             true,
	"oneway":              true,
}

// builtinKinds names clang's builtin type kinds by spelling.
var builtinKinds = map[string]string{
	"bool":               "Bool",
	"_Bool":              "Bool",
	"char":               "Char_S",
	"signed char":        "SChar",
	"unsigned char":      "UChar",
	"short":              "Short",
	"unsigned short":     "UShort",
	"int":                "Int",
	"unsigned":           "UInt",
	"unsigned int":       "UInt",
	"long":               "Long",
	"unsigned long":      "ULong",
	"long long":          "LongLong",
	"unsigned long long": "ULongLong",
	"__int128":           "Int128",
	"unsigned __int128":  "UInt128",
	"float":              "Float",
	"double":             "Double",
	"long double":        "LongDouble",
}

type token struct {
	text string
	word bool
}

// scope is what the qualType parser knows about the translation unit so far.
type scope struct {
	classes    map[string]bool
	typeParams map[string]bool
}

func newScope() *scope {
	return &scope{classes: make(map[string]bool)}
}

// ParseQualType parses a clang qualType spelling outside of a translation
// unit walk; classes lists the names to treat as Objective-C classes.
func ParseQualType(s string, classes ...string) *model.TypeExpr {
	sc := newScope()
	for _, c := range classes {
		sc.classes[c] = true
	}
	return sc.parse(s)
}

func (sc *scope) parse(s string) *model.TypeExpr {
	toks := normalize(tokenize(s))
	if len(toks) == 0 {
		return model.Other(strings.TrimSpace(s), model.KindOther.String())
	}
	return sc.parseTokens(toks)
}

func (sc *scope) parseTokens(toks []token) *model.TypeExpr {
	if len(toks) == 0 {
		return model.Other("", model.KindOther.String())
	}
	display := render(toks)
	last := toks[len(toks)-1].text

	switch last {
	case ")":
		return sc.parseFunctionLike(toks, display)

	case "]":
		open := matchBackward(toks, len(toks)-1, "[", "]")
		if open == len(toks)-2 {
			return model.Other(display, "IncompleteArray")
		}
		return model.Other(display, "ConstantArray")

	case "*":
		inner := toks[:len(toks)-1]
		if sc.isObjectType(inner) {
			return &model.TypeExpr{
				Kind:        model.KindObjectPointer,
				Pointee:     sc.parseObject(inner),
				DisplayName: display,
			}
		}
		return model.Other(display, "Pointer")

	case ">":
		open := matchBackward(toks, len(toks)-1, "<", ">")
		if open <= 0 {
			return model.Other(display, model.KindOther.String())
		}
		switch render(toks[:open]) {
		case "id":
			return &model.TypeExpr{
				Kind:        model.KindObjectPointer,
				Pointee:     model.Object(display, model.ID()),
				DisplayName: display,
			}
		case "Class":
			return &model.TypeExpr{
				Kind:        model.KindObjectPointer,
				Pointee:     model.Object(display, model.Other("Class", "ObjCClass")),
				DisplayName: display,
			}
		}
		return model.Other(display, model.KindOther.String())
	}

	for _, t := range toks {
		if !t.word {
			return model.Other(display, model.KindOther.String())
		}
	}

	switch display {
	case "void":
		return model.Void()
	case "id":
		return model.ID()
	case "SEL":
		return model.Selector()
	case "Class":
		return model.Other(display, "ObjCClass")
	}
	if kind, ok := builtinKinds[display]; ok {
		return model.Other(display, kind)
	}
	switch toks[0].text {
	case "struct", "union", "enum":
		return model.Other(display, "Elaborated")
	}
	if len(toks) == 1 {
		switch {
		case sc.typeParams[display]:
			return model.Other(display, "ObjCTypeParam")
		case sc.classes[display]:
			return model.Interface(display)
		}
		return model.Other(display, "Typedef")
	}
	return model.Other(display, model.KindOther.String())
}

// parseFunctionLike handles "R (PARAMS)", "R (^)(PARAMS)" and "R (*)(PARAMS)".
func (sc *scope) parseFunctionLike(toks []token, display string) *model.TypeExpr {
	open := matchBackward(toks, len(toks)-1, "(", ")")
	if open <= 0 {
		return model.Other(display, model.KindOther.String())
	}
	params := toks[open+1 : len(toks)-1]
	prefix := toks[:open]

	if prefix[len(prefix)-1].text != ")" {
		return functionType(params, display)
	}

	gOpen := matchBackward(prefix, len(prefix)-1, "(", ")")
	if gOpen <= 0 {
		return model.Other(display, model.KindOther.String())
	}
	group := prefix[gOpen+1 : len(prefix)-1]
	ret := prefix[:gOpen]
	fn := functionType(params, render(ret)+" ("+render(params)+")")

	switch {
	case len(group) == 1 && group[0].text == "^":
		return &model.TypeExpr{Kind: model.KindBlockPointer, Pointee: fn, DisplayName: display}
	case len(group) == 1 && group[0].text == "*":
		return model.Other(display, "Pointer")
	}
	return model.Other(display, model.KindOther.String())
}

func functionType(params []token, display string) *model.TypeExpr {
	if len(params) == 0 {
		return model.Other(display, "FunctionNoProto")
	}
	return &model.TypeExpr{Kind: model.KindFunctionProto, DisplayName: display}
}

// isObjectType reports whether toks spell an Objective-C class, optionally
// followed by type arguments or protocol qualifiers: "NSString",
// "NSArray<NSString *>", "NSView<NSAnimatablePropertyContainer>".
func (sc *scope) isObjectType(toks []token) bool {
	if len(toks) == 0 || !toks[0].word || !sc.classes[toks[0].text] {
		return false
	}
	i := 1
	for i < len(toks) {
		if toks[i].text != "<" {
			return false
		}
		end := matchForward(toks, i, "<", ">")
		if end < 0 {
			return false
		}
		i = end + 1
	}
	return true
}

// parseObject builds the pointee of an object pointer. toks already passed
// isObjectType.
func (sc *scope) parseObject(toks []token) *model.TypeExpr {
	name := toks[0].text
	if len(toks) == 1 {
		return model.Interface(name)
	}

	var args []*model.TypeExpr
	for i := 1; i < len(toks); {
		end := matchForward(toks, i, "<", ">")
		group := splitTopLevel(toks[i+1 : end])
		if !sc.isProtocolList(group) {
			for _, g := range group {
				args = append(args, sc.parseTokens(g))
			}
		}
		i = end + 1
	}
	return model.Object(render(toks), model.Interface(name), args...)
}

// isProtocolList reports whether a bracketed list names protocols rather than
// type arguments. Type arguments are always object types, so a bare
// identifier that is neither id, Class nor a type parameter is a protocol.
func (sc *scope) isProtocolList(group [][]token) bool {
	if len(group) == 0 {
		return false
	}
	for _, g := range group {
		if len(g) != 1 || !g[0].word {
			return false
		}
		switch n := g[0].text; {
		case n == "id", n == "Class", sc.typeParams[n]:
			return false
		}
	}
	return true
}

// -----------------------------------------------------------------------------
// Tokens
// -----------------------------------------------------------------------------

func tokenize(s string) []token {
	var out []token
	r := []rune(s)
	for i := 0; i < len(r); {
		c := r[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c):
			j := i + 1
			for j < len(r) && (r[j] == '_' || unicode.IsLetter(r[j]) || unicode.IsDigit(r[j])) {
				j++
			}
			out = append(out, token{text: string(r[i:j]), word: true})
			i = j
		case c == '.' && i+2 < len(r) && r[i+1] == '.' && r[i+2] == '.':
			out = append(out, token{text: "..."})
			i += 3
		default:
			out = append(out, token{text: string(c)})
			i++
		}
	}
	return out
}

// normalize drops qualifiers and __attribute__((...)) groups.
func normalize(toks []token) []token {
	out := make([]token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.word && droppedQualifiers[t.text] {
			continue
		}
		if t.word && t.text == "__attribute__" && i+1 < len(toks) && toks[i+1].text == "(" {
			if end := matchForward(toks, i+1, "(", ")"); end > 0 {
				i = end
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// render spells tokens the way clang does: "NSArray<NSString *> *",
// "void (^)(BOOL, NSError *)".
func render(toks []token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 && needsSpace(toks[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.text)
	}
	return b.String()
}

func needsSpace(prev, cur token) bool {
	switch {
	case prev.word && cur.word:
		return true
	case prev.text == ",":
		return true
	case cur.text == "*":
		return prev.word || prev.text == ">"
	case cur.text == "(" || cur.text == "[":
		return prev.word || prev.text == "*" || prev.text == ">"
	case cur.word || cur.text == "...":
		return prev.text == "*" || prev.text == ">"
	}
	return false
}

// matchForward returns the index of the bracket closing toks[open], or -1.
func matchForward(toks []token, open int, o, c string) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].text {
		case o:
			depth++
		case c:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func matchBackward(toks []token, end int, o, c string) int {
	depth := 0
	for i := end; i >= 0; i-- {
		switch toks[i].text {
		case c:
			depth++
		case o:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits toks on commas outside any bracket pair.
func splitTopLevel(toks []token) [][]token {
	if len(toks) == 0 {
		return nil
	}
	var (
		out   [][]token
		depth int
		start int
	)
	for i, t := range toks {
		switch t.text {
		case "(", "<", "[":
			depth++
		case ")", ">", "]":
			depth--
		case ",":
			if depth == 0 {
				out = append(out, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(out, toks[start:])
}
