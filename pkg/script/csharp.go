package script

import "strings"

// CSharp is the statically typed scripting dialect. The entry point is a
// RunScript method whose formal-parameter list declares input types, with
// a leading by-reference qualifier ("ref" or "out") marking outputs.
type CSharp struct{}

// Name implements Dialect.
func (CSharp) Name() string { return "csharp" }

// Typed implements Dialect.
func (CSharp) Typed() bool { return true }

// entryPoint is the name of the script entry-point method.
const entryPoint = "RunScript"

// param is one parsed parameter fragment.
type param struct {
	qualifier string // "ref" or "out" for outputs, "" for inputs
	typ       string // declared type text, may be empty
	name      string // variable name with any "@" marker stripped
	raw       string // original name token, marker included
}

// Extract implements Dialect. It returns the declared type for the
// parameter whose variable name equals varName (raw or sanitized form).
func (CSharp) Extract(source, varName string) (string, bool) {
	list, _, _, ok := findParamList(source)
	if !ok {
		return "", false
	}

	sanitized := Sanitize(varName)
	for _, frag := range splitParams(list) {
		p, ok := parseParam(frag)
		if !ok {
			continue
		}
		if p.name == varName || p.name == sanitized {
			if p.typ == "" {
				return "", false
			}
			return p.typ, true
		}
	}
	return "", false
}

// Inject implements Dialect. It rebuilds the parameter list in original
// order, substituting the supplied hints positionally: parameters with a
// by-reference qualifier consume output hints, the rest consume input
// hints. Non-empty hint types replace the declared type; empty hints
// preserve it. Only the signature substring is replaced.
func (CSharp) Inject(source string, inputs, outputs []TypeHint) string {
	list, open, close, ok := findParamList(source)
	if !ok {
		return source
	}

	frags := splitParams(list)
	rebuilt := make([]string, 0, len(frags))
	in, out := 0, 0
	for _, frag := range frags {
		p, ok := parseParam(frag)
		if !ok {
			// Unexpected shape: keep the fragment untouched.
			rebuilt = append(rebuilt, strings.TrimSpace(frag))
			continue
		}

		var hint TypeHint
		if p.qualifier != "" {
			if out < len(outputs) {
				hint = outputs[out]
			}
			out++
		} else {
			if in < len(inputs) {
				hint = inputs[in]
			}
			in++
		}

		typ := p.typ
		if hint.Type != "" {
			typ = hint.Type
		}

		var b strings.Builder
		if p.qualifier != "" {
			b.WriteString(p.qualifier)
			b.WriteByte(' ')
		}
		if typ != "" {
			b.WriteString(typ)
			b.WriteByte(' ')
		}
		b.WriteString(p.raw)
		rebuilt = append(rebuilt, b.String())
	}

	return source[:open] + strings.Join(rebuilt, ", ") + source[close:]
}

// findParamList locates the entry-point signature and returns the
// parameter-list substring along with its start and end offsets in source.
// The scan matches parentheses by depth so nested calls inside default
// values do not cut the list short.
func findParamList(source string) (list string, open, close int, ok bool) {
	at := strings.Index(source, entryPoint)
	if at < 0 {
		return "", 0, 0, false
	}

	i := at + len(entryPoint)
	for i < len(source) && (source[i] == ' ' || source[i] == '\t') {
		i++
	}
	if i >= len(source) || source[i] != '(' {
		return "", 0, 0, false
	}

	depth := 0
	for j := i; j < len(source); j++ {
		switch source[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return source[i+1 : j], i + 1, j, true
			}
		}
	}
	return "", 0, 0, false
}

// splitParams splits a parameter list on commas while tracking the nesting
// depth of angle-bracket generic markers and parentheses, so a parameter
// like "Dictionary<string, Curve> table" stays in one piece.
func splitParams(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}

	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, list[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, list[start:])
	return out
}

// parseParam splits one fragment into qualifier, type, and variable name.
// The last whitespace-separated token is the name; everything before it,
// minus a leading "ref"/"out", is the type.
func parseParam(frag string) (param, bool) {
	fields := strings.Fields(frag)
	if len(fields) == 0 {
		return param{}, false
	}

	var p param
	if fields[0] == "ref" || fields[0] == "out" {
		p.qualifier = fields[0]
		fields = fields[1:]
		if len(fields) == 0 {
			return param{}, false
		}
	}

	p.raw = fields[len(fields)-1]
	p.name = strings.TrimPrefix(p.raw, "@")
	p.typ = strings.Join(fields[:len(fields)-1], " ")
	return p, true
}
