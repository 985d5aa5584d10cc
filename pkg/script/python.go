package script

// Python is the untyped scripting dialect. Its parameters carry no static
// types, so extraction always reports "no hint found" and injection leaves
// the source untouched. Capture falls back to converter-based inference
// for these scripts.
type Python struct{}

// Name implements Dialect.
func (Python) Name() string { return "python" }

// Typed implements Dialect.
func (Python) Typed() bool { return false }

// Extract implements Dialect. Python signatures declare no types.
func (Python) Extract(source, varName string) (string, bool) {
	return "", false
}

// Inject implements Dialect. A no-op for an untyped dialect.
func (Python) Inject(source string, inputs, outputs []TypeHint) string {
	return source
}
