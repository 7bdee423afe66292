package directive

import "github.com/DonIsaac/zlint-sub002/internal/source"

// Filter answers isDisabled queries for one file's directives. It is
// built once per file and shared read-only across every rule's
// dispatch, matching LintContext's per-file, single-threaded lifetime.
type Filter struct {
	src     *source.Source
	globals []Directive
	byLine  map[int][]Directive
}

// NewFilter partitions ds into the globals slice and a line-indexed map
// for O(1) line lookups during dispatch.
func NewFilter(src *source.Source, ds []Directive) *Filter {
	f := &Filter{src: src, byLine: map[int][]Directive{}}
	for _, d := range ds {
		if d.Kind == Global {
			f.globals = append(f.globals, d)
		} else {
			f.byLine[d.TargetLine] = append(f.byLine[d.TargetLine], d)
		}
	}
	return f
}

// IsDisabled reports whether rule is suppressed at the given byte
// offset: either by a global directive anywhere in the file, or by a
// line directive whose target line contains offset.
func (f *Filter) IsDisabled(rule string, offset uint32) bool {
	for _, d := range f.globals {
		if d.Disables(rule) {
			return true
		}
	}
	line := f.src.Position(offset).Line
	for _, d := range f.byLine[line] {
		if d.Disables(rule) {
			return true
		}
	}
	return false
}
