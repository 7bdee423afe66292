// Package fix composes the fixes attached to a file's diagnostics into a
// single, conflict-free rewrite of its source text (§4.6).
package fix

import (
	"sort"

	"github.com/DonIsaac/zlint-sub002/internal/diagnostic"
)

// Mode selects which FixKinds the fixer keeps.
type Mode int

const (
	// ModeSafe keeps only FixSafe fixes (plain --fix).
	ModeSafe Mode = iota
	// ModeDangerous keeps FixSafe and FixSuggestion fixes (--fix-dangerously).
	ModeDangerous
)

// Result is the outcome of applying the fixer to one file's diagnostics.
type Result struct {
	// Source is the rewritten text. Equal to the input when DidFix is
	// false.
	Source []byte
	// DidFix reports whether any fix was actually applied.
	DidFix bool
}

// Apply composes the non-noop fixes attached to diags whose kind
// matches mode into a single rewrite of text, following the algorithm
// in §4.6:
//
//  1. filter to fixes matching mode
//  2. sort by (span.start, span.end)
//  3. drop conflicting fixes, earlier-starting wins, ties broken by
//     longer span first; two conflicting Dangerous fixes are both dropped
//  4. for nested fixes, keep the outer fix and drop the inner one; when
//     the outer replacement contains the inner fix's span text, the inner
//     replacement is substituted into it there
//  5. apply right-to-left so earlier offsets stay valid
//
// Applying it to its own output with no diagnostics returns that output
// unchanged. Applying the same diagnostics a second time edits the same
// byte offsets again: spans are not checked against the text they once
// covered.
func Apply(text []byte, diags []diagnostic.Diagnostic, mode Mode) Result {
	fixes := collect(diags, mode)
	if len(fixes) == 0 {
		return Result{Source: text, DidFix: false}
	}

	sort.Slice(fixes, func(i, j int) bool {
		if fixes[i].Span.Start != fixes[j].Span.Start {
			return fixes[i].Span.Start < fixes[j].Span.Start
		}
		return fixes[i].Span.End < fixes[j].Span.End
	})

	fixes = resolveConflicts(fixes)
	fixes = resolveNesting(fixes, text)

	if len(fixes) == 0 {
		return Result{Source: text, DidFix: false}
	}

	out := make([]byte, len(text))
	copy(out, text)
	for i := len(fixes) - 1; i >= 0; i-- {
		f := fixes[i]
		rewritten := make([]byte, 0, len(out)-int(f.Span.Len())+len(f.Replacement))
		rewritten = append(rewritten, out[:f.Span.Start]...)
		rewritten = append(rewritten, []byte(f.Replacement)...)
		rewritten = append(rewritten, out[f.Span.End:]...)
		out = rewritten
	}
	return Result{Source: out, DidFix: true}
}

// collect filters diags to the fixes mode keeps, discarding no-ops.
func collect(diags []diagnostic.Diagnostic, mode Mode) []diagnostic.Fix {
	var out []diagnostic.Fix
	for _, d := range diags {
		if d.Fix == nil || d.Fix.IsNoop() {
			continue
		}
		f := *d.Fix
		switch mode {
		case ModeSafe:
			if f.Kind != diagnostic.FixSafe {
				continue
			}
		case ModeDangerous:
			if f.Kind != diagnostic.FixSafe && f.Kind != diagnostic.FixSuggestion {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}

// conflicts reports whether a and b cannot both be applied. Any partial
// overlap is a conflict; replacement text is not compared for it.
// Identical spans conflict only when their replacements differ. A span
// nested strictly inside the other is not a conflict here; resolveNesting
// handles it.
func conflicts(a, b diagnostic.Fix) bool {
	if !a.Span.Overlaps(b.Span) {
		return false
	}
	if a.Span.Contains(b.Span) || b.Span.Contains(a.Span) || a.Span == b.Span {
		return a.Span == b.Span && a.Replacement != b.Replacement
	}
	return true
}

// resolveConflicts drops the later/shorter fix from every conflicting
// pair, per §4.6 step 3: earlier start wins, ties broken by longer
// span first. When both fixes of a conflicting pair are Dangerous,
// neither is kept. fixes must already be sorted by (start, end).
func resolveConflicts(fixes []diagnostic.Fix) []diagnostic.Fix {
	kept := make([]bool, len(fixes))
	for i := range kept {
		kept[i] = true
	}
	for i := 0; i < len(fixes); i++ {
		if !kept[i] {
			continue
		}
		for j := i + 1; j < len(fixes); j++ {
			if !kept[j] {
				continue
			}
			if !conflicts(fixes[i], fixes[j]) {
				continue
			}
			if fixes[i].Dangerous && fixes[j].Dangerous {
				kept[i] = false
				kept[j] = false
				break
			}
			// fixes[i] starts no later than fixes[j] (sort order); drop j
			// unless equal starts where j is strictly longer.
			if fixes[i].Span.Start == fixes[j].Span.Start && fixes[j].Span.Len() > fixes[i].Span.Len() {
				kept[i] = false
				break
			}
			kept[j] = false
		}
	}
	out := make([]diagnostic.Fix, 0, len(fixes))
	for i, k := range kept {
		if k {
			out = append(out, fixes[i])
		}
	}
	return out
}

// resolveNesting handles the case where one surviving fix's span
// contains another's (§4.6 step 4): the outer fix is always kept and the
// inner fix always dropped. When the outer replacement literally contains
// the inner fix's span text, the inner replacement is substituted for it.
// fixes is sorted by (start, end).
func resolveNesting(fixes []diagnostic.Fix, text []byte) []diagnostic.Fix {
	drop := make([]bool, len(fixes))
	for i := range fixes {
		outer := &fixes[i]
		for j, inner := range fixes {
			if i == j || drop[j] {
				continue
			}
			if !outer.Span.Contains(inner.Span) {
				continue
			}
			// The inner fix's own span text no longer exists once the
			// outer fix applies, so it can never be applied
			// independently; it always drops. If the outer's
			// replacement happens to still contain that literal text,
			// fold the inner's edit into the outer's replacement so the
			// net effect is preserved instead of silently losing it.
			innerText := inner.Span.Snippet(text)
			if innerText != "" {
				if idx := indexOf(outer.Replacement, innerText); idx >= 0 {
					outer.Replacement = outer.Replacement[:idx] + inner.Replacement + outer.Replacement[idx+len(innerText):]
				}
			}
			drop[j] = true
		}
	}
	out := make([]diagnostic.Fix, 0, len(fixes))
	for i, f := range fixes {
		if !drop[i] {
			out = append(out, f)
		}
	}
	return out
}

func indexOf(haystack, needle string) int {
	n, m := len(haystack), len(needle)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if haystack[i:i+m] == needle {
			return i
		}
	}
	return -1
}
