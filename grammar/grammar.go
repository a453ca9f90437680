// Package grammar holds the external, data-driven grammar table that
// package parser's generic backtracking driver interprets. Building the
// code-generator that would turn a full ISO C++ grammar into a concrete list
// of matching procedures is explicitly out of scope (see the package doc for
// package parser); this package instead lets the grammar be supplied as
// plain data, re-targeting internal/tunascript/grammar.go's Rule/Production
// representation from "build an LL/LR parse table" to "interpret directly."
package grammar

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Element is one symbol inside an Alternative: either a reference to another
// rule (Kind names a Table.Rules key), a literal token spelling to match
// exactly (Literal == true, Kind holds the spelling, e.g. "::" or "class"),
// or a hand-coded terminal (Terminal names one of the matchers registered in
// package parser: "identifier", "typedef-name", "class-name",
// "template-name", "original-namespace-name", "right-shift",
// "right-shift-assign", "trivially-balanced-token", "overloadable-operator").
type Element struct {
	Kind     string `toml:"kind"`
	Literal  bool   `toml:"literal"`
	Terminal string `toml:"terminal"`

	// TokenKind, when non-empty, matches any token whose lexical Kind's
	// String() equals this value (e.g. "integer-literal"), regardless of
	// spelling -- for the lexical-literal leaves that carry no
	// context-sensitive ambiguity of their own.
	TokenKind string `toml:"token_kind"`

	Optional     bool   `toml:"optional"`
	Repeat       bool   `toml:"repeat"`
	Intermediate bool   `toml:"intermediate"`
	Handler      string `toml:"handler"`
}

// IsTerminal reports whether e refers to a hand-coded terminal matcher
// rather than a nonterminal or literal spelling.
func (e Element) IsTerminal() bool {
	return e.Terminal != ""
}

// IsTokenKind reports whether e matches any token of a given lexical kind.
func (e Element) IsTokenKind() bool {
	return e.TokenKind != ""
}

// Alternative is one production: an ordered sequence of Elements, all of
// which must match in order (subject to their own Optional/Repeat flags) for
// the alternative to succeed.
type Alternative struct {
	Elements []Element `toml:"elements"`

	// Handler, when non-empty, names a post-match handler (section 4.5 of
	// the grammar this table encodes) run once this alternative's node has
	// fully matched.
	Handler string `toml:"handler"`
}

// Rule is the full set of alternatives for one nonterminal kind. The
// backtracking driver tries them in order and commits to the first that
// matches.
type Rule struct {
	Alternatives []Alternative `toml:"alt"`
}

// Table is the whole grammar: every nonterminal kind mapped to its Rule.
type Table struct {
	Rules map[string]Rule `toml:"rule"`

	// Names optionally overrides the rendered label for a kind (defaults to
	// the Rules key itself); spec.md section 6 calls these out as a
	// "parallel array" of display names.
	Names map[string]string `toml:"name"`
}

// LoadTOML parses a TOML document into a Table.
func LoadTOML(r io.Reader) (Table, error) {
	var t Table
	if _, err := toml.NewDecoder(r).Decode(&t); err != nil {
		return Table{}, fmt.Errorf("grammar: decode TOML: %w", err)
	}
	return t, nil
}

// DisplayName returns the rendering name for kind: the Names override if
// present, else kind itself.
func (t Table) DisplayName(kind string) string {
	if name, ok := t.Names[kind]; ok {
		return name
	}
	return kind
}

// Validate checks internal consistency: every nonterminal Element reference
// (Literal == false, Terminal == "") must name a rule actually present in
// the table.
func (t Table) Validate() error {
	for ruleName, rule := range t.Rules {
		for altIdx, alt := range rule.Alternatives {
			for elemIdx, elem := range alt.Elements {
				if elem.Literal || elem.IsTerminal() || elem.IsTokenKind() {
					continue
				}
				if elem.Kind == "" {
					return fmt.Errorf("grammar: rule %q alternative %d element %d has no kind, literal, or terminal", ruleName, altIdx, elemIdx)
				}
				if _, ok := t.Rules[elem.Kind]; !ok {
					return fmt.Errorf("grammar: rule %q alternative %d element %d references undefined nonterminal %q", ruleName, altIdx, elemIdx, elem.Kind)
				}
			}
		}
	}
	return nil
}
