package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LoadTOML_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	doc := `
[[rule.greeting.alt]]
handler = "greeting-done"
[[rule.greeting.alt.elements]]
kind = "class"
literal = true
[[rule.greeting.alt.elements]]
terminal = "identifier"
[[rule.greeting.alt.elements]]
token_kind = "integer-literal"
optional = true

[[rule.greeting.alt]]
[[rule.greeting.alt.elements]]
kind = "greeting-tail"
repeat = true
intermediate = true

[[rule.greeting-tail.alt]]
[[rule.greeting-tail.alt.elements]]
kind = "greeting"

[name]
greeting = "Greeting"
`

	tbl, err := LoadTOML(strings.NewReader(doc))
	if !assert.NoError(err) {
		return
	}

	if !assert.Len(tbl.Rules, 2) {
		return
	}

	greeting := tbl.Rules["greeting"]
	if !assert.Len(greeting.Alternatives, 2) {
		return
	}

	first := greeting.Alternatives[0]
	assert.Equal("greeting-done", first.Handler)
	if !assert.Len(first.Elements, 3) {
		return
	}
	assert.True(first.Elements[0].Literal)
	assert.Equal("class", first.Elements[0].Kind)
	assert.True(first.Elements[1].IsTerminal())
	assert.Equal("identifier", first.Elements[1].Terminal)
	assert.True(first.Elements[2].IsTokenKind())
	assert.True(first.Elements[2].Optional)

	second := greeting.Alternatives[1]
	if !assert.Len(second.Elements, 1) {
		return
	}
	assert.True(second.Elements[0].Repeat)
	assert.True(second.Elements[0].Intermediate)

	assert.Equal("Greeting", tbl.DisplayName("greeting"))
	assert.Equal("greeting-tail", tbl.DisplayName("greeting-tail"), "falls back to the key when no name override exists")
}

func Test_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		table     Table
		expectErr bool
	}{
		{
			name:  "empty table",
			table: Table{},
		},
		{
			name: "literal element needs no referenced rule",
			table: Table{Rules: map[string]Rule{
				"class-head": {Alternatives: []Alternative{
					{Elements: []Element{{Kind: "class", Literal: true}}},
				}},
			}},
		},
		{
			name: "terminal element needs no referenced rule",
			table: Table{Rules: map[string]Rule{
				"id-expression": {Alternatives: []Alternative{
					{Elements: []Element{{Terminal: "identifier"}}},
				}},
			}},
		},
		{
			name: "token_kind element needs no referenced rule",
			table: Table{Rules: map[string]Rule{
				"primary-expression": {Alternatives: []Alternative{
					{Elements: []Element{{TokenKind: "integer-literal"}}},
				}},
			}},
		},
		{
			name: "nonterminal reference to a defined rule",
			table: Table{Rules: map[string]Rule{
				"a": {Alternatives: []Alternative{{Elements: []Element{{Kind: "b"}}}}},
				"b": {Alternatives: []Alternative{{Elements: []Element{{Terminal: "identifier"}}}}},
			}},
		},
		{
			name: "nonterminal reference to an undefined rule",
			table: Table{Rules: map[string]Rule{
				"a": {Alternatives: []Alternative{{Elements: []Element{{Kind: "nonexistent"}}}}},
			}},
			expectErr: true,
		},
		{
			name: "element with no kind, literal, or terminal",
			table: Table{Rules: map[string]Rule{
				"a": {Alternatives: []Alternative{{Elements: []Element{{}}}}},
			}},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			err := tc.table.Validate()

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Builtin_IsValid(t *testing.T) {
	assert := assert.New(t)

	tbl := Builtin()

	assert.NoError(tbl.Validate(), "the embedded builtin.toml must validate cleanly -- Builtin itself panics otherwise")
	assert.NotEmpty(tbl.Rules)

	for _, want := range []string{
		"translation-unit", "simple-declaration", "decl-specifier",
		"class-specifier", "nested-name-specifier", "primary-expression",
	} {
		_, ok := tbl.Rules[want]
		assert.True(ok, "expected builtin.toml to define rule %q", want)
	}
}
