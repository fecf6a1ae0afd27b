package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grepDefs builds the group definitions used by most validator tests.
func grepDefs() map[string]GroupDef {
	return map[string]GroupDef{
		"OPTIONS": {Flags: []FlagDef{
			{Template: "*-i*", Description: "Case insensitive"},
			{Template: "*-A* _NUM_", Description: "Lines after match", Expect: "number"},
		}},
		"PATTERN": {Expect: "string"},
		"PATH":    {Expect: "path"},
	}
}

func TestNew_ValidDefinition(t *testing.T) {
	tmpl, err := New("grep [_OPTIONS_] _PATTERN_ _PATH_", "Search files", grepDefs())
	require.NoError(t, err)

	assert.Equal(t, []string{"OPTIONS", "PATTERN", "PATH"}, tmpl.GroupOrder())

	opts, ok := tmpl.Group("OPTIONS")
	require.True(t, ok)
	assert.Equal(t, GroupFlags, opts.Kind)
	assert.True(t, opts.Optional, "OPTIONS sits inside brackets")
	require.Len(t, opts.Flags, 2)
	assert.False(t, opts.Flags[0].TakesValue())
	require.True(t, opts.Flags[1].TakesValue())
	assert.Equal(t, ValueNumber, *opts.Flags[1].Expect)
	assert.Equal(t, "NUM", opts.Flags[1].ArgName)

	pattern, ok := tmpl.Group("PATTERN")
	require.True(t, ok)
	assert.Equal(t, GroupValue, pattern.Kind)
	assert.Equal(t, ValueString, pattern.Expect)
	assert.False(t, pattern.Optional)
}

func TestNew_DefinitionErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		defs    map[string]GroupDef
		wantErr string
	}{
		{
			"placeholder without group",
			"grep _PATTERN_",
			map[string]GroupDef{},
			"has no group definition",
		},
		{
			"group never referenced",
			"grep _PATTERN_",
			map[string]GroupDef{
				"PATTERN": {Expect: "string"},
				"EXTRA":   {Expect: "string"},
			},
			"never referenced",
		},
		{
			"duplicate placeholder",
			"cp _PATH_ _PATH_",
			map[string]GroupDef{"PATH": {Expect: "path"}},
			"appears more than once",
		},
		{
			"unmatched bracket",
			"grep [_OPTIONS_ _P_",
			grepDefs(),
			"unclosed '['",
		},
		{
			"both expect and flags",
			"x _G_",
			map[string]GroupDef{"G": {Expect: "string", Flags: []FlagDef{{Template: "-a"}}}},
			"both expect and flags",
		},
		{
			"neither expect nor flags",
			"x _G_",
			map[string]GroupDef{"G": {}},
			"neither expect nor flags",
		},
		{
			"multiple on value group",
			"x _G_",
			map[string]GroupDef{"G": {Expect: "string", Multiple: true}},
			"multiple applies to flags",
		},
		{
			"unknown value type",
			"x _G_",
			map[string]GroupDef{"G": {Expect: "boolean"}},
			"unknown value type",
		},
		{
			"flag with two slots",
			"x _G_",
			map[string]GroupDef{"G": {Flags: []FlagDef{{Template: "-o _A_ _B_", Expect: "string"}}}},
			"more than one argument slot",
		},
		{
			"flag slot without expect",
			"x _G_",
			map[string]GroupDef{"G": {Flags: []FlagDef{{Template: "-o _A_"}}}},
			"declares no expect type",
		},
		{
			"flag with unknown expect",
			"x _G_",
			map[string]GroupDef{"G": {Flags: []FlagDef{{Template: "-o _A_", Expect: "float"}}}},
			"unknown value type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.raw, "", tt.defs)
			require.Error(t, err)

			var derr *DefinitionError
			require.True(t, errors.As(err, &derr), "expected a DefinitionError, got %T", err)
			assert.Contains(t, derr.Error(), tt.wantErr)
			assert.Equal(t, tt.raw, derr.Template)
		})
	}
}

func TestNew_ImplicitArgSlot(t *testing.T) {
	// Expect without an embedded slot prompts for a value that renders
	// after the prefix.
	tmpl, err := New("sleep _DURATION_", "", map[string]GroupDef{
		"DURATION": {Flags: []FlagDef{{Template: "*--seconds*", Expect: "number"}}},
	})
	require.NoError(t, err)

	g, _ := tmpl.Group("DURATION")
	require.Len(t, g.Flags, 1)
	assert.True(t, g.Flags[0].TakesValue())
	assert.Empty(t, g.Flags[0].ArgName)
}

func TestNew_NestedOptionalMarksGroups(t *testing.T) {
	tmpl, err := New("find _PATH_ [-name _NAME_ [-maxdepth _DEPTH_]]", "", map[string]GroupDef{
		"PATH":  {Expect: "path"},
		"NAME":  {Expect: "string"},
		"DEPTH": {Expect: "number"},
	})
	require.NoError(t, err)

	path, _ := tmpl.Group("PATH")
	assert.False(t, path.Optional)
	name, _ := tmpl.Group("NAME")
	assert.True(t, name.Optional)
	depth, _ := tmpl.Group("DEPTH")
	assert.True(t, depth.Optional, "nesting keeps inner groups optional")
}

func TestValueType_Validate(t *testing.T) {
	tests := []struct {
		name  string
		vt    ValueType
		input string
		valid bool
	}{
		{"number accepts digits", ValueNumber, "42", true},
		{"number accepts negative", ValueNumber, "-1", true},
		{"number rejects letters", ValueNumber, "abc", false},
		{"number rejects mixed", ValueNumber, "4x2", false},
		{"number rejects empty", ValueNumber, "", false},
		{"number rejects bare minus", ValueNumber, "-", false},
		{"number rejects decimal point", ValueNumber, "4.2", false},
		{"path accepts anything non-empty", ValuePath, "./src", true},
		{"path accepts spaces", ValuePath, "My Documents", true},
		{"path rejects empty", ValuePath, "", false},
		{"string accepts anything", ValueString, "a b c", true},
		{"string accepts empty", ValueString, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vt.Validate(tt.input)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)

			var verr *InputValidationError
			require.True(t, errors.As(err, &verr), "expected an InputValidationError")
			assert.Equal(t, tt.input, verr.Input)
			assert.NotEmpty(t, verr.Hint, "re-prompts need a hint")
		})
	}
}

func TestParseValueType(t *testing.T) {
	for spelling, want := range map[string]ValueType{
		"string": ValueString, "Number": ValueNumber, "PATH": ValuePath,
	} {
		got, err := ParseValueType(spelling)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseValueType("url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid: string, number, path")
}
