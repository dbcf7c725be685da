package diagnostic

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Error(t *testing.T) {
	t.Parallel()

	var d Diagnostics
	require.NoError(t, d.Error())

	d.AddWarning("duplicate_enum_value", "value 1 is already named A", "Numberz", "B")
	assert.False(t, d.HasErrors())
	require.NoError(t, d.Error())

	d.AddError("unknown_type", `unknown type "Xtract"`, "Insanity", "xtructs", "did you mean Xtruct?")
	d.AddError("empty_enum", "enum has no values", "Empty", "")

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		`[Insanity] xtructs: [unknown_type] unknown type "Xtract"; [Empty]: [empty_enum] enum has no values`,
		err.Error())
	assert.Equal(t, []string{"did you mean Xtruct?"}, errors.GetAllHints(err))
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	t.Parallel()

	var a, b Diagnostics

	a.AddWarning("w1", "first", "", "")
	b.AddError("e1", "second", "", "")
	b.AddWarning("w2", "third", "", "")

	a.Merge(b)

	all := a.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)
	assert.Equal(t, "[w1] first", all[1].String())
	assert.Equal(t, "warning", all[2].Severity.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(0).String())
}
