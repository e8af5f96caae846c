package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHeader(t *testing.T) {
	reserved := []string{"id", "категория", "наименование", "цена"}

	tests := []struct {
		name   string
		header []string
		rules  []string
		fatal  bool
	}{
		{"valid", []string{"id", "категория", "наименование", "цена"}, nil, false},
		{"empty", nil, []string{RuleEmptyHeader}, true},
		{"blank column", []string{"id", " ", "цена"}, []string{RuleBlankColumn}, false},
		{"trailing delimiter", []string{"id", "категория", "наименование", "цена", ""}, []string{RuleBlankColumn}, false},
		{"repeated reserved name", []string{"id", "цена", "цена"}, []string{RuleDuplicateColumn}, true},
		{"repeated extra name", []string{"id", "цвет", "цвет"}, []string{RuleDuplicateColumn}, false},
		{"several", []string{"id", "", "id", ""}, []string{RuleBlankColumn, RuleDuplicateColumn, RuleBlankColumn}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateHeader(tt.header, 1, reserved...)

			var rules []string
			for _, e := range errs {
				rules = append(rules, e.Rule)
			}
			assert.Equal(t, tt.rules, rules)
			assert.Equal(t, tt.fatal, HasFatal(errs))
		})
	}
}

func TestValidateHeaderWithoutReserved(t *testing.T) {
	errs := ValidateHeader([]string{"id", "id"}, 1)
	require.Len(t, errs, 1)
	assert.False(t, errs[0].IsFatal())
}

func TestValidateHeaderDetails(t *testing.T) {
	errs := ValidateHeader([]string{"id", "цена", "цена"}, 3, "цена")
	require.Len(t, errs, 1)

	e := errs[0]
	assert.Equal(t, 2, e.Column)
	assert.Equal(t, "цена", e.Field)
	assert.Equal(t, `[ERROR] row 3, column 3: column "цена" repeats column 2`, e.Error())
}

func TestCheckRow(t *testing.T) {
	assert.Nil(t, CheckRow([]string{"1", "Root"}, 0, 2))

	for _, row := range [][]string{{}, {""}, {"  ", "Root"}} {
		w := CheckRow(row, 0, 7)
		require.NotNil(t, w)
		assert.False(t, w.IsFatal())
		assert.Equal(t, RuleMissingID, w.Rule)
		assert.Equal(t, 7, w.RowNumber)
	}

	assert.False(t, HasFatal([]*ValidationError{CheckRow(nil, 0, 1)}))
}

func TestFormatErrors(t *testing.T) {
	errs := []*ValidationError{
		{Severity: SeverityError, Rule: RuleEmptyHeader, Column: -1, RowNumber: 1, Message: "header row has no columns"},
		{Severity: SeverityWarning, Rule: RuleMissingID, Column: 0, RowNumber: 4, Message: "row has no identifier"},
	}

	assert.Equal(t,
		"[ERROR] row 1: header row has no columns\n[WARNING] row 4, column 1: row has no identifier",
		FormatErrors(errs))
	assert.Equal(t, "", FormatErrors(nil))
}
