package betcalc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fouxth/Bookielocal/models"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		raw  string
		cat  models.Category
		want []string
	}{
		{"123", models.Cat3Top, []string{"123"}},
		{"321", models.Cat3Down, []string{"321"}},
		{"45", models.Cat2Top, []string{"45"}},
		{"54", models.Cat2Down, []string{"54"}},
		{"123", models.Cat3Tod, []string{"123", "132", "213", "231", "312", "321"}},
		{"321", models.Cat3Back, []string{"123", "132", "213", "231", "312", "321"}},
		{"112", models.Cat3Tod, []string{"112", "121", "211"}},
		{"919", models.Cat3Back, []string{"199", "919", "991"}},
		{"777", models.Cat3Tod, []string{"777"}},
		{"45", models.Cat2Tod, []string{"45", "54"}},
		{"90", models.Cat2Back, []string{"09", "90"}},
		{"33", models.Cat2Tod, []string{"33"}},
		{"007", models.Cat3Tod, []string{"007", "070", "700"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.cat, tt.raw), func(t *testing.T) {
			got, err := Expand(tt.raw, tt.cat)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_ValidationErrors(t *testing.T) {
	_, err := Expand("12a", models.Cat3Top)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = Expand("", models.Cat2Top)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = Expand("1234", models.Cat3Tod)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Expand("12", models.Cat3Top)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Expand("12", models.Category("4top"))
	assert.ErrorIs(t, err, ErrUnknownCategory)

	var inputErr *InputError
	_, err = Expand("1x", models.Cat2Down)
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "1x", inputErr.Raw)
	assert.True(t, IsValidation(err))
}

func TestExpansionCount_MatchesExpand(t *testing.T) {
	for _, cat := range models.Categories {
		limit := 1000
		if cat.DigitLength() == 2 {
			limit = 100
		}
		for n := 0; n < limit; n++ {
			raw := fmt.Sprintf("%0*d", cat.DigitLength(), n)
			combos, err := Expand(raw, cat)
			require.NoError(t, err)
			count, err := ExpansionCount(raw, cat)
			require.NoError(t, err)
			if count != len(combos) {
				t.Fatalf("%s %s: count %d, expand %d", cat, raw, count, len(combos))
			}
		}
	}
}

func TestExpand_MembershipAndIdempotence(t *testing.T) {
	for _, cat := range []models.Category{models.Cat3Tod, models.Cat3Back, models.Cat2Tod, models.Cat2Back} {
		for _, raw := range []string{"123", "112", "000", "12", "11", "09"} {
			if len(raw) != cat.DigitLength() {
				continue
			}
			first, err := Expand(raw, cat)
			require.NoError(t, err)
			second, err := Expand(raw, cat)
			require.NoError(t, err)
			assert.Equal(t, first, second)
			assert.Contains(t, first, raw)
			for _, c := range first {
				assert.NoError(t, Validate(c, cat))
			}
		}
	}
}

func TestExpansionCount_Cardinality(t *testing.T) {
	cases := map[string]int{"123": 6, "112": 3, "121": 3, "999": 1}
	for raw, want := range cases {
		got, err := ExpansionCount(raw, models.Cat3Tod)
		require.NoError(t, err)
		assert.Equal(t, want, got, raw)
	}
	got, err := ExpansionCount("12", models.Cat2Back)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	_, err = ExpansionCount("1", models.Cat2Back)
	assert.ErrorIs(t, err, ErrInvalidLength)
}
