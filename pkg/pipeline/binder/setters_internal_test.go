package binder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tcs := map[string]jsonKind{
		`null`:    jsonNull,
		` true`:   jsonBool,
		`false`:   jsonBool,
		`"x"`:     jsonString,
		`[1]`:     jsonArray,
		`{}`:      jsonObject,
		`-1`:      jsonNumber,
		`0.5`:     jsonNumber,
		"":        jsonInvalid,
		`garbage`: jsonInvalid,
	}

	for raw, expected := range tcs {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, expected, kindOf(json.RawMessage(raw)))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	n, err := truncateInt(json.Number("9.99"))
	assert.NoError(t, err)
	assert.Equal(t, int64(9), n)

	_, err = truncateInt(json.Number("1e30"))
	assert.ErrorIs(t, err, ErrOutOfRange)

	u, err := truncateUint(json.Number("18446744073709551615"))
	assert.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), u)

	_, err = truncateUint(json.Number("-0.5e1"))
	assert.ErrorIs(t, err, ErrOutOfRange)
}
