package primitive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	birthday := time.Date(1988, 8, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   any
		to      KindEnum
		allowed CategoryEnum
		want    any
	}{
		{"identity", "x", KindString, CategoryNone, "x"},
		{"safe widen", int8(5), KindInt64, CategorySafeNumber, int64(5)},
		{"unsafe narrow", float64(42), KindInt, CategoryUnsafeNumber, 42},
		{"text to uint", " 7 ", KindUint16, CategoryTextNumber, uint16(7)},
		{"float to text", 2.5, KindString, CategoryTextNumber, "2.5"},
		{"int to bool", 0, KindBool, CategoryNumericBool, false},
		{"bool to int", true, KindInt8, CategoryNumericBool, int8(1)},
		{"yes to bool", "Yes", KindBool, CategoryTextualBool, true},
		{"bool to text", false, KindString, CategoryTextualBool, "false"},
		{"text to time", "1988-08-08T00:00:00Z", KindTime, CategoryDatetime, birthday},
		{"time to text", birthday, KindString, CategoryDatetime, "1988-08-08T00:00:00Z"},
		{"unix to time", int64(587001600), KindTime, CategoryTimestamp, birthday},
		{"time to unix", birthday, KindInt64, CategoryTimestamp, int64(587001600)},
		{"text to duration", "2h45m", KindDuration, CategoryDuration, 2*time.Hour + 45*time.Minute},
		{"nanos to duration", 1500, KindDuration, CategoryNanoseconds, 1500 * time.Nanosecond},
		{"duration to seconds", 90 * time.Second, KindFloat64, CategorySeconds, 90.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, tt.to, tt.allowed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	_, err := Convert("abc", KindInt, CategoryAll)
	require.ErrorIs(t, err, ErrConversion)

	_, err = Convert("1", KindInt, CategorySafeNumber)
	require.ErrorIs(t, err, ErrNotAllowed)

	_, err = Convert(struct{}{}, KindInt, CategoryAll)
	require.ErrorIs(t, err, ErrConversion)

	_, err = Convert("x", KindPrimitiveEnum, CategoryAll)
	require.ErrorIs(t, err, ErrConversion)

	_, err = Convert("maybe", KindBool, CategoryAll)
	require.ErrorIs(t, err, ErrConversion)
}

func TestCategories(t *testing.T) {
	c, unknown := ParseCategories("text_number", "Datetime", "bogus")
	assert.Equal(t, CategoryTextNumber|CategoryDatetime, c)
	assert.Equal(t, []string{"bogus"}, unknown)

	assert.True(t, c.Has(CategoryDatetime))
	assert.False(t, c.Has(CategoryDatetime|CategorySeconds))

	assert.Equal(t, CategorySafeNumber, CategoryOf(KindInt8, KindInt64))
	assert.Equal(t, CategoryUnsafeNumber, CategoryOf(KindInt64, KindInt8))
	assert.Equal(t, CategoryNone, CategoryOf(KindTime, KindBool))
	assert.True(t, CategoryAll.Allows(KindString, KindDuration))
	assert.False(t, CategoryNone.Allows(KindString, KindDuration))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind(" Int64 ")
	require.True(t, ok)
	assert.Equal(t, KindInt64, k)

	_, ok = ParseKind("complex128")
	assert.False(t, ok)

	assert.Equal(t, KindTime, Of(time.Time{}))
	assert.True(t, KindUint8.IsUnsigned())
	assert.Equal(t, 32, KindFloat32.Bits())
}
