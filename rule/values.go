package rule

import (
	"fmt"
	"reflect"

	"github.com/samber/lo"
)

// In accepts values deeply equal to one of allowed.
func In(allowed ...any) Validator {
	return Func("in", fmt.Sprintf("must be one of %v", allowed), func(value any) bool {
		return lo.ContainsBy(allowed, func(a any) bool {
			return reflect.DeepEqual(a, value)
		})
	})
}

// Between accepts numbers in [minVal, maxVal].
func Between(minVal, maxVal float64) Validator {
	return Func("between", fmt.Sprintf("must be between %g and %g", minVal, maxVal), func(value any) bool {
		n, ok := toFloat(value)
		return ok && n >= minVal && n <= maxVal
	})
}
