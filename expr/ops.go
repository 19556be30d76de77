package expr

import (
	"fmt"
	"math"
)

func binary(op string, left, right any) (any, error) {
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok && op == "+" {
			return ls + rs, nil
		}
		return nil, fmt.Errorf("%w: %T %s %T", ErrType, left, op, right)
	}

	li, lInt := asInt(left)
	ri, rInt := asInt(right)
	if lInt && rInt {
		return intOp(op, li, ri)
	}

	lf, lok := asFloat(left)
	rf, rok := asFloat(right)
	if !lok || !rok {
		return nil, fmt.Errorf("%w: %T %s %T", ErrType, left, op, right)
	}
	return floatOp(op, lf, rf)
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	if f, ok := v.(float64); ok {
		return f, true
	}
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

func intOp(op string, l, r int64) (any, error) {
	switch op {
	case "+":
		if sum := l + r; (sum > l) == (r > 0) {
			return sum, nil
		}
	case "-":
		if diff := l - r; (diff < l) == (r > 0) {
			return diff, nil
		}
	case "*":
		if product, ok := mulInt(l, r); ok {
			return product, nil
		}
	case "/":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return float64(l) / float64(r), nil
	case "//":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		if l == math.MinInt64 && r == -1 {
			break
		}
		q := l / r
		if (l%r != 0) && ((l < 0) != (r < 0)) {
			q--
		}
		return q, nil
	case "%":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		m := l % r
		if m != 0 && ((m < 0) != (r < 0)) {
			m += r
		}
		return m, nil
	case "**":
		if r < 0 || r > 62 {
			return math.Pow(float64(l), float64(r)), nil
		}
		result := int64(1)
		for range r {
			var ok bool
			if result, ok = mulInt(result, l); !ok {
				return math.Pow(float64(l), float64(r)), nil
			}
		}
		return result, nil
	default:
		return nil, fmt.Errorf("%w: operator %s", ErrSyntax, op)
	}
	// Results outside the int64 range continue as floats.
	return floatOp(op, float64(l), float64(r))
}

// mulInt multiplies l and r, reporting false when the product overflows.
func mulInt(l, r int64) (int64, bool) {
	if l == 0 || r == 0 {
		return 0, true
	}
	product := l * r
	if product/r != l || (l == -1 && r == math.MinInt64) || (r == -1 && l == math.MinInt64) {
		return 0, false
	}
	return product, true
}

func floatOp(op string, l, r float64) (any, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return l / r, nil
	case "//":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		return math.Floor(l / r), nil
	case "%":
		if r == 0 {
			return nil, ErrDivisionByZero
		}
		m := math.Mod(l, r)
		if m != 0 && ((m < 0) != (r < 0)) {
			m += r
		}
		return m, nil
	case "**":
		return math.Pow(l, r), nil
	}
	return nil, fmt.Errorf("%w: operator %s", ErrSyntax, op)
}
