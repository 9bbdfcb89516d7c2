package query

import (
	"encoding/json"
	"strings"

	"recordbase/models"

	"github.com/tidwall/gjson"
)

// Match reports whether the record's fields satisfy every condition.
// Field names are gjson paths, so nested values ("address.city") work.
// A condition on an absent field never matches.
func (q *Query) Match(rec *models.Record) (bool, error) {
	raw, err := json.Marshal(rec.Fields)
	if err != nil {
		return false, err
	}

	for _, cond := range q.conds {
		res := gjson.GetBytes(raw, cond.field)
		if !res.Exists() {
			return false, nil
		}
		if !matches(res, cond.op, cond.value) {
			return false, nil
		}
	}

	return true, nil
}

func matches(res gjson.Result, op Op, operand interface{}) bool {
	switch op {
	case OpEq:
		return equal(res, operand)
	case OpNe:
		return !equal(res, operand)
	case OpContains:
		want, ok := operand.(string)
		return ok && res.Type == gjson.String && strings.Contains(res.Str, want)
	case OpGt, OpGte, OpLt, OpLte:
		return ordered(res, op, operand)
	}
	return false
}

func equal(res gjson.Result, operand interface{}) bool {
	switch want := operand.(type) {
	case string:
		return res.Type == gjson.String && res.Str == want
	case bool:
		return (res.Type == gjson.True || res.Type == gjson.False) && res.Bool() == want
	case float64:
		return res.Type == gjson.Number && res.Num == want
	case int:
		return res.Type == gjson.Number && res.Num == float64(want)
	case int64:
		return res.Type == gjson.Number && res.Num == float64(want)
	case nil:
		return res.Type == gjson.Null
	}
	return false
}

// ordered compares numbers numerically and strings lexicographically;
// mixed types never match.
func ordered(res gjson.Result, op Op, operand interface{}) bool {
	var cmp int
	switch want := operand.(type) {
	case float64, int, int64:
		if res.Type != gjson.Number {
			return false
		}
		n := toFloat(want)
		switch {
		case res.Num < n:
			cmp = -1
		case res.Num > n:
			cmp = 1
		}
	case string:
		if res.Type != gjson.String {
			return false
		}
		cmp = strings.Compare(res.Str, want)
	default:
		return false
	}

	switch op {
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	}
	return false
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
