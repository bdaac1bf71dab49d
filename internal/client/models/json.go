package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// idOf returns "_id" when present, otherwise "id".
func idOf(r gjson.Result) string {
	if v := r.Get("_id"); v.Exists() && v.Type != gjson.Null {
		return v.String()
	}
	return r.Get("id").String()
}

// firstString returns the first present, non-null path as a string.
func firstString(r gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.Type != gjson.Null {
			return v.String()
		}
	}
	return ""
}

// intOf reads a number or a numeric string. ok is false for anything else.
func intOf(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		if math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
			return 0, false
		}
		return int(v.Num), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}

// arrayOf returns the elements of a top-level JSON array; anything else,
// including invalid JSON, yields nil.
func arrayOf(raw []byte) []gjson.Result {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	r := gjson.ParseBytes(raw)
	if !r.IsArray() {
		return nil
	}
	return r.Array()
}
