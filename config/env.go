// Copyright (c) DevOps Wiz
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strconv"
	"strings"
)

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envReader wraps a lookup and collects parse failures as it goes.
type envReader struct {
	lookup LookupFunc
	errs   []ValidationError
}

// readString returns the trimmed value, treating unset and empty the same.
func (r *envReader) readString(env string) string {
	if r.lookup == nil || env == "" {
		return ""
	}
	v, ok := r.lookup(env)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

func (r *envReader) readStringDefault(env, def string) string {
	if v := r.readString(env); v != "" {
		return v
	}
	return def
}

// readListDefault splits a comma separated value, dropping blank items.
func (r *envReader) readListDefault(env string, def []string) []string {
	raw := r.readString(env)
	if raw == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func (r *envReader) readIntDefault(env string, def int) int {
	raw := r.readString(env)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, ValidationError{
			Field:   env,
			Summary: "Invalid Integer Configuration.",
			Detail:  fmt.Sprintf("%s must be an integer; got %q", env, raw),
		})
		return def
	}
	return n
}

// mapLookup adapts a dotenv map into a LookupFunc.
func mapLookup(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

// chainLookup returns the first non-empty value across lookups, in order.
func chainLookup(lookups ...LookupFunc) LookupFunc {
	return func(k string) (string, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if v, ok := l(k); ok && strings.TrimSpace(v) != "" {
				return v, true
			}
		}
		return "", false
	}
}
