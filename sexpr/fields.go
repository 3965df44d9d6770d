/*
 * Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * A copy of the License is located at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * or in the "license" file accompanying this file. This file is distributed
 * on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package sexpr

import (
	"reflect"
	"strings"
	"sync"
)

// hint says which atom variant a Go string is written as.
type hint uint8

const (
	hintNone hint = iota
	hintSymbol
	hintKeyword
)

// A field is a reflectively-accessed field of a struct type.
type field struct {
	name      string
	typ       reflect.Type
	path      []int
	tagged    bool
	omitEmpty bool
	required  bool
	hint      hint
}

func (f *field) setopts(opts string) {
	for opts != "" {
		var o string

		i := strings.Index(opts, ",")
		if i >= 0 {
			o, opts = opts[:i], opts[i+1:]
		} else {
			o, opts = opts, ""
		}

		switch o {
		case "omitempty":
			f.omitEmpty = true
		case "required":
			f.required = true
		case "symbol":
			f.hint = hintSymbol
		case "keyword":
			f.hint = hintKeyword
		}
	}
}

// A fielder maps out the fields of a type.
type fielder struct {
	fields []field
}

var fieldCache sync.Map // map[reflect.Type][]field

// fieldsFor returns the fields of the given struct type.
func fieldsFor(t reflect.Type) []field {
	if fs, ok := fieldCache.Load(t); ok {
		return fs.([]field)
	}

	fldr := fielder{}
	fldr.inspect(t, nil)

	fs, _ := fieldCache.LoadOrStore(t, dominantFields(fldr.fields))
	return fs.([]field)
}

// inspect recursively inspects a type to determine all of its fields.
func (f *fielder) inspect(t reflect.Type, path []int) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !visible(&sf) {
			continue
		}

		tag := sf.Tag.Get("sexp")
		if tag == "-" {
			continue
		}
		name, opts := parseTag(tag)

		newpath := make([]int, len(path)+1)
		copy(newpath, path)
		newpath[len(path)] = i

		ft := sf.Type
		if ft.Name() == "" && ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}

		if name == "" && sf.Anonymous && ft.Kind() == reflect.Struct {
			// Dig in to the embedded struct.
			f.inspect(ft, newpath)
			continue
		}

		tagged := name != ""
		if !tagged {
			name = sf.Name
		}

		field := field{
			name:   name,
			typ:    ft,
			path:   newpath,
			tagged: tagged,
		}
		field.setopts(opts)

		f.fields = append(f.fields, field)
	}
}

// dominantFields drops fields hidden by another of the same name, the way
// encoding/json does: the shallowest field wins, then the tagged one. Fields
// left tied are all dropped.
func dominantFields(fields []field) []field {
	byName := map[string][]int{}
	for i := range fields {
		byName[fields[i].name] = append(byName[fields[i].name], i)
	}

	ret := make([]field, 0, len(fields))
	for i := range fields {
		if dominant(fields, byName[fields[i].name]) == i {
			ret = append(ret, fields[i])
		}
	}
	return ret
}

// dominant returns the index of the field that wins among idxs, or -1.
func dominant(fields []field, idxs []int) int {
	best, tie := idxs[0], false
	for _, i := range idxs[1:] {
		f, b := &fields[i], &fields[best]
		switch {
		case len(f.path) < len(b.path), len(f.path) == len(b.path) && f.tagged && !b.tagged:
			best, tie = i, false
		case len(f.path) == len(b.path) && f.tagged == b.tagged:
			tie = true
		}
	}
	if tie {
		return -1
	}
	return best
}

// visible returns true if the given StructField should show up in the output.
func visible(sf *reflect.StructField) bool {
	exported := sf.PkgPath == ""
	if sf.Anonymous {
		t := sf.Type
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t.Kind() == reflect.Struct {
			// Fields of embedded structs are visible even if the struct type itself is not.
			return true
		}
	}
	return exported
}

// parseTag parses a `sexp:"..."` field tag, returning the name and opts.
func parseTag(tag string) (string, string) {
	if idx := strings.Index(tag, ","); idx != -1 {
		return tag[:idx], tag[idx+1:]
	}
	return tag, ""
}

// findField returns the field with the given name, falling back to a
// case-insensitive match.
func findField(fields []field, name string) *field {
	var f *field
	for i := range fields {
		ff := &fields[i]
		if ff.name == name {
			return ff
		}
		if f == nil && strings.EqualFold(ff.name, name) {
			f = ff
		}
	}
	return f
}
