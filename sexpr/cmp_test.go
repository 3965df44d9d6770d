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
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sexpComparer compares trees structurally, so cmp never looks inside a Sexp.
var sexpComparer = cmp.Comparer(func(a, b *Sexp) bool {
	return a.Equal(b)
})

// assertSexpEqual fails the test if the trees differ, showing both in text form.
func assertSexpEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !cmp.Equal(expected, actual, sexpComparer) {
		t.Errorf("trees differ (-expected +actual):\n%v", cmp.Diff(display(expected), display(actual)))
	}
}

func display(v interface{}) interface{} {
	switch v := v.(type) {
	case *Sexp:
		if v == nil {
			return "<nil>"
		}
		return v.String()
	case []*Sexp:
		strs := make([]string, len(v))
		for i, s := range v {
			strs[i] = display(s).(string)
		}
		return strs
	}
	return v
}

func sym(text string) *Sexp {
	return NewSymbol(text)
}

func str(text string) *Sexp {
	return NewString(text)
}

func num(i int64) *Sexp {
	return NewInt(i)
}
