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

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer

	cmd := getRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.sexp", sample)
	bad := writeFile(t, dir, "bad.sexp", "(a b")

	_, err := runRoot(t, "check", good)
	assert.NoError(t, err)

	_, err = runRoot(t, "check", good, bad)
	assert.EqualError(t, err, "1 of 2 input(s) failed to parse")
}

func TestCheckDump(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.sexp", "(a . 1)")

	out, err := runRoot(t, "check", "--dump", in)
	require.NoError(t, err)
	assert.Contains(t, out, "sexpr.Sexp")
}

func TestCheckDialect(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.sexp", "|abc")

	_, err := runRoot(t, "check", in)
	require.NoError(t, err)

	// Quoted pipes must be closed.
	dialect := writeFile(t, dir, "dialect.yaml", "pipe_action: quote\n")
	_, err = runRoot(t, "--dialect", dialect, "check", in)
	assert.EqualError(t, err, "1 of 1 input(s) failed to parse")

	_, err = runRoot(t, "--dialect", filepath.Join(dir, "missing.yaml"), "check", in)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "(version")
}
