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
	"testing"

	"github.com/sexpr-go/sexpr/sexpr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDialect(t *testing.T) {
	cfg, err := loadDialect("")
	require.NoError(t, err)
	assert.Equal(t, sexpr.Standard(), cfg)

	dir := t.TempDir()
	path := writeFile(t, dir, "d.yaml", "case_sensitive_atoms: true\npipe_action: base64\nmax_depth: 8\n")
	cfg, err = loadDialect(path)
	require.NoError(t, err)

	expected := sexpr.Standard()
	expected.CaseSensitiveAtoms = true
	expected.PipeAction = sexpr.PipeBase64Interior
	expected.MaxDepth = 8
	assert.Equal(t, expected, cfg)

	cfg, err = loadDialect(writeFile(t, dir, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, sexpr.Standard(), cfg)

	_, err = loadDialect(writeFile(t, dir, "typo.yaml", "semicomments: false\n"))
	assert.Error(t, err)

	_, err = loadDialect(writeFile(t, dir, "pipe.yaml", "pipe_action: sideways\n"))
	assert.Error(t, err)
}
