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
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sexpr-go/sexpr/sexpr"
	"gopkg.in/yaml.v3"
)

// loadDialect returns the Standard dialect overridden by the settings in the
// YAML file at path, if any. Unknown settings are an error.
//
//	case_sensitive_atoms: true
//	pipe_action: base64
//	max_depth: 64
func loadDialect(path string) (sexpr.ParseConfig, error) {
	cfg := sexpr.Standard()
	if path == "" {
		return cfg, nil
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading dialect")
	}

	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, errors.Wrapf(err, "parsing dialect %v", path)
	}

	log.Debugf("dialect %v: %+v", path, cfg)
	return cfg, nil
}
