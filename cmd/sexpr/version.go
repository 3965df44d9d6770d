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
	"io"
	"time"

	"github.com/sexpr-go/sexpr/internal"
	"github.com/sexpr-go/sexpr/sexpr"
	"github.com/spf13/cobra"
)

// getVersionCmd returns the definition of the version command.
func getVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information about this tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cmd.OutOrStdout())
		},
	}
}

// versioninfo describes this build of the tool.
type versioninfo struct {
	Version   string `sexp:"version"`
	BuildTime string `sexp:"build_time"`
}

// printVersion prints the version info for this tool as an S-expression.
func printVersion(out io.Writer) error {
	info := versioninfo{
		Version:   internal.GitCommit,
		BuildTime: "unknown-buildtime",
	}
	if t, err := time.Parse(time.RFC3339, internal.BuildTime); err == nil {
		info.BuildTime = t.UTC().Format(time.RFC3339)
	}

	w := sexpr.NewTextWriterOpts(out, sexpr.TextWriterPretty)
	if err := sexpr.MarshalTo(w, info); err != nil {
		return err
	}
	return w.Finish()
}
