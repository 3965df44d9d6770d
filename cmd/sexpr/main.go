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

// Command sexpr reads, checks and re-writes S-expression files.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// log is the command's logger; it always writes to stderr so that it never
// mixes with values written to stdout.
var log = logrus.New()

// rootEnv holds the flags shared by every command.
type rootEnv struct {
	verbose bool
	dialect string
}

// main is the main entry point for sexpr.
func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// getRootCmd returns the root command with every subcommand attached.
func getRootCmd() *cobra.Command {
	env := &rootEnv{}

	ret := &cobra.Command{
		Use:   "sexpr",
		Short: "Read, check and re-write S-expressions",
		Long: `
sexpr reads S-expression files in a configurable dialect. It can re-write
their contents as text, indented text, JSON or YAML, or just check that they
parse.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			if env.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	ret.PersistentFlags().BoolVarP(&env.verbose, "verbose", "v", false, "Log what is being done")
	ret.PersistentFlags().StringVar(&env.dialect, "dialect", "", "YAML file describing the dialect to parse")

	ret.AddCommand(
		getProcessCmd(env),
		getCheckCmd(env),
		getVersionCmd(),
	)
	return ret
}
