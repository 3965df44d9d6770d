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

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sexpr-go/sexpr/sexpr"
	"github.com/spf13/cobra"
)

type checkEnv struct {
	root *rootEnv
	dump bool
}

func getCheckCmd(root *rootEnv) *cobra.Command {
	env := &checkEnv{root: root}

	ret := &cobra.Command{
		Use:     "check [files]",
		Aliases: []string{"c"},
		Short:   "Check that files parse",
		Long: `Parses the given files (stdin when none are given) and reports the
number of values in each. Exits non-zero if any file fails to parse.`,
		RunE: env.runCheckCmd,
	}

	ret.Flags().BoolVarP(&env.dump, "dump", "d", false, "dump each parsed tree")
	return ret
}

func (c *checkEnv) runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadDialect(c.root.dialect)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}

	failed := 0
	for _, in := range args {
		n, err := c.checkFile(cmd.OutOrStdout(), in, cfg)
		if err != nil {
			failed++
			log.WithField("input", in).Error(err)
			continue
		}
		log.WithField("input", in).Infof("%d value(s) OK", n)
	}

	if failed > 0 {
		return errors.Errorf("%d of %d input(s) failed to parse", failed, len(args))
	}
	return nil
}

func (c *checkEnv) checkFile(out io.Writer, in string, cfg sexpr.ParseConfig) (int, error) {
	f, err := OpenInput(in)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	p := sexpr.NewParser(f, cfg)
	n := 0
	for {
		v, err := p.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, errors.Wrapf(err, "value %d", n+1)
		}
		n++
		if c.dump {
			spew.Fdump(out, v)
		}
	}
}
