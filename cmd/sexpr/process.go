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
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/sexpr-go/sexpr/sexpr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type processEnv struct {
	root   *rootEnv
	outf   string
	errf   string
	format string
}

func getProcessCmd(root *rootEnv) *cobra.Command {
	env := &processEnv{root: root}

	ret := &cobra.Command{
		Use:     "process [files]",
		Aliases: []string{"p"},
		Short:   "Re-write S-expressions in another format",
		Long: `Reads the given files (stdin when none are given) and re-writes every
top-level value in the chosen output format. Errors are written to the error
report as S-expressions.`,
		RunE: env.runProcessCmd,
	}

	ret.Flags().StringVarP(&env.outf, "output", "o", "", "output file (default stdout)")
	ret.Flags().StringVarP(&env.format, "output-format", "f", "pretty", "output format: text, pretty, json, yaml or none")
	ret.Flags().StringVarP(&env.errf, "error-report", "e", "", "error report file (default stderr)")
	return ret
}

func (e *processEnv) runProcessCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadDialect(e.root.dialect)
	if err != nil {
		return err
	}

	p := &processor{
		infs:   args,
		outf:   e.outf,
		errf:   e.errf,
		format: e.format,
		cfg:    cfg,
	}
	return p.run()
}

// A sink receives every top-level value that is read.
type sink interface {
	write(v *sexpr.Sexp) error
	finish() error
}

type writerSink struct {
	w sexpr.Writer
}

func (s writerSink) write(v *sexpr.Sexp) error {
	return v.MarshalSexp(s.w)
}

func (s writerSink) finish() error {
	return s.w.Finish()
}

// jsonSink writes one JSON document per line.
type jsonSink struct {
	enc *json.Encoder
	dec sexpr.Decoder
}

func (s *jsonSink) write(v *sexpr.Sexp) error {
	val, err := s.dec.DecodeValue(v)
	if err != nil {
		return err
	}
	return s.enc.Encode(val)
}

func (s *jsonSink) finish() error {
	return nil
}

// yamlSink writes a stream of YAML documents.
type yamlSink struct {
	enc *yaml.Encoder
	dec sexpr.Decoder
}

func (s *yamlSink) write(v *sexpr.Sexp) error {
	val, err := s.dec.DecodeValue(v)
	if err != nil {
		return err
	}
	return s.enc.Encode(val)
}

func (s *yamlSink) finish() error {
	return s.enc.Close()
}

func newSink(format string, out io.Writer) (sink, error) {
	switch format {
	case "", "pretty":
		return writerSink{sexpr.NewTextWriterOpts(out, sexpr.TextWriterPretty)}, nil
	case "text":
		return writerSink{sexpr.NewTextWriter(out)}, nil
	case "none":
		return writerSink{NewNopWriter()}, nil
	case "json":
		return &jsonSink{enc: json.NewEncoder(out)}, nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		return &yamlSink{enc: enc}, nil
	default:
		return nil, errors.Errorf("unrecognized output format %q", format)
	}
}

type processor struct {
	infs []string
	outf string
	errf string

	format string
	cfg    sexpr.ParseConfig

	out sink
	err *ErrorReport
	loc string
	idx int
}

func (p *processor) run() (err error) {
	outf, err := OpenOutput(p.outf)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := outf.Close(); err == nil {
			err = cerr
		}
	}()

	p.out, err = newSink(p.format, outf)
	if err != nil {
		return err
	}

	errf, err := OpenError(p.errf)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := errf.Close(); err == nil {
			err = cerr
		}
	}()

	p.err = NewErrorReport(errf)

	if len(p.infs) == 0 {
		p.processFile("-")
	} else {
		for _, inf := range p.infs {
			p.processFile(inf)
		}
	}

	if ferr := p.out.finish(); ferr != nil {
		p.error(write, ferr)
	}
	if ferr := p.err.Finish(); ferr != nil {
		return ferr
	}

	if n := p.err.Len(); n > 0 {
		return errors.Errorf("%d error(s) while processing", n)
	}
	return nil
}

func (p *processor) processFile(in string) {
	p.loc = in
	p.idx = 0
	if in == "-" {
		p.loc = "stdin"
	}

	f, err := OpenInput(in)
	if err != nil {
		p.error(read, err)
		return
	}
	defer f.Close()

	log.WithField("input", p.loc).Debug("processing")
	p.process(sexpr.NewParser(f, p.cfg))
}

func (p *processor) process(in *sexpr.Parser) {
	for {
		v, err := in.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			// The parser's errors are sticky, so the rest of the input is lost.
			p.error(read, err)
			return
		}

		p.idx++
		log.WithFields(logrus.Fields{
			"input": p.loc,
			"index": p.idx,
		}).Debugf("read a %v", v.Type())

		if err := p.out.write(v); err != nil {
			p.error(write, err)
		}
	}
}

func (p *processor) error(typ errortype, err error) {
	log.WithFields(logrus.Fields{
		"input": p.loc,
		"index": p.idx,
	}).Warnf("%v error: %v", typ, err)

	if rerr := p.err.Append(typ, err, p.loc, p.idx); rerr != nil {
		log.Errorf("writing error report: %v", rerr)
	}
}
