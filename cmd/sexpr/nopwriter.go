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

import "github.com/sexpr-go/sexpr/sexpr"

type nopwriter struct{}

// NewNopWriter returns a no-op sexpr writer.
func NewNopWriter() sexpr.Writer {
	return nopwriter{}
}

func (nopwriter) WriteNil() error {
	return nil
}

func (nopwriter) WriteBool(bool) error {
	return nil
}

func (nopwriter) WriteInt(int64) error {
	return nil
}

func (nopwriter) WriteUint(uint64) error {
	return nil
}

func (nopwriter) WriteFloat(float64) error {
	return nil
}

func (nopwriter) WriteString(string) error {
	return nil
}

func (nopwriter) WriteSymbol(string) error {
	return nil
}

func (nopwriter) WriteKeyword(string) error {
	return nil
}

func (nopwriter) BeginList() error {
	return nil
}

func (nopwriter) EndList() error {
	return nil
}

func (nopwriter) BeginPair() error {
	return nil
}

func (nopwriter) EndPair() error {
	return nil
}

func (nopwriter) Finish() error {
	return nil
}
