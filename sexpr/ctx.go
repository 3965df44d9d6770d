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

// ctx is the current writer context.
type ctx uint8

const (
	ctxAtTopLevel ctx = iota
	ctxInList
	ctxInPair
)

func (c ctx) String() string {
	switch c {
	case ctxInList:
		return "list"
	case ctxInPair:
		return "pair"
	default:
		return "top level"
	}
}

// A frame is one open container and the number of values written into it.
type frame struct {
	ctx ctx
	n   int
}

// ctxstack is a context stack.
type ctxstack struct {
	arr []frame
}

// peek returns the current context.
func (c *ctxstack) peek() ctx {
	if len(c.arr) == 0 {
		return ctxAtTopLevel
	}
	return c.arr[len(c.arr)-1].ctx
}

// count returns the number of values written into the current container.
func (c *ctxstack) count() int {
	if len(c.arr) == 0 {
		return 0
	}
	return c.arr[len(c.arr)-1].n
}

// incr records a value written into the current container.
func (c *ctxstack) incr() {
	if len(c.arr) > 0 {
		c.arr[len(c.arr)-1].n++
	}
}

// depth returns the number of open containers.
func (c *ctxstack) depth() int {
	return len(c.arr)
}

// push pushes a new context onto the stack.
func (c *ctxstack) push(ctx ctx) {
	c.arr = append(c.arr, frame{ctx: ctx})
}

// pop pops the top context off the stack.
func (c *ctxstack) pop() {
	if len(c.arr) == 0 {
		panic("pop called at top level")
	}
	c.arr = c.arr[:len(c.arr)-1]
}
