// Copyright komastudios.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package loc

import "testing"

func TestArenaPushPop(t *testing.T) {
	a := NewArena()
	a.Push()

	x := Allocate(a, 42)
	if *x != 42 {
		t.Fatalf("got %d, want 42", *x)
	}

	a.Push()
	Allocate(a, "scratch")

	if a.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", a.Depth())
	}

	a.Pop()

	if a.Depth() != 1 {
		t.Fatalf("depth after pop = %d, want 1", a.Depth())
	}
	// Values allocated before the popped region must survive.
	if *x != 42 {
		t.Fatalf("surviving value corrupted: %d", *x)
	}

	a.PopAll()
	if a.Depth() != 0 {
		t.Fatalf("depth after pop-all = %d, want 0", a.Depth())
	}
}

func TestArenaPopWithoutPushPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic popping an empty arena")
		}
	}()

	NewArena().Pop()
}

func TestStringPoolInterns(t *testing.T) {
	pool := NewStringPool()

	a := pool.Intern("matrix_mvp")
	b := pool.Intern("matrix_mvp")

	if &a == &b {
		t.Fatal("comparing local variable addresses is meaningless")
	}
	if a != b {
		t.Fatalf("interned values differ: %q vs %q", a, b)
	}
	if pool.Len() != 1 {
		t.Fatalf("pool length = %d, want 1", pool.Len())
	}

	pool.Intern("vertex")
	if pool.Len() != 2 {
		t.Fatalf("pool length = %d, want 2", pool.Len())
	}
}
