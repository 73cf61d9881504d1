/*
Copyright © 2024 the ROMS Tools authors.
This file is part of ROMS Tools.

ROMS Tools is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ROMS Tools is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ROMS Tools.  If not, see <http://www.gnu.org/licenses/>.
*/

package romsutil

import (
	"math"
	"reflect"
	"testing"

	"github.com/ctessum/sparse"
)

func TestParseScale(t *testing.T) {
	got, err := parseScale("0.76, 1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []float64{0.76, 1}) {
		t.Errorf("want [0.76 1] but have %v", got)
	}

	if _, err := parseScale("0.76, x"); err == nil {
		t.Error("want error for a non-numeric scale")
	}
}

func TestCountNaN(t *testing.T) {
	a := sparse.ZerosDense(4)
	a.Elements[1] = math.NaN()
	a.Elements[3] = math.NaN()
	if n := countNaN(a); n != 2 {
		t.Errorf("want 2 but have %d", n)
	}
}

func TestDefaultConfig(t *testing.T) {
	if n := Cfg.GetInt("cachesize"); n != 100 {
		t.Errorf("want default cache size 100 but have %d", n)
	}
	if p := Cfg.GetString("points"); p != "rho" {
		t.Errorf("want default point type rho but have %q", p)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"depths": false, "isoslice": false, "nearest": false}
	for _, cmd := range Root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %s not registered", name)
		}
	}
}
