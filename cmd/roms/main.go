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

// Command roms is a command-line interface for post-processing ocean
// circulation model output.
package main

import (
	"fmt"
	"os"

	"github.com/coastalsim/roms/romsutil"
)

func main() {
	if err := romsutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
