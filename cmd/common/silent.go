// Copyright 2016 The Citar Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"fmt"
	"os"
)

// Warn prints a warning to stderr, unless silent is set. Fatal
// errors always go through ExitIfError instead, regardless of
// silent.
func Warn(silent bool, format string, args ...interface{}) {
	if silent {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
