// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"time"

	"github.com/briandowns/spinner"
)

const spinCharSet = 31

var spin = spinner.New(spinner.CharSets[spinCharSet], 100*time.Millisecond)

// StartSpinner starts the ~working~ spinner with the given message.
func StartSpinner(message string) {
	spin.Suffix = " " + message
	spin.Start()
}

// PauseSpinner stops the ~working~ spinner and clears its line.
func PauseSpinner() {
	spin.Stop()
}
