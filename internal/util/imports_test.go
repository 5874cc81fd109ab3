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
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// TestImportOrder checks that every run of adjacent import lines in the
// module is sorted by path, the way gofmt leaves it.
func TestImportOrder(t *testing.T) {
	root := filepath.Join("..", "..")

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}

		for i := 1; i < len(file.Imports); i++ {
			prev, curr := file.Imports[i-1], file.Imports[i]
			if fset.Position(curr.Pos()).Line != fset.Position(prev.Pos()).Line+1 {
				continue
			}

			a, _ := strconv.Unquote(prev.Path.Value)
			b, _ := strconv.Unquote(curr.Path.Value)
			if a > b {
				t.Errorf("%s: import %q comes before %q", path, a, b)
			}
		}

		return nil
	})

	if err != nil {
		t.Fatal(err)
	}
}
