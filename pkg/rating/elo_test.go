// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

package rating

import (
	"math"
	"testing"
)

func TestExpected(t *testing.T) {
	tests := []struct {
		a, b int
		want float64
	}{
		{1200, 1200, 0.5},
		{1600, 1200, 1 / (1 + math.Pow(10, -1))},
		{1200, 1600, 1 / (1 + math.Pow(10, 1))},
	}

	for _, tt := range tests {
		if got := Expected(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Expected(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}

	if sum := Expected(1500, 1300) + Expected(1300, 1500); math.Abs(sum-1) > 1e-9 {
		t.Errorf("expected scores sum to %v, want 1", sum)
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name         string
		a, b         int
		score        float64
		wantA, wantB int
	}{
		{"equal win", 1200, 1200, 1, 1216, 1184},
		{"equal draw", 1200, 1200, 0.5, 1200, 1200},
		{"equal loss", 1200, 1200, 0, 1184, 1216},
		{"upset", 1200, 1600, 1, 1229, 1571},
		{"expected win", 1600, 1200, 1, 1603, 1197},
		{"draw against stronger", 1400, 1600, 0.5, 1408, 1592},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotA, gotB := Update(tt.a, tt.b, tt.score, KFactor)
			if gotA != tt.wantA || gotB != tt.wantB {
				t.Errorf("Update(%d, %d, %v) = (%d, %d), want (%d, %d)",
					tt.a, tt.b, tt.score, gotA, gotB, tt.wantA, tt.wantB)
			}

			if gotA+gotB != tt.a+tt.b {
				t.Errorf("rating points not conserved: %d + %d != %d + %d", gotA, gotB, tt.a, tt.b)
			}
		})
	}
}

func TestPerformance(t *testing.T) {
	if lo, mu, hi := Performance(0, 0, 0); lo != 0 || mu != 0 || hi != 0 {
		t.Errorf("Performance(0, 0, 0) = (%v, %v, %v), want zeros", lo, mu, hi)
	}

	lo, mu, hi := Performance(6, 2, 2)
	if !(lo < mu && mu < hi) {
		t.Errorf("Performance(6, 2, 2) bounds out of order: (%v, %v, %v)", lo, mu, hi)
	}

	if mu <= 0 {
		t.Errorf("Performance(6, 2, 2) mu = %v, want positive", mu)
	}

	if _, mu, _ := Performance(3, 4, 3); math.Abs(mu) > 1e-9 {
		t.Errorf("Performance(3, 4, 3) mu = %v, want 0", mu)
	}
}
