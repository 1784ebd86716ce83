package encounter

import "testing"

// TestSpawnLocationAccepts 测试出生点接受规则
func TestSpawnLocationAccepts(t *testing.T) {
	tests := []struct {
		name     string
		location SpawnLocation
		kind     string
		want     bool
	}{
		{"启用且无允许列表", SpawnLocation{Enabled: true}, "kong", true},
		{"启用且在允许列表中", SpawnLocation{Enabled: true, AllowedKinds: []string{"kong", "barrel"}}, "barrel", true},
		{"启用但不在允许列表中", SpawnLocation{Enabled: true, AllowedKinds: []string{"kong"}}, "barrel", false},
		{"禁用且无允许列表", SpawnLocation{Enabled: false}, "kong", false},
		{"禁用但在允许列表中", SpawnLocation{Enabled: false, AllowedKinds: []string{"kong"}}, "kong", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.location.Accepts(tt.kind); got != tt.want {
				t.Errorf("Accepts(%q) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

// TestSpawnLocationEmptyAllowListAcceptsEverything 空允许列表接受任意种类
func TestSpawnLocationEmptyAllowListAcceptsEverything(t *testing.T) {
	loc := SpawnLocation{Enabled: true, AllowedKinds: []string{}}
	for _, kind := range []string{"", "kong", "barrel", "ghost-of-donkey"} {
		if !loc.Accepts(kind) {
			t.Errorf("empty allow-list should accept %q", kind)
		}
	}
}

// TestFilterAccepting 测试过滤与回退
func TestFilterAccepting(t *testing.T) {
	a := SpawnLocation{Position: Position{X: 1}, Enabled: true, AllowedKinds: []string{"kong"}}
	b := SpawnLocation{Position: Position{X: 2}, Enabled: true, AllowedKinds: []string{"barrel"}}
	c := SpawnLocation{Position: Position{X: 3}, Enabled: false}
	all := []SpawnLocation{a, b, c}

	eligible := FilterAccepting(all, "barrel")
	if len(eligible) != 1 || eligible[0].Position.X != 2 {
		t.Errorf("Expected only location b, got %+v", eligible)
	}

	// 没有出生点接受 "ghost"，回退到全部出生点
	fallback := FilterAccepting(all, "ghost")
	if len(fallback) != len(all) {
		t.Errorf("Expected fallback to all %d locations, got %d", len(all), len(fallback))
	}
	t.Logf("✓ Fallback returns all locations when none accept the kind")
}

// TestPositionDistance 测试距离计算
func TestPositionDistance(t *testing.T) {
	d := Position{X: 0, Y: 0}.DistanceTo(Position{X: 3, Y: 4})
	if d != 5 {
		t.Errorf("DistanceTo = %v, want 5", d)
	}
}
