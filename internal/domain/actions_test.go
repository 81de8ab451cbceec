package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"MOVE_PATH", ActionMovePath},
		{"move_path", ActionMovePath},
		{"Attack", ActionAttack},
		{"WAIT", ActionWait},
		{"END_TURN", ActionEndTurn},
		{"cancel_preview", ActionCancelPreview},
		{"MOVE", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		result := ParseAction(tt.input)
		if result != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionMovePath, "MOVE_PATH"},
		{ActionAttack, "ATTACK"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestActionType_Mutates(t *testing.T) {
	if ActionPreview.Mutates() || ActionCancelPreview.Mutates() || ActionInit.Mutates() {
		t.Error("preview and init must not be journaled")
	}
	if !ActionMovePath.Mutates() || !ActionWait.Mutates() {
		t.Error("move and wait must be journaled")
	}
}
