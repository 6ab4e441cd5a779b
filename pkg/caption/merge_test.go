package caption

import "testing"

func TestMerge(t *testing.T) {
	hinted := ParseHint("3-100x200-60")

	t.Run("caller position beats hint", func(t *testing.T) {
		got := Merge(Params{FontSize: 40, Position: PositionText("bottom-right")}, hinted)
		if got.Position != PositionText("bottom-right") {
			t.Errorf("position = %v", got.Position)
		}
		if got.FontSize != 60 {
			t.Errorf("size = %d, want hinted 60", got.FontSize)
		}
	})

	t.Run("hint fills missing position", func(t *testing.T) {
		got := Merge(Params{FontSize: 40}, hinted)
		if FormatPosition(got.Position) != "100,200" {
			t.Errorf("position = %v, want 100,200", FormatPosition(got.Position))
		}
	})

	t.Run("default position", func(t *testing.T) {
		got := Merge(Params{FontSize: 40}, Hint{})
		if got.Position != DefaultPosition {
			t.Errorf("position = %v, want %v", got.Position, DefaultPosition)
		}
		if got.FontSize != 40 {
			t.Errorf("size = %d, want 40", got.FontSize)
		}
	})

	t.Run("other fields untouched", func(t *testing.T) {
		p := Params{Font: "gobold", FontSize: 40, Color: ColorText("red"), OutlineWidth: 3}
		got := Merge(p, hinted)
		if got.Font != "gobold" || got.Color != ColorText("red") || got.OutlineWidth != 3 {
			t.Errorf("merged = %+v", got)
		}
	})
}

func TestMergeStyles(t *testing.T) {
	got := MergeStyles(
		DefaultStyle(),
		StyleFile{FontSize: 60, Color: "white", OutlineColor: "black", OutlineWidth: 2},
		StyleFile{Color: "red"},
	)
	want := StyleFile{FontSize: 60, Color: "red", OutlineColor: "black", OutlineWidth: 2}
	if got != want {
		t.Errorf("MergeStyles = %+v, want %+v", got, want)
	}
}
