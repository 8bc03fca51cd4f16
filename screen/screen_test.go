package screen

import "testing"

func TestRenderClawPage(t *testing.T) {
	lines := Render("CLAW BOT", PageClaw, Readings{Battery: 87, ClawSpinning: true, ClawVelocity: -20})
	want := [4]string{"CLAW BOT", "Battery: 87%", "Spinning: 1", "Claw Velocity: -20"}
	if lines != want {
		t.Fatalf("expected %q, got %q", want, lines)
	}
}

func TestRenderVisualPage(t *testing.T) {
	lines := Render("CLAW BOT", PageVisual, Readings{Battery: 5, ObjectFound: false, Distance: 412})
	if lines[2] != "Object found: 0" {
		t.Fatalf("bad line 3: %q", lines[2])
	}
	if lines[3] != "Distance: 412mm" {
		t.Fatalf("bad line 4: %q", lines[3])
	}
}

func TestPageString(t *testing.T) {
	if PageClaw.String() != "claw" || PageVisual.String() != "visual" {
		t.Fatalf("unexpected page names %s %s", PageClaw, PageVisual)
	}
	if Page(7).String() != "page(7)" {
		t.Fatalf("unexpected unknown page name %s", Page(7))
	}
}

func TestText(t *testing.T) {
	txt := Text([4]string{"a", "b", "c", "d"})
	if txt != "a\nb\nc\nd\n" {
		t.Fatalf("unexpected text %q", txt)
	}
}
