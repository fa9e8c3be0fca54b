package world

import (
	"math/rand"
	"testing"

	"github.com/tomz197/invaders/internal/object"
)

func TestFormationSpeed(t *testing.T) {
	tests := []struct {
		remaining int
		want      float64
	}{
		{55, 11},
		{54, 12}, // 11 + 1.25
		{10, 67}, // 11 + 56.25
		{2, 77},  // 11 + 66.25
		{1, 235}, // 11 + 5*54*0.832
		{0, 79},  // 11 + 68.75
	}

	for _, tc := range tests {
		if got := FormationSpeed(11, 55, tc.remaining); got != tc.want {
			t.Errorf("FormationSpeed(11, 55, %d) = %v, want %v", tc.remaining, got, tc.want)
		}
	}
}

var fieldScreen = object.Screen{Width: 320, Height: 240}

func TestAdvanceSweeps(t *testing.T) {
	f := newFormation(2, 11)
	enemies := []*object.Enemy{
		{X: 100, Y: 50, Width: 17, Height: 17},
		{X: 124, Y: 50, Width: 17, Height: 17},
	}

	if f.advance(enemies, 1, fieldScreen, 10) {
		t.Fatal("unexpected floor breach")
	}
	if enemies[0].X != 111 || enemies[1].X != 135 {
		t.Errorf("positions %v, %v", enemies[0].X, enemies[1].X)
	}
	if enemies[0].Y != 50 || f.Direction != 1 {
		t.Error("no bounce expected away from the walls")
	}
}

func TestAdvanceBouncesRight(t *testing.T) {
	f := newFormation(2, 11)
	enemies := []*object.Enemy{
		{X: 10, Y: 50, Width: 17, Height: 17},
		{X: 302.5, Y: 50, Width: 17, Height: 17},
	}

	f.advance(enemies, 0.1, fieldScreen, 10)

	if f.Direction != -1 {
		t.Errorf("direction = %v, want -1", f.Direction)
	}
	if enemies[1].X != 320-17-1 {
		t.Errorf("wall enemy X = %v, want clamped to 302", enemies[1].X)
	}
	for i, e := range enemies {
		if e.Y != 60 {
			t.Errorf("enemy %d Y = %v, whole block should drop to 60", i, e.Y)
		}
	}
}

func TestAdvanceBouncesLeft(t *testing.T) {
	f := newFormation(1, 11)
	f.Direction = -1
	enemies := []*object.Enemy{{X: 0.5, Y: 50, Width: 17, Height: 17}}

	f.advance(enemies, 0.1, fieldScreen, 10)

	if enemies[0].X != 1 {
		t.Errorf("X = %v, want clamped to 1", enemies[0].X)
	}
	if f.Direction != 1 || enemies[0].Y != 60 {
		t.Errorf("direction=%v y=%v", f.Direction, enemies[0].Y)
	}
}

func TestAdvanceFloorBreach(t *testing.T) {
	f := newFormation(1, 11)
	enemies := []*object.Enemy{{X: 100, Y: 240 - 17, Width: 17, Height: 17}}
	if !f.advance(enemies, 0, fieldScreen, 10) {
		t.Error("enemy touching the bottom edge should breach")
	}

	enemies[0].Y = 240 - 17.5
	if f.advance(enemies, 0, fieldScreen, 10) {
		t.Error("enemy above the bottom edge should not breach")
	}
}

func TestRotateTriangleWave(t *testing.T) {
	f := newFormation(55, 11)

	f.rotate(1)
	if f.Rotation != 20 || f.rotationDir != -1 {
		t.Fatalf("rotation=%v dir=%v, want clamp at 20 and turn", f.Rotation, f.rotationDir)
	}
	f.rotate(0.5)
	if f.Rotation != 10 {
		t.Errorf("rotation = %v, want 10", f.Rotation)
	}
	f.rotate(2)
	if f.Rotation != -20 || f.rotationDir != 1 {
		t.Errorf("rotation=%v dir=%v, want clamp at -20 and turn", f.Rotation, f.rotationDir)
	}
}

func TestRotateStaysBounded(t *testing.T) {
	f := newFormation(55, 11)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 10000; i++ {
		f.rotate(rng.Float64() * 0.1)
		if f.Rotation < -20 || f.Rotation > 20 {
			t.Fatalf("step %d: rotation %v", i, f.Rotation)
		}
	}
}

func TestRespawnCountdown(t *testing.T) {
	f := newFormation(55, 11)

	if f.countDown(5000) {
		t.Fatal("countdown without a pending respawn must not fire")
	}

	f.scheduleRespawn(1000)
	f.scheduleRespawn(5000)
	if f.remaining != 1000 {
		t.Errorf("second schedule must be ignored, remaining = %v", f.remaining)
	}

	if f.countDown(600) {
		t.Fatal("fired after 600ms")
	}
	if !f.countDown(400) {
		t.Fatal("should fire once the delay has elapsed")
	}
	if f.countDown(1000) || f.respawnPending() {
		t.Error("countdown must fire exactly once")
	}
}
