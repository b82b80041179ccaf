package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

func TestStatCards(t *testing.T) {
	stats := appointment.Stats{
		TotalUsers:         12,
		TotalAppointments:  40,
		ActiveAppointments: 9,
		MyAppointments:     5,
		Pending:            3,
		Completed:          2,
		Upcoming:           4,
	}
	cases := []struct {
		role appointment.Role
		want []StatCard
	}{
		{
			role: appointment.RoleAdmin,
			want: []StatCard{{"Total Usuarios", 12}, {"Total Citas", 40}, {"Citas Activas", 9}},
		},
		{
			role: appointment.RoleProfessional,
			want: []StatCard{{"Mis Citas", 5}, {"Pendientes", 3}, {"Completadas", 2}},
		},
		{
			role: appointment.RoleClient,
			want: []StatCard{{"Mis Citas", 5}, {"Próximas", 4}, {"Historial", 0}},
		},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			if diff := cmp.Diff(tc.want, StatCards(tc.role, stats)); diff != "" {
				t.Fatalf("cards mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadStatistics_UsesRole(t *testing.T) {
	f := newFixture(t, appointment.RoleProfessional)
	f.seed(1, "Ana", "2024-06-01T15:00:00.000Z", "2024-06-01T16:00:00.000Z")

	if err := f.ctrl.LoadStatistics(context.Background()); err != nil {
		t.Fatalf("load statistics: %v", err)
	}
	if len(f.ui.cards) != 3 || f.ui.cards[0].Label != "Mis Citas" || f.ui.cards[0].Value != 1 {
		t.Fatalf("unexpected cards: %+v", f.ui.cards)
	}
}

func TestCountUpFrames(t *testing.T) {
	if diff := cmp.Diff([]int{0}, CountUpFrames(0)); diff != "" {
		t.Fatalf("zero target mismatch (-want +got):\n%s", diff)
	}

	frames := CountUpFrames(60)
	if len(frames) != CountUpSteps {
		t.Fatalf("expected %d frames, got %d", CountUpSteps, len(frames))
	}
	if frames[0] != 2 || frames[14] != 30 || frames[len(frames)-1] != 60 {
		t.Fatalf("unexpected frames: %v", frames)
	}

	frames = CountUpFrames(7)
	for i := 1; i < len(frames); i++ {
		if frames[i] < frames[i-1] {
			t.Fatalf("frames must not decrease: %v", frames)
		}
	}
	if frames[0] != 0 || frames[len(frames)-1] != 7 {
		t.Fatalf("unexpected frames: %v", frames)
	}
}

func TestAnimate(t *testing.T) {
	var got []int
	if err := Animate(context.Background(), 3, time.Millisecond, func(v int) { got = append(got, v) }); err != nil {
		t.Fatalf("animate: %v", err)
	}
	if diff := cmp.Diff(CountUpFrames(3), got); diff != "" {
		t.Fatalf("frames mismatch (-want +got):\n%s", diff)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Animate(ctx, 100, time.Millisecond, func(int) {})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewNotification_Duration(t *testing.T) {
	short := NewNotification("Cita actualizada", LevelSuccess)
	if short.Duration != 3*time.Second {
		t.Fatalf("expected short toast, got %v", short.Duration)
	}
	long := NewNotification(string(make([]rune, 101)), "")
	if long.Duration != 6*time.Second || long.Level != LevelInfo {
		t.Fatalf("unexpected long toast: %+v", long)
	}
}
