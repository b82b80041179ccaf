package dashboard

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-agenda/pkg/appointment"
)

// Count-up animation parameters.
const (
	CountUpSteps    = 30
	CountUpInterval = 30 * time.Millisecond
)

// StatCards maps the role-shaped counters to the three panel cards.
func StatCards(role appointment.Role, stats appointment.Stats) []StatCard {
	switch role {
	case appointment.RoleAdmin:
		return []StatCard{
			{Label: "Total Usuarios", Value: stats.TotalUsers},
			{Label: "Total Citas", Value: stats.TotalAppointments},
			{Label: "Citas Activas", Value: stats.ActiveAppointments},
		}
	case appointment.RoleProfessional:
		return []StatCard{
			{Label: "Mis Citas", Value: stats.MyAppointments},
			{Label: "Pendientes", Value: stats.Pending},
			{Label: "Completadas", Value: stats.Completed},
		}
	default:
		return []StatCard{
			{Label: "Mis Citas", Value: stats.MyAppointments},
			{Label: "Próximas", Value: stats.Upcoming},
			{Label: "Historial", Value: 0},
		}
	}
}

// LoadStatistics refreshes the statistics panel. Failures are logged only.
func (c *Controller) LoadStatistics(ctx context.Context) error {
	stats, err := c.backend.Stats(ctx)
	if err != nil {
		c.logger.Error("load statistics", zap.Error(err))
		return err
	}
	if c.stats != nil {
		c.stats.ShowStats(StatCards(c.role, stats))
	}
	return nil
}

// CountUpFrames returns the values a counter shows while animating from zero
// to target: every frame adds target/CountUpSteps, shows the floor, and the
// last frame shows target exactly.
func CountUpFrames(target int) []int {
	increment := float64(target) / CountUpSteps
	current := 0.0
	frames := make([]int, 0, CountUpSteps+1)
	for i := 0; i <= 2*CountUpSteps; i++ {
		current += increment
		if current >= float64(target) {
			break
		}
		frames = append(frames, int(math.Floor(current)))
	}
	return append(frames, target)
}

// Animate calls fn with each frame of CountUpFrames, interval apart. It stops
// early when ctx is done.
func Animate(ctx context.Context, target int, interval time.Duration, fn func(value int)) error {
	if interval <= 0 {
		interval = CountUpInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for _, value := range CountUpFrames(target) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		fn(value)
	}
	return nil
}
