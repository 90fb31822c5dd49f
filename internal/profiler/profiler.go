package profiler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BerylCAtieno/icp-generator/internal/logger"
	"github.com/BerylCAtieno/icp-generator/internal/models"
)

// DefaultDelay is the simulated generation latency.
const DefaultDelay = 2 * time.Second

// ErrEmptyDescription is returned when the description is empty after
// trimming.
var ErrEmptyDescription = errors.New("product description is required")

// Generator turns a product description into a customer profile.
type Generator interface {
	GenerateCustomerProfile(ctx context.Context, description string) (*models.ProfileResponse, error)
}

// TemplateGenerator selects one of the built-in templates after a fixed,
// simulated delay.
type TemplateGenerator struct {
	delay  time.Duration
	logger logger.Logger
	now    func() time.Time
	sleep  func(time.Duration)
}

func NewTemplateGenerator(delay time.Duration, log logger.Logger) *TemplateGenerator {
	if delay < 0 {
		delay = 0
	}
	return &TemplateGenerator{
		delay:  delay,
		logger: log.With(map[string]interface{}{"generator": "template"}),
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// GenerateCustomerProfile waits for the configured delay and then selects a
// template. Once started the wait runs to completion; ctx is not consulted.
func (g *TemplateGenerator) GenerateCustomerProfile(_ context.Context, description string) (*models.ProfileResponse, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	if g.delay > 0 {
		g.sleep(g.delay)
	}

	signals := Classify(description)
	key := TemplateFor(signals)
	profile, _ := Template(key)

	fields := map[string]interface{}{
		"template":     string(key),
		"linkedinTool": signals.LinkedInTool,
		"b2bSaas":      signals.B2BSaaS,
	}
	g.logger.Info("profile selected", fields)
	if signals.AITool {
		// AI signal does not influence selection yet.
		g.logger.Debug("ai tool signal detected", map[string]interface{}{"template": string(key)})
	}

	return &models.ProfileResponse{
		Description: description,
		Template:    key,
		Signals:     signals,
		Profile:     profile,
		GeneratedAt: g.now().UTC(),
	}, nil
}
