// Package services – HealthService
//
// HealthService aggregates pluggable dependency probes behind the health
// endpoint. With no probes registered the service is always healthy.
package services

import (
	"context"
	"time"
)

// DefaultProbeTimeout bounds a single probe when no timeout is configured.
const DefaultProbeTimeout = 2 * time.Second

// Probe checks one dependency. Check must honor ctx.
type Probe interface {
	Name() string
	Check(ctx context.Context) error
}

// ProbeFunc adapts a function to the Probe interface.
type ProbeFunc struct {
	ProbeName string
	Fn        func(ctx context.Context) error
}

// Name returns the probe name.
func (p ProbeFunc) Name() string { return p.ProbeName }

// Check runs the wrapped function.
func (p ProbeFunc) Check(ctx context.Context) error { return p.Fn(ctx) }

// HealthReport is the outcome of a health check. Failed maps probe names to
// "down" and is empty when healthy; probe error text is kept out of it.
type HealthReport struct {
	Status  string
	Service string
	Failed  map[string]string
	Errors  map[string]error
}

// HealthService runs the registered probes.
type HealthService struct {
	Service string
	Probes  []Probe
	Timeout time.Duration
}

// NewHealthService constructs a HealthService for the named service.
func NewHealthService(service string, probes ...Probe) *HealthService {
	return &HealthService{Service: service, Probes: probes, Timeout: DefaultProbeTimeout}
}

// Register adds probes. It is not safe to call concurrently with Check.
func (s *HealthService) Register(probes ...Probe) {
	s.Probes = append(s.Probes, probes...)
}

// Check runs every probe with a per-probe timeout. It returns ErrProbeFailed
// together with the report when any probe fails.
func (s *HealthService) Check(ctx context.Context) (HealthReport, error) {
	rep := HealthReport{Status: "ok", Service: s.Service}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	for _, p := range s.Probes {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err := p.Check(pctx)
		cancel()
		if err == nil {
			continue
		}
		if rep.Failed == nil {
			rep.Failed = make(map[string]string)
			rep.Errors = make(map[string]error)
		}
		rep.Failed[p.Name()] = "down"
		rep.Errors[p.Name()] = err
	}

	if len(rep.Failed) > 0 {
		rep.Status = "unavailable"
		return rep, ErrProbeFailed
	}
	return rep, nil
}
