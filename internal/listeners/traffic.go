package listeners

import (
	"fmt"
	"io"
	"sync"
)

// TrafficLightController adjusts its signals when traffic conditions change.
type TrafficLightController struct {
	id  string
	out io.Writer
}

// NewTrafficLightController creates a controller identified by id.
func NewTrafficLightController(id string, out io.Writer) *TrafficLightController {
	return &TrafficLightController{id: id, out: out}
}

// Receive adjusts signals for condition.
func (c *TrafficLightController) Receive(condition string) error {
	return emit(c.out, "TrafficLightController %s: Adjusting signals for traffic condition: %s", c.id, condition)
}

// ReportGenerator writes a report for every traffic condition it sees and
// keeps them for later retrieval.
type ReportGenerator struct {
	out io.Writer

	mu      sync.Mutex
	reports []string
}

// NewReportGenerator creates a report generator.
func NewReportGenerator(out io.Writer) *ReportGenerator {
	return &ReportGenerator{out: out}
}

// Receive generates a report for condition.
func (g *ReportGenerator) Receive(condition string) error {
	g.mu.Lock()
	g.reports = append(g.reports, fmt.Sprintf("report %d: %s", len(g.reports)+1, condition))
	g.mu.Unlock()
	return emit(g.out, "TrafficReportGenerator: Generating report for traffic condition: %s", condition)
}

// Reports returns the generated reports in order.
func (g *ReportGenerator) Reports() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	result := make([]string, len(g.reports))
	copy(result, g.reports)
	return result
}

// EmergencyResponseUnit prepares a response for every traffic condition.
type EmergencyResponseUnit struct {
	unitID string
	out    io.Writer
}

// NewEmergencyResponseUnit creates a response unit identified by unitID.
func NewEmergencyResponseUnit(unitID string, out io.Writer) *EmergencyResponseUnit {
	return &EmergencyResponseUnit{unitID: unitID, out: out}
}

// Receive prepares a response for condition.
func (u *EmergencyResponseUnit) Receive(condition string) error {
	return emit(u.out, "EmergencyResponseUnit %s: Preparing response for traffic condition: %s", u.unitID, condition)
}
