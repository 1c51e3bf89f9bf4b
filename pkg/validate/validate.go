// Package validate checks a finished galaxy against the rail network's
// structural and economic invariants.
//
// Validation is a read-only batch pass: it never repairs data, and it runs
// every check regardless of earlier failures so callers always receive the
// complete finding list. Whether any particular finding is fatal is the
// caller's decision.
package validate

import (
	"fmt"
	"strings"

	"github.com/spindlespace/spindle/pkg/topo"
	"github.com/spindlespace/spindle/pkg/universe"
)

// Code identifies a class of validation finding.
type Code string

// Finding codes, one per invariant.
const (
	CodeCausalLoop       Code = "CAUSAL_LOOP"       // directed cycle in the rail graph
	CodeDanglingEndpoint Code = "DANGLING_ENDPOINT" // rail references an unknown system
	CodeDuplicateRoute   Code = "DUPLICATE_ROUTE"   // more than one rail per ordered pair
	CodeLengthMismatch   Code = "LENGTH_MISMATCH"   // recorded length off by more than 1%
	CodeGravitiumDeficit Code = "GRAVITIUM_DEFICIT" // network costs more than the galaxy holds
)

// Finding is one violated invariant. EntityID names the offending rail
// where one exists; galaxy-wide findings (loops, economics) leave it empty.
type Finding struct {
	Code     Code
	EntityID string
	Message  string
}

// String renders the finding as "CODE: message".
func (f Finding) String() string { return string(f.Code) + ": " + f.Message }

// Result is the outcome of a validation pass.
type Result struct {
	Valid    bool
	Findings []Finding
}

// ByCode returns the findings carrying the given code.
func (r Result) ByCode(code Code) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

// Galaxy runs every network invariant check against g and returns the
// exhaustive finding list. Validating the same galaxy twice yields the
// same result: rails are visited in sorted-ID order and the cycle check
// reports deterministic component memberships.
func Galaxy(g *universe.Galaxy) Result {
	var findings []Finding
	findings = append(findings, checkCycles(g)...)
	findings = append(findings, checkEndpoints(g)...)
	findings = append(findings, checkDuplicates(g)...)
	findings = append(findings, checkLengths(g)...)
	findings = append(findings, checkEconomics(g)...)
	return Result{Valid: len(findings) == 0, Findings: findings}
}

// checkCycles reports every non-trivial strongly connected component as a
// closed causal loop.
func checkCycles(g *universe.Galaxy) []Finding {
	var findings []Finding
	for _, scc := range topo.StronglyConnected(topo.EdgesOf(g.Rails())) {
		findings = append(findings, Finding{
			Code:    CodeCausalLoop,
			Message: fmt.Sprintf("closed causal loop through %d systems: %s", len(scc), strings.Join(scc, ", ")),
		})
	}
	return findings
}

// checkEndpoints reports rails whose endpoints name unknown systems.
func checkEndpoints(g *universe.Galaxy) []Finding {
	var findings []Finding
	for _, r := range g.Rails() {
		if _, ok := g.System(r.From); !ok {
			findings = append(findings, Finding{
				Code:     CodeDanglingEndpoint,
				EntityID: r.ID,
				Message:  fmt.Sprintf("rail %s departs unknown system %s", r.ID, r.From),
			})
		}
		if _, ok := g.System(r.To); !ok {
			findings = append(findings, Finding{
				Code:     CodeDanglingEndpoint,
				EntityID: r.ID,
				Message:  fmt.Sprintf("rail %s arrives at unknown system %s", r.ID, r.To),
			})
		}
	}
	return findings
}

// checkDuplicates reports ordered (from, to) pairs served by more than
// one rail.
func checkDuplicates(g *universe.Galaxy) []Finding {
	seen := make(map[[2]string]string)
	var findings []Finding
	for _, r := range g.Rails() {
		pair := [2]string{r.From, r.To}
		if firstID, dup := seen[pair]; dup {
			findings = append(findings, Finding{
				Code:     CodeDuplicateRoute,
				EntityID: r.ID,
				Message:  fmt.Sprintf("rail %s duplicates route %s -> %s already served by %s", r.ID, r.From, r.To, firstID),
			})
			continue
		}
		seen[pair] = r.ID
	}
	return findings
}

// checkLengths reports rails whose recorded length deviates from the
// endpoint distance by more than the 1% tolerance. Rails with a dangling
// endpoint are skipped here; checkEndpoints already reports them.
func checkLengths(g *universe.Galaxy) []Finding {
	var findings []Finding
	for _, r := range g.Rails() {
		from, okFrom := g.System(r.From)
		to, okTo := g.System(r.To)
		if !okFrom || !okTo {
			continue
		}
		if !r.LengthConsistent(from, to) {
			findings = append(findings, Finding{
				Code:     CodeLengthMismatch,
				EntityID: r.ID,
				Message: fmt.Sprintf("rail %s records %.2f LY but its endpoints are %.2f LY apart",
					r.ID, r.Length, from.Position.DistanceTo(to.Position)),
			})
		}
	}
	return findings
}

// checkEconomics reports a galaxy whose rail construction costs exceed
// its total gravitium deposits, naming the shortfall.
func checkEconomics(g *universe.Galaxy) []Finding {
	cost := g.TotalGravitiumCost()
	deposits := g.TotalGravitiumDeposits()
	if cost <= deposits {
		return nil
	}
	return []Finding{{
		Code: CodeGravitiumDeficit,
		Message: fmt.Sprintf("rail network needs %.1f tons of gravitium but deposits total %.1f tons (short %.1f)",
			cost, deposits, cost-deposits),
	}}
}
