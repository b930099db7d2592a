package search

import "github.com/poiesic/lokum/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query *Query)
	CriteriaSanitized(dropped []string)
	AfterStructuredFilter(scope core.Scope, listings []*core.Listing)
	AfterSemanticRerank(scope core.Scope, hits []*core.ScoredDocument)
	HybridHit(result *core.ScoredListing)
	FilterHit(result *core.ScoredListing)
	Finish(results []*core.ScoredListing)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *Query)                                             {}
func (n *noopMonitor) CriteriaSanitized(_ []string)                               {}
func (n *noopMonitor) AfterStructuredFilter(_ core.Scope, _ []*core.Listing)      {}
func (n *noopMonitor) AfterSemanticRerank(_ core.Scope, _ []*core.ScoredDocument) {}
func (n *noopMonitor) HybridHit(_ *core.ScoredListing)                            {}
func (n *noopMonitor) FilterHit(_ *core.ScoredListing)                            {}
func (n *noopMonitor) Finish(_ []*core.ScoredListing)                             {}
