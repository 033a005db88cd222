package retrieval

import "github.com/poiesic/pricewise/core"

// RetrievalMonitor provides hooks to observe the retrieval pipeline.
// Implement this interface to track intermediate steps and results while
// answering a query.
type RetrievalMonitor interface {
	Start(query string)
	AfterInterpret(searchQuery string, constraints core.Constraints)
	AfterSearch(candidates []core.Candidate)
	AfterFilter(candidates []core.Candidate)
	NoResults()
	Finish(response *core.Response)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                            {}
func (n *noopMonitor) AfterInterpret(_ string, _ core.Constraints) {}
func (n *noopMonitor) AfterSearch(_ []core.Candidate)            {}
func (n *noopMonitor) AfterFilter(_ []core.Candidate)            {}
func (n *noopMonitor) NoResults()                                {}
func (n *noopMonitor) Finish(_ *core.Response)                   {}
