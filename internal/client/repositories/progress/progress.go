package progress

import (
	"context"
	"strconv"
)

// Progress maps a roadmap item id to its completion mark.
type Progress map[string]bool

// SubtopicID names key topic idx of node nodeID.
func SubtopicID(nodeID string, idx int) string {
	return nodeID + "_subtopic_" + strconv.Itoa(idx)
}

// Completed counts the true entries.
func (p Progress) Completed() int {
	n := 0
	for _, done := range p {
		if done {
			n++
		}
	}
	return n
}

// NodeComplete reports whether all topics of a node are marked. A node
// without key topics is tracked under its own id.
func (p Progress) NodeComplete(nodeID string, topics int) bool {
	if topics == 0 {
		return p[nodeID]
	}
	for i := 0; i < topics; i++ {
		if !p[SubtopicID(nodeID, i)] {
			return false
		}
	}
	return true
}

type Repository interface {
	// Load returns an empty, non-nil Progress for unknown domains.
	Load(ctx context.Context, domain string) (Progress, error)
	// Mark records one item and returns the updated progress.
	Mark(ctx context.Context, domain, itemID string, done bool) (Progress, error)
	Reset(ctx context.Context, domain string) error
	// Domains lists the domains that have stored progress.
	Domains(ctx context.Context) ([]string, error)
}
