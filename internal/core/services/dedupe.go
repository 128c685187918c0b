package services

import "github.com/custodia-labs/placepick/internal/core/domain"

// Dedupe folds provider records into candidates.
// Records sharing an identity triple collapse into the first one seen;
// later coordinates and IDs for the same place are dropped. Provider
// order is kept. An empty result means "not found", not a failure.
func Dedupe(records []domain.GeoRecord) []domain.Candidate {
	seen := make(map[domain.Identity]struct{}, len(records))
	candidates := make([]domain.Candidate, 0, len(records))

	for _, r := range records {
		id := r.Identity()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, domain.NewCandidate(r))
	}

	return candidates
}
