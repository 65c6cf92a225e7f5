// Package dedupe filters a freshly collected batch against accumulated history.
package dedupe

import "github.com/sells-group/vendor-cli/internal/model"

// Against partitions batch into records whose identity key is absent from
// history and those already known. It returns the genuinely-new records in
// their original order, their count, and the number of duplicates dropped.
//
// Only cross-run duplicates are removed: records that duplicate each other
// within the same batch are all kept. Neither input is mutated.
func Against(batch, history model.VendorBatch) (model.VendorBatch, int, int) {
	if len(history) == 0 {
		return batch, len(batch), 0
	}

	known := make(map[string]struct{}, len(history))
	for _, r := range history {
		known[r.Key()] = struct{}{}
	}

	fresh := make(model.VendorBatch, 0, len(batch))
	duplicates := 0
	for _, r := range batch {
		if _, ok := known[r.Key()]; ok {
			duplicates++
			continue
		}
		fresh = append(fresh, r)
	}

	return fresh, len(fresh), duplicates
}
