package model

import "strings"

// Placeholder values written when a listing field is absent.
const (
	NotAvailable = "N/A"
	NoPhone      = "Not Available"
)

// VendorRecord is one collected business listing.
type VendorRecord struct {
	Category   string   `json:"category"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"` // E.164, or NoPhone when validation failed
	PhoneValid bool     `json:"phone_valid"`
	Address    string   `json:"address"`
	Rating     *float64 `json:"rating,omitempty"`
	Reviews    int      `json:"reviews"`
	Website    string   `json:"website"`
	MapsLink   string   `json:"maps_link"`
	Collected  string   `json:"collected"` // run date stamp, identical for every record in a run
}

// VendorBatch is the ordered set of records produced by one collection run.
type VendorBatch []VendorRecord

// Key returns the identity key used to detect cross-run duplicates.
// Two records describe the same vendor iff their keys are equal.
func (r VendorRecord) Key() string {
	return strings.ToLower(strings.TrimSpace(r.Name)) + "||" + strings.ToLower(strings.TrimSpace(r.Address))
}

// CategorySummary aggregates a batch's records for one category.
type CategorySummary struct {
	Category    string
	Vendors     int
	ValidPhones int
	AvgRating   float64 // mean over rated records only; zero when Rated is zero
	Rated       int
	Reviews     int
}

// Summarize groups a batch by category, in order of first appearance.
// Records without a rating are excluded from the rating average.
func Summarize(batch VendorBatch) []CategorySummary {
	index := make(map[string]int)
	var out []CategorySummary
	sums := make(map[string]float64)

	for _, r := range batch {
		i, ok := index[r.Category]
		if !ok {
			i = len(out)
			index[r.Category] = i
			out = append(out, CategorySummary{Category: r.Category})
		}

		out[i].Vendors++
		if r.PhoneValid {
			out[i].ValidPhones++
		}
		if r.Rating != nil {
			out[i].Rated++
			sums[r.Category] += *r.Rating
		}
		out[i].Reviews += r.Reviews
	}

	for i := range out {
		if out[i].Rated > 0 {
			out[i].AvgRating = sums[out[i].Category] / float64(out[i].Rated)
		}
	}

	return out
}
