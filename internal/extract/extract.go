// Package extract maps raw listings to vendor records.
package extract

import (
	"strings"

	"github.com/sells-group/vendor-cli/internal/model"
	"github.com/sells-group/vendor-cli/internal/phone"
	"github.com/sells-group/vendor-cli/pkg/serpapi"
)

const closedIndicator = "permanently closed"

// Extractor builds VendorRecords from raw listings for one run.
type Extractor struct {
	phones         *phone.Normalizer
	categorySuffix string
	collected      string
}

// New creates an Extractor. categorySuffix is the region qualifier stripped
// from category labels (e.g. " Bangalore"); collected is the run's date
// stamp, shared by every record the extractor produces.
func New(phones *phone.Normalizer, categorySuffix, collected string) *Extractor {
	return &Extractor{
		phones:         phones,
		categorySuffix: categorySuffix,
		collected:      collected,
	}
}

// Record maps one listing to a VendorRecord. Permanently closed businesses
// are filtered: the second return is false and the record must be ignored.
func (e *Extractor) Record(l serpapi.Listing, category string) (model.VendorRecord, bool) {
	if l.PermanentlyClosed || strings.Contains(strings.ToLower(l.Status), closedIndicator) {
		return model.VendorRecord{}, false
	}

	normalized, valid := e.phones.Normalize(l.Phone)
	if !valid {
		normalized = model.NoPhone
	}

	website := l.Website
	if website == "" {
		website = l.Links.Website
	}

	return model.VendorRecord{
		Category:   strings.TrimSpace(strings.TrimSuffix(category, e.categorySuffix)),
		Name:       orPlaceholder(l.Title),
		Phone:      normalized,
		PhoneValid: valid,
		Address:    orPlaceholder(l.Address),
		Rating:     l.Rating,
		Reviews:    l.Reviews,
		Website:    orPlaceholder(website),
		MapsLink:   orPlaceholder(l.Link),
		Collected:  e.collected,
	}, true
}

func orPlaceholder(s string) string {
	if s == "" {
		return model.NotAvailable
	}
	return s
}
