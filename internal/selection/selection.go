package selection

import (
	"fmt"

	"github.com/ralt/lockedpip/internal/models"
)

const (
	// PipManager is the manager tag of packages pip installs
	PipManager = "pip"

	// DefaultCategory is selected when no category is requested
	DefaultCategory = "main"
)

// Select returns the records of table, in lockfile order, whose manager is
// manager and whose category is one of categories. Every selected record
// must carry a url; all offenders are reported together.
func Select(table *models.PackageTable, manager string, categories []string) ([]*models.PackageRecord, error) {
	if len(categories) == 0 {
		categories = []string{DefaultCategory}
	}
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	var selected []*models.PackageRecord
	var missingURL []string
	for _, rec := range table.Records() {
		if rec.Manager() != manager || !wanted[rec.Category()] {
			continue
		}
		selected = append(selected, rec)
		if _, ok := rec.Get(models.AttrURL); !ok {
			missingURL = append(missingURL, rec.Name())
		}
	}

	if len(missingURL) > 0 {
		return nil, &models.LockError{
			Type: models.ErrSelection,
			Err:  fmt.Errorf("the following packages are missing a URL: %q", missingURL),
		}
	}

	return selected, nil
}

// URLs returns the url of each record
func URLs(records []*models.PackageRecord) []string {
	urls := make([]string, 0, len(records))
	for _, rec := range records {
		urls = append(urls, rec.URL())
	}
	return urls
}
