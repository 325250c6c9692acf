package lockfile

import (
	"fmt"

	"github.com/ralt/lockedpip/internal/models"
	"github.com/sirupsen/logrus"
)

// tableBuilder validates flushed records and files the ones for the active
// platform into a PackageTable
type tableBuilder struct {
	table    *models.PackageTable
	resolver *PlatformResolver
}

func newTableBuilder(resolver *PlatformResolver) *tableBuilder {
	return &tableBuilder{
		table:    models.NewPackageTable(),
		resolver: resolver,
	}
}

// add validates rec and inserts it when it belongs to the active platform
func (b *tableBuilder) add(rec *models.PackageRecord) error {
	name, ok := rec.Get(models.AttrName)
	if !ok {
		return &models.LockError{
			Type: models.ErrValidation,
			Line: rec.Line,
			Err:  fmt.Errorf("package has no name"),
		}
	}

	platform, ok := rec.Get(models.AttrPlatform)
	if !ok {
		return &models.LockError{
			Type:    models.ErrValidation,
			Package: name,
			Line:    rec.Line,
			Err:     fmt.Errorf("package has no platform"),
		}
	}

	if !b.resolver.Accepts(platform) {
		logrus.Debugf("Skipping %s for platform %s (active: %s)", name, platform, b.resolver.Active())
		return nil
	}

	if b.table.Has(name) {
		return &models.LockError{
			Type:    models.ErrValidation,
			Package: name,
			Line:    rec.Line,
			Err:     fmt.Errorf("duplicate package %q", name),
		}
	}

	b.table.Insert(rec)
	return nil
}
