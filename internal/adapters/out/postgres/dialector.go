package postgres

import (
	"marketplace/internal/pkg/dberr"

	gormpostgres "gorm.io/driver/postgres"
)

// Dialector is the GORM postgres dialector whose error translation also reports
// connection failures as errs.UnavailableError, so every repository call gets the
// classification. Translation only runs with gorm.Config.TranslateError set.
type Dialector struct {
	*gormpostgres.Dialector
}

func Open(dsn string) Dialector {
	return Dialector{Dialector: &gormpostgres.Dialector{Config: &gormpostgres.Config{DSN: dsn}}}
}

func (d Dialector) Translate(err error) error {
	return dberr.Classify(d.Dialector.Translate(err))
}
