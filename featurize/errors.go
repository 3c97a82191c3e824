package featurize

import "errors"

var (
	ErrNoTechnicians  = errors.New("featurize: at least one technician is required")
	ErrNoCatchments   = errors.New("featurize: at least one catchment is required")
	ErrBadCoordinate  = errors.New("featurize: entity carries an invalid coordinate")
	ErrInvertedWindow = errors.New("featurize: entity carries an inverted time window")
)
