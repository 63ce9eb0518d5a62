package mechanics

import (
	"math"

	"github.com/pkg/errors"
)

// ValidatePoolSize checks that m is a usable pool size: a share of network
// capacity strictly between 0 and 1.
func ValidatePoolSize(m float64) error {
	if math.IsNaN(m) || m <= 0 || m >= 1 {
		return errors.Errorf("pool size %v must lie in (0, 1)", m)
	}

	return nil
}

// ValidateAction checks that an attack rate is feasible for a pool of the
// given size: a pool cannot divert capacity it does not have.
func ValidateAction(x, mySize float64) error {
	if math.IsNaN(x) || x < 0 || x > mySize {
		return errors.Errorf("attack rate %v must lie in [0, %v]", x, mySize)
	}

	return nil
}
