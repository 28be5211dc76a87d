package ledger

import "github.com/porsenia/sportreg/internal/registration"

// Step-gating policy consumed by the presentation layer. The ledger's setters
// stay pure and do not block out-of-order calls themselves; navigation is
// where the gate lives.

// CanAccessStep reports whether the given step (1..3) is unlocked for this
// progress. When locked, requiredStep names the prerequisite step the caller
// should be redirected to.
func CanAccessStep(p registration.Progress, step int) (ok bool, requiredStep int) {
	switch step {
	case 1:
		return true, 0
	case 2:
		if !p.Step1Complete {
			return false, 1
		}
		return true, 0
	case 3:
		if !p.Step2Complete {
			return false, 2
		}
		return true, 0
	default:
		return false, 1
	}
}
