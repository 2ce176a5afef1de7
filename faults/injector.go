package faults

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Wire names of the four simulations, as used by /api/simulate/:fault.
const (
	NameDBFailure       = "db-failure"
	NameSlowResponse    = "slow-response"
	NameRandomErrors    = "random-errors"
	NameNullDereference = "null-pointer"
)

var (
	ErrDatabaseUnavailable = errors.New("database connection failed")
	ErrRandomFailure       = errors.New("random error triggered")
)

// Injector holds the process-wide simulation toggles. It is passed
// explicitly to the handlers that need it rather than living as a
// package-level global. The toggle fields are deliberately plain bools:
// they are debugging aids and concurrent flips are not correctness-critical.
type Injector struct {
	DBFailure       bool
	SlowResponse    bool
	RandomErrors    bool
	NullDereference bool

	Delay     time.Duration
	ErrorRate float64

	rng *rand.Rand
}

// New returns an injector with all simulations off.
func New(delay time.Duration, errorRate float64) *Injector {
	return &Injector{
		Delay:     delay,
		ErrorRate: errorRate,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reseed replaces the random source. Tests use this to make the
// random-errors draw deterministic.
func (inj *Injector) Reseed(seed int64) {
	inj.rng = rand.New(rand.NewSource(seed))
}

// Toggle flips the named simulation and returns its new state.
func (inj *Injector) Toggle(name string) (bool, error) {
	switch name {
	case NameDBFailure:
		inj.DBFailure = !inj.DBFailure
		return inj.DBFailure, nil
	case NameSlowResponse:
		inj.SlowResponse = !inj.SlowResponse
		return inj.SlowResponse, nil
	case NameRandomErrors:
		inj.RandomErrors = !inj.RandomErrors
		return inj.RandomErrors, nil
	case NameNullDereference:
		inj.NullDereference = !inj.NullDereference
		return inj.NullDereference, nil
	default:
		return false, fmt.Errorf("unknown simulation %q", name)
	}
}

// States reports the current toggle map, as shown by the health check.
func (inj *Injector) States() map[string]bool {
	return map[string]bool{
		"db_failure":       inj.DBFailure,
		"slow_response":    inj.SlowResponse,
		"random_errors":    inj.RandomErrors,
		"null_dereference": inj.NullDereference,
	}
}

// Check applies every enabled simulation, in order. A slow response delays
// the call but lets it proceed; db failure and random errors return an
// error before any state is touched; the null dereference writes through a
// nil map and surfaces as a panic for the recovery middleware to catch.
func (inj *Injector) Check() error {
	if inj.SlowResponse {
		time.Sleep(inj.Delay)
	}
	if inj.DBFailure {
		return ErrDatabaseUnavailable
	}
	if inj.RandomErrors && inj.rng.Float64() < inj.ErrorRate {
		return ErrRandomFailure
	}
	if inj.NullDereference {
		var m map[string]int
		m["boom"] = 1
	}
	return nil
}
