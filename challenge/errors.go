package challenge

import "errors"

var (
	ErrUnknownType       = errors.New("unknown challenge type")
	ErrIllegalTransition = errors.New("illegal verifier transition")
	ErrNoSession         = errors.New("no challenge session presented")
)
