package bind

import (
	"github.com/andaru/yangtext/ncerr"
	"github.com/pkg/errors"
)

// Invalid is returned when a tree does not match its schema. It lists
// every binding failure found.
type Invalid struct {
	Errors ncerr.List
}

func (e *Invalid) Error() string { return "invalid: " + e.Errors.Error() }

// Reply returns the NETCONF <rpc-reply> reporting the failures
func (e *Invalid) Reply() *ncerr.Reply { return e.Errors.Reply() }

// IsInvalid returns the *Invalid in err's chain, if any
func IsInvalid(err error) (*Invalid, bool) {
	var e *Invalid
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
