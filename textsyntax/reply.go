package textsyntax

import (
	"bufio"

	"github.com/andaru/yangtext/bind"
	"github.com/andaru/yangtext/ncerr"
	"github.com/pkg/errors"
)

// ErrorReply returns the rpc-reply reporting err, an error returned by
// Decode or bind.Tree, or nil for a nil err. Syntax errors are
// malformed-message, oversized statements too-big and list key count
// mismatches operation-failed with app-tag key-mismatch.
func ErrorReply(err error) *ncerr.Reply {
	if err == nil {
		return nil
	}
	if inv, ok := bind.IsInvalid(err); ok {
		return inv.Reply()
	}
	if e, ok := ncerr.IsError(err); ok {
		return ncerr.List{e}.Reply()
	}
	var se SyntaxError
	var e *ncerr.Error
	switch {
	case errors.As(err, &se):
		e = ncerr.MalformedMessage(ncerr.WithMessage(se.Error()))
	case errors.Cause(err) == bufio.ErrTooLong:
		e = ncerr.TooBig(ncerr.WithMessage("statement exceeds the maximum buffer size"))
	case errors.Is(err, bind.ErrKeyMismatch):
		e = ncerr.OperationFailed(ncerr.WithAppTag("key-mismatch"), ncerr.WithMessage(err.Error()))
	default:
		e = ncerr.OperationFailed(ncerr.WithMessage(err.Error()))
	}
	return ncerr.List{e}.Reply()
}
