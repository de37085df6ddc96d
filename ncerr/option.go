package ncerr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithPath(path string) Option   { return func(e *Error) { e.Path = path } }
func WithAppTag(tag string) Option  { return func(e *Error) { e.AppTag = tag } }

// WithSeverity sets the error-severity, SeverityError by default
func WithSeverity(sev Severity) Option { return func(e *Error) { e.Severity = sev } }
