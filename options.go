package mockldap

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/hbog/mockldap/pkg/monitoring"
)

// Option defines a single option function.
type Option func(o *Options)

// Options defines the available options for this package.
type Options struct {
	Logger             *zerolog.Logger
	Monitor            monitoring.MonitorInterface
	Tracer             trace.Tracer
	PasswordAttribute  string
	OTPSecretAttribute string
}

// newOptions initializes the available default options.
func newOptions(opts ...Option) Options {
	opt := Options{}

	for _, o := range opts {
		o(&opt)
	}

	return opt
}

// Logger provides a function to set the logger option.
func Logger(val *zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = val
	}
}

// Monitor provides a function to set the monitor option.
func Monitor(val monitoring.MonitorInterface) Option {
	return func(o *Options) {
		o.Monitor = val
	}
}

// Tracer provides a function to set the tracer option.
func Tracer(val trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = val
	}
}

// PasswordAttribute overrides the reserved credential attribute, which
// defaults to userPassword.
func PasswordAttribute(val string) Option {
	return func(o *Options) {
		o.PasswordAttribute = val
	}
}

// OTPSecretAttribute names the attribute holding a TOTP secret. When set,
// binds against entries carrying it must append the current six-digit code
// to the password.
func OTPSecretAttribute(val string) Option {
	return func(o *Options) {
		o.OTPSecretAttribute = val
	}
}
