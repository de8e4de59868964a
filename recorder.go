package mockldap

// Call records one invocation of a public operation: the method name and
// the arguments as given.
type Call struct {
	Op   string
	Args []any
}

func (c *Conn) record(op string, args ...any) {
	c.calls = append(c.calls, Call{Op: op, Args: args})
}

// Calls returns every recorded operation in invocation order.
func (c *Conn) Calls() []Call {
	out := make([]Call, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallNames returns the recorded operation names, in invocation order.
func (c *Conn) CallNames() []string {
	names := make([]string, len(c.calls))
	for i, call := range c.calls {
		names[i] = call.Op
	}
	return names
}

// CallsTo returns the recorded calls to one operation.
func (c *Conn) CallsTo(op string) []Call {
	var out []Call
	for _, call := range c.calls {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}

// ResetCalls clears the recorded log, for reuse between test phases.
func (c *Conn) ResetCalls() {
	c.calls = nil
}
