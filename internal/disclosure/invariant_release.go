//go:build !dropdowndebug

package disclosure

// Release builds log the violation and continue from the nearest valid state.
func (c *Controller) onViolation(err *InvariantError) {
	c.logger.Error("disclosure: invariant violated", "op", err.Op, "reason", err.Reason, "state", err.State.String())
	c.state = c.state.clamped()
}
