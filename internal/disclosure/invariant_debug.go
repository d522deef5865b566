//go:build dropdowndebug

package disclosure

// Debug builds stop at the first broken invariant.
func (c *Controller) onViolation(err *InvariantError) {
	panic(err)
}
