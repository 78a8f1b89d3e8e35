package pool

import "time"

// SetNow overrides the pool clock in tests.
func (p *Pool) SetNow(now func() time.Time) { p.now = now }
