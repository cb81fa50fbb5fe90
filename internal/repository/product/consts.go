package product

import "time"

const (
	// pushes outlive the caller's ctx but not this bound
	pushTimeout time.Duration = time.Second * 30
)
