package redisx

import "time"

const (
	// PSGC name cache: psgc:{kind}:{code} -> display name.
	// kind is one of region, province, citymun, barangay.
	KeyPSGCName = "psgc:%s:%s"
)

var (
	TTLPSGCName = time.Hour
)
