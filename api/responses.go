package api

// ReadinessResponse reports the probe outcome of every composed backend.
type ReadinessResponse struct {
	Ready    bool              `json:"ready" description:"Whether every backend is Ok"`
	Backends map[string]string `json:"backends" description:"Backend name to Ok or error detail"`
}
