package lightapi

// OperationResult is one entry of the "results" list the API returns for
// commands sent to a selector.
type OperationResult struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
}

// Operation results the API reports per device.
const (
	StatusOK       = "ok"
	StatusTimedOut = "timed_out"
	StatusOffline  = "offline"
)

func (r OperationResult) Succeeded() bool {
	return r.Status == StatusOK
}
