package httpdto

// StatusResponse is returned by GET /
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
