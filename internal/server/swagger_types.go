package server

// DataResponse is the response envelope referenced by the API schema.
type DataResponse struct {
	Data any `json:"data"`
}
