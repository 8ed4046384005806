package model

// Response is the normalized outcome of one executed request. It is never persisted.
type Response struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	Headers    map[string]string `json:"headers"`
	// Data is the decoded JSON value when the body parses as JSON, otherwise the raw text.
	Data interface{} `json:"data"`
	// Time is the elapsed wall time in milliseconds.
	Time int64 `json:"time"`
	// Size is the byte length of the raw body.
	Size int `json:"size"`
}

