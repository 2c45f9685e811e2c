package models

// APIResponse is the uniform envelope every endpoint returns, success or not.
// Total is only set by the listing endpoint, Error only carries fault detail
// in non-production configuration.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Total   *int        `json:"total,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK builds a success envelope around data.
func OK(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// OKWithMessage builds a success envelope with a human-readable message.
func OKWithMessage(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message}
}

// OKList builds a success envelope for a list result with its total.
func OKList(data interface{}, total int) APIResponse {
	return APIResponse{Success: true, Data: data, Total: &total}
}

// Fail builds a failure envelope with a message.
func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
