package wrapper

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the Bot API envelope every method answers with
type APIResponse struct {
	Code        int                 `json:"-"`
	OK          bool                `json:"ok"`
	Result      interface{}         `json:"result,omitempty"`
	Description string              `json:"description,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// RawResponse is APIResponse as seen by a client, with the result undecoded
type RawResponse struct {
	OK          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	Description string              `json:"description,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

type ResponseParameters struct {
	RetryAfter int `json:"retry_after,omitempty"`
}

func ResponseSuccess(result interface{}) APIResponse {
	return APIResponse{
		Code:   http.StatusOK,
		OK:     true,
		Result: result,
	}
}

func ResponseFailed(httpCode int, description string) APIResponse {
	return APIResponse{
		Code:        httpCode,
		OK:          false,
		Description: description,
		ErrorCode:   httpCode,
	}
}

func ResponseRetryAfter(seconds int) APIResponse {
	res := ResponseFailed(http.StatusTooManyRequests, "Too Many Requests: retry later")
	res.Parameters = &ResponseParameters{RetryAfter: seconds}
	return res
}
