package models

// ResultKind tags a HandlerResult.
type ResultKind int

const (
	// ResultIgnore is the zero value: a handler that returns HandlerResult{}
	// asks for nothing to be sent.
	ResultIgnore ResultKind = iota
	ResultDispatch
)

func (k ResultKind) String() string {
	switch k {
	case ResultIgnore:
		return "ignore"
	case ResultDispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// HandlerResult is what a handler returns for one update: either ignore or a
// method call to issue against the feed API.
type HandlerResult struct {
	Kind   ResultKind
	Method string
	Params map[string]any
}

func Ignore() HandlerResult {
	return HandlerResult{Kind: ResultIgnore}
}

func Dispatch(method string, params map[string]any) HandlerResult {
	return HandlerResult{Kind: ResultDispatch, Method: method, Params: params}
}
