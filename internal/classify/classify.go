// Package classify maps a raw transport outcome onto a typed result with a
// human-readable message. Classification is pure and synchronous; it never
// retries and never surfaces stack traces or internal error text.
package classify

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Kind is the classified outcome category.
type Kind int

const (
	// KindSuccess carries a summary, optional references and page info.
	KindSuccess Kind = iota
	// KindRecoverable is a transport, protocol or application failure the
	// user can act on by trying again; the session stays usable.
	KindRecoverable
	// KindFatalFormat marks a response whose payload is present but not in
	// any shape this client understands.
	KindFatalFormat
)

// Outcome is the raw settlement of one transport call.
type Outcome struct {
	Status int
	Body   []byte
	// Err is set when the call itself failed (network error, timeout);
	// Status and Body are meaningless in that case.
	Err error
}

// PageInfo describes a paginated result set. Both fields are 1-based.
type PageInfo struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// Valid reports whether the descriptor can drive a pagination surface.
func (p *PageInfo) Valid() bool {
	return p != nil && p.CurrentPage >= 1 && p.TotalPages >= 1
}

// Result is the typed classification of an Outcome.
type Result struct {
	Kind       Kind
	Summary    string
	References []string
	Page       *PageInfo
	// Message is the user-facing text for non-success kinds.
	Message string
}

// Nesting selects where the result payload lives in the response body.
type Nesting string

const (
	// NestingAuto probes the data wrapper first, then the bare form.
	NestingAuto Nesting = "auto"
	// NestingData expects data.final_result.output.
	NestingData Nesting = "data"
	// NestingBare expects final_result.output at the top level.
	NestingBare Nesting = "bare"
)

// Response envelope shapes. Newer servers wrap the result in a "data" object;
// older ones put final_result at the top level.
type envelope struct {
	Error       json.RawMessage `json:"error"`
	Details     json.RawMessage `json:"details"`
	Data        *dataWrapper    `json:"data"`
	FinalResult *finalResult    `json:"final_result"`
}

type dataWrapper struct {
	FinalResult *finalResult `json:"final_result"`
}

type finalResult struct {
	Output        *output         `json:"output"`
	SystemMetrics json.RawMessage `json:"system_metrics"`
}

type output struct {
	Status     string    `json:"status"`
	Summary    string    `json:"summary"`
	Error      string    `json:"error"`
	References []string  `json:"references"`
	PageInfo   *PageInfo `json:"page_info"`
}

// Classifier applies the failure taxonomy to transport outcomes.
type Classifier struct {
	nesting Nesting
}

func New(nesting Nesting) *Classifier {
	switch nesting {
	case NestingData, NestingBare:
	default:
		nesting = NestingAuto
	}
	return &Classifier{nesting: nesting}
}

// Classify turns an outcome into a typed result. Given the same outcome it
// always yields the same result.
func (c *Classifier) Classify(out Outcome) Result {
	if out.Err != nil {
		return recoverable(msgNetworkFailure)
	}

	body := bytes.TrimSpace(out.Body)
	if len(body) == 0 {
		return recoverable(msgEmptyResponse)
	}
	if bytes.Contains(body, []byte(backendFailureSentinel)) {
		return recoverable(msgBackendBusy)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return recoverable(msgParseFailure)
	}

	if len(env.Error) > 0 && !bytes.Equal(env.Error, []byte("null")) {
		if msg, ok := statusMessages[out.Status]; ok {
			return recoverable(msg)
		}
		return recoverable(rawErrorText(env.Error))
	}

	// Any non-2xx without an explicit error field is still a failure; the
	// payload is not consulted.
	if out.Status < 200 || out.Status > 299 {
		if msg, ok := statusMessages[out.Status]; ok {
			return recoverable(msg)
		}
		return recoverable(msgHTTPFailure)
	}

	payload := c.unwrap(&env)
	if payload == nil {
		return Result{Kind: KindFatalFormat, Message: msgUnexpectedFormat}
	}

	switch payload.Status {
	case "success":
		if payload.Summary == "" {
			return Result{Kind: KindFatalFormat, Message: msgUnexpectedFormat}
		}
		result := Result{
			Kind:       KindSuccess,
			Summary:    payload.Summary,
			References: payload.References,
		}
		if payload.PageInfo.Valid() {
			result.Page = payload.PageInfo
		}
		return result
	case "error":
		return recoverable(applicationMessage(payload.errorDetail()))
	default:
		return Result{Kind: KindFatalFormat, Message: msgUnexpectedFormat}
	}
}

// unwrap locates the result payload per the configured nesting mode.
func (c *Classifier) unwrap(env *envelope) *output {
	fromData := func() *output {
		if env.Data != nil && env.Data.FinalResult != nil {
			return env.Data.FinalResult.Output
		}
		return nil
	}
	fromBare := func() *output {
		if env.FinalResult != nil {
			return env.FinalResult.Output
		}
		return nil
	}

	switch c.nesting {
	case NestingData:
		return fromData()
	case NestingBare:
		return fromBare()
	default:
		if payload := fromData(); payload != nil {
			return payload
		}
		return fromBare()
	}
}

func (o *output) errorDetail() string {
	if o.Error != "" {
		return o.Error
	}
	return o.Summary
}

// applicationMessage maps a payload-level error text onto actionable
// guidance for the two known causes, falling back to a generic message.
func applicationMessage(detail string) string {
	lower := strings.ToLower(detail)
	if strings.Contains(lower, "no documents") {
		return msgNoDocuments
	}
	if strings.Contains(lower, "context length") || strings.Contains(lower, "context_length") {
		return msgContextLength
	}
	return msgProcessingError
}

// rawErrorText extracts a display string from a top-level error value,
// which is usually a JSON string but occasionally a structured object.
func rawErrorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func recoverable(msg string) Result {
	return Result{Kind: KindRecoverable, Message: msg}
}
