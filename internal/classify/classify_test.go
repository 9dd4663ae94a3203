package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func classifyBody(t *testing.T, status int, body string) Result {
	t.Helper()
	return New(NestingAuto).Classify(Outcome{Status: status, Body: []byte(body)})
}

func TestClassify_NetworkError(t *testing.T) {
	r := New(NestingAuto).Classify(Outcome{Err: errors.New("dial tcp: connection refused")})
	require.Equal(t, KindRecoverable, r.Kind)
	require.Equal(t, msgNetworkFailure, r.Message)
}

func TestClassify_EmptyBody(t *testing.T) {
	r := classifyBody(t, 200, "   ")
	require.Equal(t, KindRecoverable, r.Kind)
	require.Equal(t, msgEmptyResponse, r.Message)
}

func TestClassify_BackendFailureSentinel(t *testing.T) {
	// The sentinel wins regardless of status or body shape.
	r := classifyBody(t, 200, `{"data": "Backend call failure in node lookup"}`)
	require.Equal(t, KindRecoverable, r.Kind)
	require.Equal(t, msgBackendBusy, r.Message)
}

func TestClassify_MalformedJSON(t *testing.T) {
	r := classifyBody(t, 200, `<html>504 Gateway Time`)
	require.Equal(t, KindRecoverable, r.Kind)
	require.Equal(t, msgParseFailure, r.Message)
}

func TestClassify_ErrorField_StatusOverrides(t *testing.T) {
	cases := map[int]string{
		503: "Service is temporarily unavailable. Please try again in a few moments.",
		504: "Request timed out. Please try again.",
		502: "Service is temporarily unavailable. Please try again later.",
		400: "Invalid request. Please check your question and try again.",
	}
	for status, want := range cases {
		r := classifyBody(t, status, `{"error":"x"}`)
		require.Equal(t, KindRecoverable, r.Kind, "status %d", status)
		require.Equal(t, want, r.Message, "status %d", status)
	}
}

func TestClassify_ErrorField_UnmatchedStatusKeepsText(t *testing.T) {
	r := classifyBody(t, 500, `{"error":"Missing environment variables"}`)
	require.Equal(t, KindRecoverable, r.Kind)
	require.Equal(t, "Missing environment variables", r.Message)
}

func TestClassify_Success_DataNesting(t *testing.T) {
	r := classifyBody(t, 200, `{"data":{"final_result":{"output":{"status":"success","summary":"Hi"}}}}`)
	require.Equal(t, KindSuccess, r.Kind)
	require.Equal(t, "Hi", r.Summary)
	require.Empty(t, r.References)
	require.Nil(t, r.Page)
}

func TestClassify_Success_BareNesting(t *testing.T) {
	body := `{"final_result":{"output":{"status":"success","summary":"Hello","references":["[a.pdf](/api/documents/a.pdf)"]}}}`

	for _, n := range []Nesting{NestingAuto, NestingBare} {
		r := New(n).Classify(Outcome{Status: 200, Body: []byte(body)})
		require.Equal(t, KindSuccess, r.Kind, "nesting %s", n)
		require.Equal(t, "Hello", r.Summary)
		require.Equal(t, []string{"[a.pdf](/api/documents/a.pdf)"}, r.References)
	}

	// Pinned to the data wrapper the bare form is not recognized.
	r := New(NestingData).Classify(Outcome{Status: 200, Body: []byte(body)})
	require.Equal(t, KindFatalFormat, r.Kind)
}

func TestClassify_Success_PageInfo(t *testing.T) {
	r := classifyBody(t, 200, `{"data":{"final_result":{"output":{"status":"success","summary":"s","page_info":{"current_page":3,"total_pages":5}}}}}`)
	require.Equal(t, KindSuccess, r.Kind)
	require.NotNil(t, r.Page)
	require.Equal(t, 3, r.Page.CurrentPage)
	require.Equal(t, 5, r.Page.TotalPages)
}

func TestClassify_Success_InvalidPageInfoDropped(t *testing.T) {
	r := classifyBody(t, 200, `{"data":{"final_result":{"output":{"status":"success","summary":"s","page_info":{"current_page":0,"total_pages":0}}}}}`)
	require.Equal(t, KindSuccess, r.Kind)
	require.Nil(t, r.Page)
}

func TestClassify_OutputErrorPatterns(t *testing.T) {
	cases := []struct {
		detail string
		want   string
	}{
		{"No documents found matching the query", msgNoDocuments},
		{"This model's maximum context length is 8192 tokens", msgContextLength},
		{"context_length_exceeded", msgContextLength},
		{"something else went wrong", msgProcessingError},
	}
	for _, tc := range cases {
		r := classifyBody(t, 200, `{"data":{"final_result":{"output":{"status":"error","error":"`+tc.detail+`"}}}}`)
		require.Equal(t, KindRecoverable, r.Kind, tc.detail)
		require.Equal(t, tc.want, r.Message, tc.detail)
	}
}

func TestClassify_MissingSummaryIsFatalFormat(t *testing.T) {
	r := classifyBody(t, 200, `{"data":{"final_result":{"output":{"status":"success","summary":""}}}}`)
	require.Equal(t, KindFatalFormat, r.Kind)
	require.Equal(t, msgUnexpectedFormat, r.Message)
}

func TestClassify_AbsentPayloadIsFatalFormat(t *testing.T) {
	r := classifyBody(t, 200, `{"something":"else"}`)
	require.Equal(t, KindFatalFormat, r.Kind)
	require.Equal(t, msgUnexpectedFormat, r.Message)
}

func TestClassify_NonOKWithoutErrorField(t *testing.T) {
	r := classifyBody(t, 504, `{"something":"else"}`)
	require.Equal(t, KindRecoverable, r.Kind)
	require.Equal(t, "Request timed out. Please try again.", r.Message)

	r = classifyBody(t, 418, `{"something":"else"}`)
	require.Equal(t, KindRecoverable, r.Kind)
	require.Equal(t, msgHTTPFailure, r.Message)
}

func TestClassify_Deterministic(t *testing.T) {
	out := Outcome{Status: 503, Body: []byte(`{"error":"x"}`)}
	c := New(NestingAuto)
	first := c.Classify(out)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, c.Classify(out))
	}
}
