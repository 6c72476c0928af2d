package visitor

import (
	"strconv"
	"testing"
)

func TestStatusError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code   int
		status string
		want   string
	}{
		{404, "", "404 Client Error: Not Found for url: http://x/spaces"},
		{418, "", "418 Client Error: I'm a teapot for url: http://x/spaces"},
		{500, "", "500 Server Error: Internal Server Error for url: http://x/spaces"},
		{302, "", "302 Error: Found for url: http://x/spaces"},
		{599, "", "599 Server Error: Unknown Status for url: http://x/spaces"},
		{404, "404 Space Not Found", "404 Client Error: Space Not Found for url: http://x/spaces"},
		{503, "503 Tunnel Unavailable", "503 Server Error: Tunnel Unavailable for url: http://x/spaces"},
		{599, "599 Network Connect Timeout", "599 Server Error: Network Connect Timeout for url: http://x/spaces"},
		{500, "500 ", "500 Server Error: Internal Server Error for url: http://x/spaces"},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.code)+" "+tt.status, func(t *testing.T) {
			err := &StatusError{StatusCode: tt.code, Status: tt.status, URL: "http://x/spaces"}
			if got := err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckStatus(t *testing.T) {
	t.Parallel()

	for code := 100; code < 600; code++ {
		err := checkStatus(code, "", "u")
		ok := code >= 200 && code < 300
		if ok && err != nil {
			t.Errorf("code %d: unexpected error %v", code, err)
		}
		if !ok && err == nil {
			t.Errorf("code %d: expected error", code)
		}
	}
}
