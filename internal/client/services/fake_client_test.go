package services

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/client/client"
)

type call struct {
	Method string
	Path   string
	Body   string
}

// fakeClient implements client.Client. Responses are looked up by
// "METHOD path"; a missing entry answers 204.
type fakeClient struct {
	responses map[string]string
	errs      map[string]error
	calls     []call
}

func newFakeClient() *fakeClient {
	return &fakeClient{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeClient) Request(_ context.Context, path string, opts *client.RequestOptions) (json.RawMessage, error) {
	method := http.MethodGet
	var body string
	if opts != nil {
		if opts.Method != "" {
			method = opts.Method
		}
		body = string(opts.Body)
	}
	key := method + " " + path
	f.calls = append(f.calls, call{Method: method, Path: path, Body: body})

	if err := f.errs[key]; err != nil {
		return nil, err
	}
	if r, ok := f.responses[key]; ok {
		return json.RawMessage(r), nil
	}
	return nil, nil
}

func (f *fakeClient) Do(ctx context.Context, method, path string, in, out any) error {
	opts := &client.RequestOptions{Method: method}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		opts.Body = b
	}
	raw, err := f.Request(ctx, path, opts)
	if err != nil || raw == nil || out == nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeClient) URL(path string) string {
	return "http://api.test" + path
}

func (f *fakeClient) last() call {
	if len(f.calls) == 0 {
		return call{}
	}
	return f.calls[len(f.calls)-1]
}
