package client_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/adamwoolhether/httpkit/client"
	"github.com/adamwoolhether/httpkit/client/transport"
)

func ExampleNew() {
	c, err := client.New("https://api.example.com/v1",
		client.WithDefaultHeaders(http.Header{"X-Client": {"v1"}}),
		client.WithDefaultParams(client.Params{{Key: "lang", Value: "en"}}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(c.BaseURL())
	fmt.Println(c.DefaultParams().Encode())
	// Output:
	// https://api.example.com/v1
	// lang=en
}

func ExampleGet() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `[{"name":"alice","query":%q}]`, r.URL.RawQuery)
	}))
	defer ts.Close()

	c, _ := client.New(ts.URL, client.WithDefaultParams(client.Params{{Key: "lang", Value: "en"}}))

	type user struct {
		Name  string `json:"name"`
		Query string `json:"query"`
	}

	resp, err := client.Get[[]user](context.Background(), c, "/users",
		client.WithParams(client.Params{{Key: "page", Value: "2"}}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	users := *resp.Data
	fmt.Println(resp.Status, users[0].Name, users[0].Query)
	// Output: 200 alice lang=en&page=2
}

func ExamplePost() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"type":%q,"length":%d,"body":%q}`, r.Header.Get("Content-Type"), r.ContentLength, b)
	}))
	defer ts.Close()

	c, _ := client.New(ts.URL)

	type echo struct {
		Type   string `json:"type"`
		Length int    `json:"length"`
		Body   string `json:"body"`
	}

	resp, err := client.Post[echo](context.Background(), c, "/items", map[string]string{"name": "widget"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(resp.Status, resp.Data.Type, resp.Data.Length, resp.Data.Body)
	// Output: 201 application/json 17 {"name":"widget"}
}

func ExampleClient_Get() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<p>hello</p>")
	}))
	defer ts.Close()

	c, _ := client.New(ts.URL)

	resp, err := c.Get(context.Background(), "/")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(*resp.Data)
	// Output: <p>hello</p>
}

func ExampleWithHeaders() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, r.Header.Get("X-Client"))
	}))
	defer ts.Close()

	c, _ := client.New(ts.URL, client.WithDefaultHeaders(http.Header{"X-Client": {"v1"}}))

	resp, _ := client.Get[string](context.Background(), c, "/",
		client.WithHeaders(http.Header{"X-Client": {"v2"}}),
	)

	fmt.Println(*resp.Data)
	// Output: v2
}

func ExampleWithTransport() {
	fake := transport.Func(func(_ context.Context, url string, req *transport.Request) (*transport.Response, error) {
		fmt.Println(req.Method, url)
		return &transport.Response{Status: http.StatusNoContent}, nil
	})

	c, _ := client.New("https://api.example.com", client.WithTransport(fake))

	resp, err := c.Get(context.Background(), "/health")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(resp.Status, resp.Data == nil)
	// Output:
	// GET https://api.example.com/health
	// 204 true
}

func ExampleError() {
	down := transport.Func(func(context.Context, string, *transport.Request) (*transport.Response, error) {
		return nil, errors.New("connection refused")
	})

	c, _ := client.New("https://api.example.com", client.WithTransport(down))

	_, err := c.Get(context.Background(), "/users")

	var cerr *client.Error
	if errors.As(err, &cerr) {
		fmt.Println(cerr.Kind, errors.Is(err, client.ErrTransport))
	}
	fmt.Println(err)
	// Output:
	// transport true
	// GET https://api.example.com/users: transport: connection refused
}
