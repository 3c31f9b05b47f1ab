package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/querydesk/logging"
)

func TestServeDrainsInFlightRequest(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	started := make(chan struct{})
	var finished atomic.Bool
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(started)
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("done"))
			finished.Store(true)
		}),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	served := make(chan error, 1)
	go func() {
		served <- serve(ctx, server, ln, logging.Discard())
	}()

	type result struct {
		status int
		body   string
		err    error
	}
	replies := make(chan result, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			replies <- result{err: err}
			return
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		replies <- result{status: resp.StatusCode, body: string(body), err: err}
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case err := <-served:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}

	if !finished.Load() {
		t.Error("serve returned before the in-flight request finished")
	}

	reply := <-replies
	if reply.err != nil {
		t.Fatalf("in-flight request failed: %v", reply.err)
	}
	if reply.status != http.StatusOK || reply.body != "done" {
		t.Errorf("Expected 200 done, got %d %q", reply.status, reply.body)
	}
}

func TestServeReturnsServeError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	ln.Close()

	err = serve(context.Background(), &http.Server{}, ln, logging.Discard())
	if err == nil {
		t.Error("Expected an error serving on a closed listener")
	}
}
