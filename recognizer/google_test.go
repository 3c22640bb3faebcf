package recognizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGoogle(t *testing.T, handler http.HandlerFunc) *Google {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g := NewGoogle("es-ES")
	g.SetEndpoint(srv.URL)
	return g
}

func TestRecognizeSuccess(t *testing.T) {
	var gotLang, gotContentType string
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.URL.Query().Get("lang")
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprintln(w, `{"result":[]}`)
		fmt.Fprintln(w, `{"result":[{"alternative":[{"transcript":"hola mundo","confidence":0.92}],"final":true}],"result_index":0}`)
	})

	got, err := g.Recognize(context.Background(), []byte("fLaC..."))
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if got.Text != "hola mundo" {
		t.Errorf("Text = %q, want %q", got.Text, "hola mundo")
	}
	if got.Confidence != 0.92 {
		t.Errorf("Confidence = %v, want 0.92", got.Confidence)
	}
	if gotLang != "es-ES" {
		t.Errorf("lang query = %q, want %q", gotLang, "es-ES")
	}
	if gotContentType != "audio/x-flac; rate=16000" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestRecognizeNoSpeech(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":[]}`)
	})

	_, err := g.Recognize(context.Background(), nil)
	if !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("err = %v, want ErrNoSpeech", err)
	}
}

func TestRecognizeEmptyBody(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := g.Recognize(context.Background(), nil)
	if !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("err = %v, want ErrNoSpeech", err)
	}
}

func TestRecognizeServiceError(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := g.Recognize(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}
	if errors.Is(err, ErrNoSpeech) {
		t.Fatal("HTTP 500 must not map to ErrNoSpeech")
	}
}

func TestRecognizeNetworkError(t *testing.T) {
	g := NewGoogle("es-ES")
	g.SetEndpoint("http://127.0.0.1:1/speech") // nothing listening

	_, err := g.Recognize(context.Background(), nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if errors.Is(err, ErrNoSpeech) {
		t.Fatal("transport failure must not map to ErrNoSpeech")
	}
}

func TestRecognizeContextCancelled(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Recognize(ctx, nil); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRecognizeSkipsEmptyAlternatives(t *testing.T) {
	g := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"result":[{"alternative":[]}]}`)
		fmt.Fprintln(w, `{"result":[{"alternative":[{"transcript":"segunda línea"}]}]}`)
	})

	got, err := g.Recognize(context.Background(), nil)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if got.Text != "segunda línea" {
		t.Errorf("Text = %q, want %q", got.Text, "segunda línea")
	}
}
