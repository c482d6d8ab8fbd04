package catset

import (
	"bytes"
	"context"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteClassifier(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"class": 283, "confidence": 0.91}`))
	}))
	defer srv.Close()

	rc := &RemoteClassifier{URL: srv.URL, HTTPClient: srv.Client()}
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))

	pred, err := rc.Classify(context.Background(), img)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if pred.Class != 283 || pred.Confidence != 0.91 {
		t.Errorf("prediction = %+v, want class 283 confidence 0.91", pred)
	}
	if gotContentType != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", gotContentType)
	}

	// The body must be a decodable JPEG already resized to the model input.
	sent, _, err := image.Decode(bytes.NewReader(gotBody))
	if err != nil {
		t.Fatalf("request body is not a decodable image: %v", err)
	}
	if b := sent.Bounds(); b.Dx() != classifierInputSize || b.Dy() != classifierInputSize {
		t.Errorf("sent image is %dx%d, want %dx%d", b.Dx(), b.Dy(), classifierInputSize, classifierInputSize)
	}
}

func TestRemoteClassifierErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	rc := &RemoteClassifier{URL: srv.URL, HTTPClient: srv.Client()}
	if _, err := rc.Classify(context.Background(), image.NewRGBA(image.Rect(0, 0, 10, 10))); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func TestRemoteClassifierBadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("definitely not json"))
	}))
	defer srv.Close()

	rc := &RemoteClassifier{URL: srv.URL, HTTPClient: srv.Client()}
	if _, err := rc.Classify(context.Background(), image.NewRGBA(image.Rect(0, 0, 10, 10))); err == nil {
		t.Error("expected error on undecodable response body")
	}
}

// The acceptance policy around the classifier: class range and confidence
// threshold must both hold.
func TestIsCatPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pred Prediction
		err  error
		want bool
	}{
		{name: "tabby above threshold", pred: Prediction{Class: 281, Confidence: 0.5}, want: true},
		{name: "egyptian cat at range end", pred: Prediction{Class: 285, Confidence: 0.9}, want: true},
		{name: "confidence exactly at threshold", pred: Prediction{Class: 282, Confidence: 0.20}, want: true},
		{name: "cat class below threshold", pred: Prediction{Class: 282, Confidence: 0.19}, want: false},
		{name: "class just below range", pred: Prediction{Class: 280, Confidence: 0.99}, want: false},
		{name: "class just above range", pred: Prediction{Class: 286, Confidence: 0.99}, want: false},
		{name: "classifier error rejects", pred: Prediction{Class: 281, Confidence: 0.9}, err: errFake, want: false},
	}

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Classifier: &stubClassifier{pred: tc.pred, err: tc.err}}
			cfg.defaults()
			if got := cfg.isCat(context.Background(), img, "x.jpg"); got != tc.want {
				t.Errorf("isCat = %v, want %v", got, tc.want)
			}
		})
	}
}

var errFake = io.ErrUnexpectedEOF
