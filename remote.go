package catset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	xdraw "golang.org/x/image/draw"
)

// classifierInputSize is the square input resolution expected by
// MobileNet-class ImageNet models.
const classifierInputSize = 224

const defaultClassifyTimeout = 15 * time.Second

// RemoteClassifier implements Classifier against an HTTP inference
// endpoint. The image is bilinear-resized to 224×224, JPEG-encoded and
// POSTed as the request body; the endpoint answers with
//
//	{"class": <imagenet index>, "confidence": <0..1>}
//
// The client keeps no per-call state and is safe for concurrent use.
type RemoteClassifier struct {
	URL        string
	HTTPClient *http.Client  // nil = http.DefaultClient
	Timeout    time.Duration // per-request timeout (default: 15s)
}

// Classify sends img to the inference endpoint and returns its top-1
// prediction.
func (rc *RemoteClassifier) Classify(ctx context.Context, img image.Image) (Prediction, error) {
	client := rc.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	timeout := rc.Timeout
	if timeout <= 0 {
		timeout = defaultClassifyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body bytes.Buffer
	if err := jpeg.Encode(&body, resizeForModel(img), nil); err != nil {
		return Prediction{}, fmt.Errorf("encode classifier input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.URL, &body)
	if err != nil {
		return Prediction{}, fmt.Errorf("build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Prediction{}, fmt.Errorf("classifier returned %d: %s", resp.StatusCode, msg)
	}

	var out struct {
		Class      int     `json:"class"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Prediction{}, fmt.Errorf("decode classifier response: %w", err)
	}
	return Prediction{Class: out.Class, Confidence: out.Confidence}, nil
}

func resizeForModel(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() == classifierInputSize && b.Dy() == classifierInputSize {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, classifierInputSize, classifierInputSize))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
