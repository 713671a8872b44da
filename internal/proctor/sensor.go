package proctor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// FaceSensor counts faces in a captured frame. Implementations must treat
// anything they cannot decode as zero faces rather than failing the tick.
type FaceSensor interface {
	// CountFaces returns the number of faces seen above the sensor's
	// confidence threshold. A non-nil error means the sensor itself is
	// unreachable; callers decide whether that degrades to zero.
	CountFaces(ctx context.Context, image []byte) (int, error)

	// Available reports whether real detection is happening. When false the
	// proctoring loop runs in degraded mode and skips the decision table.
	Available() bool
}

// HTTPSensor delegates detection to an external detector service.
type HTTPSensor struct {
	Endpoint      string
	MinConfidence float64
	Client        *http.Client
}

func NewHTTPSensor(endpoint string, minConfidence float64) *HTTPSensor {
	return &HTTPSensor{
		Endpoint:      endpoint,
		MinConfidence: minConfidence,
		Client:        &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *HTTPSensor) Available() bool { return s.Endpoint != "" }

func (s *HTTPSensor) CountFaces(ctx context.Context, image []byte) (int, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"image":          base64.StdEncoding.EncodeToString(image),
		"min_confidence": s.MinConfidence,
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("detector returned status %d", resp.StatusCode)
	}

	var out struct {
		Faces int `json:"faces"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	if out.Faces < 0 {
		return 0, nil
	}
	return out.Faces, nil
}

// StubSensor stands in when no detector endpoint is configured. It reports a
// single face on every frame so the flow stays usable without proctoring.
type StubSensor struct{}

func (StubSensor) Available() bool { return false }

func (StubSensor) CountFaces(ctx context.Context, image []byte) (int, error) {
	return 1, nil
}
