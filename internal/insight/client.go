package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	insighterrors "unicube-hr/internal/insight/errors"
	"unicube-hr/internal/shared/apperror"

	"go.uber.org/zap"
)

// AnonymizedLeave is the only shape that crosses the report boundary: no
// identity fields, no record id, no timestamps.
type AnonymizedLeave struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

//go:generate mockgen -source=client.go -destination=mock/generator_mock.go -package=mock
type Generator interface {
	Generate(ctx context.Context, records []AnonymizedLeave) (string, error)
}

type generateRequest struct {
	LeaveRequestData []AnonymizedLeave `json:"leaveRequestData"`
}

type generateResponse struct {
	Report string `json:"report"`
	Error  string `json:"error"`
}

// HTTPGenerator calls the external language-model endpoint. The call is
// opaque text-in/text-out; a bounded timeout keeps a dead upstream from
// hanging the admin action.
type HTTPGenerator struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewHTTPGenerator(url string, timeout time.Duration, logger ...*zap.Logger) *HTTPGenerator {
	l := zap.L().Named("insight.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("insight.client")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPGenerator{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: l,
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, records []AnonymizedLeave) (string, error) {
	body, err := json.Marshal(generateRequest{LeaveRequestData: records})
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternalError, "encode insight request", http.StatusInternalServerError)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternalError, "build insight request", http.StatusInternalServerError)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("insight upstream call failed", zap.Error(err))
		return "", insighterrors.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("insight upstream returned non-200", zap.Int("status", resp.StatusCode))
		return "", insighterrors.ErrUpstreamUnavailable
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		g.logger.Error("decode insight response failed", zap.Error(err))
		return "", insighterrors.ErrUpstreamUnavailable
	}
	if out.Error != "" {
		g.logger.Error("insight upstream reported error", zap.String("error", out.Error))
		return "", insighterrors.ErrUpstreamUnavailable
	}
	if out.Report == "" {
		g.logger.Error("insight upstream returned empty report")
		return "", insighterrors.ErrUpstreamUnavailable
	}
	return out.Report, nil
}

var _ Generator = (*HTTPGenerator)(nil)
