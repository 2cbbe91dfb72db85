package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// HTTPProvider talks to the data service over JSON/HTTP.
type HTTPProvider struct {
	baseURL   *url.URL
	client    *http.Client
	chunkSize int
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider creates an HTTPProvider from cfg.
func NewHTTPProvider(cfg Config) (*HTTPProvider, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	chunk := cfg.ExamChunkSize
	if chunk < 1 {
		chunk = DefaultConfig().ExamChunkSize
	}
	return &HTTPProvider{
		baseURL:   u,
		client:    &http.Client{Timeout: cfg.Timeout},
		chunkSize: chunk,
	}, nil
}

func (p *HTTPProvider) ListPathways(ctx context.Context, careerID string, filters Filters) ([]Pathway, error) {
	return getList[Pathway](ctx, p, []string{"careers", careerID, "pathways"}, filters.Query())
}

func (p *HTTPProvider) ListCourses(ctx context.Context, pathwayID string) ([]Course, error) {
	return getList[Course](ctx, p, []string{"pathways", pathwayID, "courses"}, nil)
}

func (p *HTTPProvider) ListInstitutions(ctx context.Context, pathwayID string, filters Filters) ([]InstitutionBinding, error) {
	return getList[InstitutionBinding](ctx, p, []string{"pathways", pathwayID, "institutions"}, filters.Query())
}

func (p *HTTPProvider) ListAdmissionProcesses(ctx context.Context, institutionID, pathwayID string) ([]AdmissionProcess, error) {
	return getList[AdmissionProcess](ctx, p, []string{"institutions", institutionID, "pathways", pathwayID, "admissions"}, nil)
}

// GetExamInfo splits examIDs into chunks, fetches them concurrently and
// returns the results in the order of the chunks.
func (p *HTTPProvider) GetExamInfo(ctx context.Context, examIDs []string) ([]ExamInfo, error) {
	if len(examIDs) == 0 {
		return []ExamInfo{}, nil
	}

	var chunks [][]string
	for start := 0; start < len(examIDs); start += p.chunkSize {
		end := min(start+p.chunkSize, len(examIDs))
		chunks = append(chunks, examIDs[start:end])
	}

	results := make([][]ExamInfo, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			q := url.Values{}
			q.Set("ids", strings.Join(chunk, ","))
			exams, err := getList[ExamInfo](gctx, p, []string{"exams"}, q)
			if err != nil {
				return err
			}
			results[i] = exams
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]ExamInfo, 0, len(examIDs))
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// listEnvelope is the success body of every list endpoint.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// errorEnvelope is the error body the data service sends with non-2xx codes.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func getList[T any](ctx context.Context, p *HTTPProvider, segments []string, query url.Values) ([]T, error) {
	endpoint := p.baseURL.JoinPath(segments...)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, fmt.Errorf("GET %s: %w", endpoint.Path, context.DeadlineExceeded)
		}
		return nil, &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		var env errorEnvelope
		if json.Unmarshal(body, &env) == nil {
			se.Message = env.Error.Message
		}
		return nil, se
	}

	if err := validateEnvelope(body); err != nil {
		return nil, err
	}

	var env listEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &InvalidResponseError{Body: body, Err: err}
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	return env.Data, nil
}
