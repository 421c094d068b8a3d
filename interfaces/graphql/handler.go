package graphql

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes caps POST bodies when HandlerConfig leaves it unset
const DefaultMaxBodyBytes = 1 << 20

// Request is a GraphQL-over-HTTP request
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HandlerConfig holds transport settings for the GraphQL endpoint
type HandlerConfig struct {
	// MaxBodyBytes caps the size of POST bodies
	MaxBodyBytes int64
	// GraphiQL serves the in-browser IDE to GET requests that accept HTML and
	// carry no query
	GraphiQL bool
	// Endpoint is the path the IDE sends its requests to
	Endpoint string
}

// Handler serves GraphQL over HTTP GET and POST
type Handler struct {
	schema *graphql.Schema
	config HandlerConfig
	tracer trace.Tracer
	logger *zap.Logger
}

// requestError is a request rejected before execution
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(message string) *requestError {
	return &requestError{status: http.StatusBadRequest, message: message}
}

// NewHandler creates a new GraphQL HTTP handler. A nil tracer falls back to
// the global provider.
func NewHandler(schema *graphql.Schema, config HandlerConfig, tracer trace.Tracer, logger *zap.Logger) *Handler {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if config.Endpoint == "" {
		config.Endpoint = "/"
	}
	if tracer == nil {
		tracer = otel.Tracer("github.com/JEONG99/movieql-server/interfaces/graphql")
	}
	return &Handler{
		schema: schema,
		config: config,
		tracer: tracer,
		logger: logger,
	}
}

// ServeHTTP decodes the request, executes it and writes the result. Requests
// that cannot be decoded get a 4xx; executed requests always get 200, with any
// field errors in the body.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.wantsGraphiQL(r) {
		h.serveGraphiQL(w)
		return
	}

	req, err := h.decodeRequest(w, r)
	if err != nil {
		h.reject(w, err)
		return
	}

	if r.Method == http.MethodGet && operationType(req) == ast.Mutation {
		w.Header().Set("Allow", http.MethodPost)
		h.reject(w, &requestError{
			status:  http.StatusMethodNotAllowed,
			message: "mutations can only be sent with POST",
		})
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "graphql.request",
		trace.WithAttributes(attribute.String("graphql.operation.name", req.OperationName)),
	)
	defer span.End()

	resp := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		span.SetStatus(codes.Error, resp.Errors[0].Message)
		span.SetAttributes(attribute.Int("graphql.errors", len(resp.Errors)))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) reject(w http.ResponseWriter, err *requestError) {
	h.logger.Debug("Rejected GraphQL request",
		zap.Int("status", err.status),
		zap.String("reason", err.message),
	)
	writeJSON(w, err.status, map[string]interface{}{
		"errors": []map[string]string{{"message": err.message}},
	})
}

// decodeRequest reads the query from URL parameters (GET) or a JSON body (POST)
func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*Request, *requestError) {
	req := &Request{}

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Query = query.Get("query")
		req.OperationName = query.Get("operationName")
		if variables := query.Get("variables"); variables != "" {
			if err := json.Unmarshal([]byte(variables), &req.Variables); err != nil {
				return nil, badRequest("variables must be a JSON object")
			}
		}
	case http.MethodPost:
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			return nil, badRequest("unsupported content type, use application/json")
		}
		body := http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes)
		if err := json.NewDecoder(body).Decode(req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, &requestError{
					status:  http.StatusRequestEntityTooLarge,
					message: "request body is too large",
				}
			}
			return nil, badRequest("request body is not a valid GraphQL request")
		}
	default:
		return nil, badRequest("unsupported method, use GET or POST")
	}

	if req.Query == "" {
		return nil, badRequest("query is required")
	}
	return req, nil
}

// operationType returns the type of the operation the request selects. Empty
// when the document does not parse or the operation is not found; execution
// reports those errors itself.
func operationType(req *Request) ast.Operation {
	doc, err := parser.ParseQuery(&ast.Source{Input: req.Query})
	if err != nil {
		return ""
	}
	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		return ""
	}
	return op.Operation
}

func (h *Handler) wantsGraphiQL(r *http.Request) bool {
	return h.config.GraphiQL &&
		r.Method == http.MethodGet &&
		r.URL.Query().Get("query") == "" &&
		strings.Contains(r.Header.Get("Accept"), "text/html")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
