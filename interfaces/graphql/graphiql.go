package graphql

import (
	_ "embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed graphiql.html
var graphiqlHTML string

var graphiqlTemplate = template.Must(template.New("graphiql").Parse(graphiqlHTML))

type graphiqlData struct {
	EndpointURL string
}

func (h *Handler) serveGraphiQL(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := graphiqlTemplate.Execute(w, graphiqlData{EndpointURL: h.config.Endpoint}); err != nil {
		h.logger.Error("Failed to render GraphiQL", zap.Error(err))
	}
}
