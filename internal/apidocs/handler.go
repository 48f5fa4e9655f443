// Package apidocs serves the JSON-schema descriptors of the exposed tables.
package apidocs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/invopop/jsonschema"

	"github.com/bizcore/bizcore/internal/platform/httpx"
	"github.com/bizcore/bizcore/internal/platform/schema"
)

// Tag groups the endpoints of one table in API documentation.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Document pairs a table with its documentation tag.
type Document struct {
	Table schema.Table
	Tag   Tag
}

// Index is the body of GET /schemas.
type Index struct {
	Tags        []map[string]Tag              `json:"tags"`
	Definitions map[string]*jsonschema.Schema `json:"definitions"`
}

// Handler serves descriptors computed once at construction.
type Handler struct {
	index Index
}

// NewHandler builds the descriptors of docs in the given order.
func NewHandler(docs ...Document) *Handler {
	index := Index{
		Tags:        make([]map[string]Tag, 0, len(docs)),
		Definitions: make(map[string]*jsonschema.Schema, len(docs)),
	}
	for _, d := range docs {
		name := d.Table.FullName()
		index.Tags = append(index.Tags, map[string]Tag{name: d.Tag})
		index.Definitions[name] = d.Table.Descriptor()
	}
	return &Handler{index: index}
}

// MountRoutes registers / and /{name}.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{name}", h.show)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	httpx.Respond(w, httpx.Toast{Status: http.StatusOK, Type: httpx.TypeSelectAll, Msg: "Schema list"}, h.index)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	def, ok := h.index.Definitions[name]
	if !ok {
		httpx.JSON(w, http.StatusNotFound, httpx.Envelope{
			Status: http.StatusNotFound,
			Type:   httpx.TypeSelect,
			Msg:    (&httpx.NotFoundError{Entity: "schema", Key: name}).Error(),
		})
		return
	}
	httpx.Respond(w, httpx.Toast{Status: http.StatusOK, Type: httpx.TypeSelect, Msg: def.Title}, def)
}
