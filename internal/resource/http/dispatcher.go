package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/gatekeeper/internal/audit"
	auditDomain "github.com/allisson/gatekeeper/internal/audit/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
	"github.com/allisson/gatekeeper/internal/httputil"
	"github.com/allisson/gatekeeper/internal/resource/domain"
)

// IDParam is the route parameter holding the record id.
const IDParam = "id"

const contentTypeJSON = "application/json; charset=utf-8"

// errHandleMissing means the dispatcher was mounted without ResolverMiddleware.
var errHandleMissing = apperrors.New("resource handle missing from request context")

// DeleteResponse is returned by a successful delete.
type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// auditPayload is the payload of every database audit event.
type auditPayload struct {
	URL  string          `json:"url"`
	ID   string          `json:"id,omitempty"`
	Body json.RawMessage `json:"body,omitempty"`
}

// Dispatcher maps HTTP verbs onto the resolved resource handle and publishes
// an audit event for every mutation.
type Dispatcher struct {
	notifier   audit.Notifier
	logger     *slog.Logger
	auditReads bool
}

// NewDispatcher creates a dispatcher. Reads are audited only when auditReads is set.
func NewDispatcher(notifier audit.Notifier, logger *slog.Logger, auditReads bool) *Dispatcher {
	return &Dispatcher{
		notifier:   notifier,
		logger:     logger,
		auditReads: auditReads,
	}
}

// GetHandler returns the whole collection, or a single record when :id is present.
// GET /api/v1/:model[/:id]
func (d *Dispatcher) GetHandler(c *gin.Context) {
	handle, ok := d.handle(c)
	if !ok {
		return
	}

	id := c.Param(IDParam)

	result, err := handle.Get(c.Request.Context(), id)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	if d.auditReads {
		d.publish(c, auditDomain.EventRead, id, nil)
	}

	c.Data(http.StatusOK, contentTypeJSON, result)
}

// CreateHandler creates a record and returns it with its generated id.
// POST /api/v1/:model
func (d *Dispatcher) CreateHandler(c *gin.Context) {
	handle, ok := d.handle(c)
	if !ok {
		return
	}

	body, err := readObject(c)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	result, err := handle.Post(c.Request.Context(), body)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	d.publish(c, auditDomain.EventCreate, "", body)

	c.Data(http.StatusOK, contentTypeJSON, result)
}

// ReplaceHandler replaces a record, creating it when it does not exist.
// PUT /api/v1/:model/:id
func (d *Dispatcher) ReplaceHandler(c *gin.Context) {
	handle, ok := d.handle(c)
	if !ok {
		return
	}

	body, err := readObject(c)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	id := c.Param(IDParam)

	result, err := handle.Put(c.Request.Context(), id, body)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	d.publish(c, auditDomain.EventUpdate, id, body)

	c.Data(http.StatusOK, contentTypeJSON, result)
}

// UpdateHandler merges the body into an existing record.
// PATCH /api/v1/:model/:id
func (d *Dispatcher) UpdateHandler(c *gin.Context) {
	handle, ok := d.handle(c)
	if !ok {
		return
	}

	body, err := readObject(c)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	id := c.Param(IDParam)

	result, err := handle.Patch(c.Request.Context(), id, body)
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	d.publish(c, auditDomain.EventUpdate, id, body)

	c.Data(http.StatusOK, contentTypeJSON, result)
}

// DeleteHandler removes a record.
// DELETE /api/v1/:model/:id
func (d *Dispatcher) DeleteHandler(c *gin.Context) {
	handle, ok := d.handle(c)
	if !ok {
		return
	}

	id := c.Param(IDParam)

	if err := handle.Delete(c.Request.Context(), id); err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	d.publish(c, auditDomain.EventDelete, id, nil)

	c.JSON(http.StatusOK, DeleteResponse{ID: id, Deleted: true})
}

// RandomHandler creates a random record for resources that support sampling.
// POST /api/v1/:model/random
func (d *Dispatcher) RandomHandler(c *gin.Context) {
	handle, ok := d.handle(c)
	if !ok {
		return
	}

	sampler, ok := handle.(domain.Sampler)
	if !ok {
		httputil.AbortWithError(c, domain.ErrRandomUnsupported)
		return
	}

	result, err := sampler.Random(c.Request.Context())
	if err != nil {
		httputil.AbortWithError(c, err)
		return
	}

	d.publish(c, auditDomain.EventCreate, "", result)

	c.Data(http.StatusOK, contentTypeJSON, result)
}

func (d *Dispatcher) handle(c *gin.Context) (domain.Handle, bool) {
	handle, ok := GetHandle(c.Request.Context())
	if !ok {
		d.logger.Error("dispatcher mounted without resolver", slog.String("path", c.FullPath()))
		httputil.AbortWithError(c, errHandleMissing)
		return nil, false
	}
	return handle, true
}

func (d *Dispatcher) publish(c *gin.Context, event, id string, body json.RawMessage) {
	d.notifier.Publish(c.Request.Context(), auditDomain.NamespaceDatabase, event, auditPayload{
		URL:  c.Request.URL.RequestURI(),
		ID:   id,
		Body: body,
	})
}

// readObject reads the request body and requires it to be a JSON object.
func readObject(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, apperrors.Wrap(domain.ErrInvalidBody, err.Error())
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' || !json.Valid(raw) {
		return nil, domain.ErrInvalidBody
	}

	return json.RawMessage(raw), nil
}
