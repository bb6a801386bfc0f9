package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/redjkee/transport-analytics/internal/api/middleware"
	"github.com/redjkee/transport-analytics/internal/api/responses"
	"github.com/redjkee/transport-analytics/internal/core/invoice"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceHandler serves invoice uploads.
type InvoiceHandler struct {
	service        invoice.Service
	log            *zap.Logger
	maxUploadBytes int64
}

// NewInvoiceHandler creates a new handler. maxUploadBytes caps the request body.
func NewInvoiceHandler(service invoice.Service, log *zap.Logger, maxUploadBytes int64) *InvoiceHandler {
	return &InvoiceHandler{
		service:        service,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

// uploadSource adapts a multipart file to invoice.Source.
type uploadSource struct {
	header *multipart.FileHeader
}

func (u uploadSource) Name() string                 { return u.header.Filename }
func (u uploadSource) Open() (io.ReadCloser, error) { return u.header.Open() }

// HandleProcessInvoices parses every file of the multipart field "files" in upload order.
func (h *InvoiceHandler) HandleProcessInvoices(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		responses.JSON(c, http.StatusBadRequest, responses.Message(responses.MsgNoUploads))
		return
	}

	headers := form.File["files"]
	sources := make([]invoice.Source, len(headers))
	names := make([]string, len(headers))
	for i, fh := range headers {
		sources[i] = uploadSource{header: fh}
		names[i] = fh.Filename
	}

	h.log.Info("invoice files received",
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.Strings("files", names))

	responses.Batch(c, h.service.Process(sources))
}
