package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/alnah/go-ai2docx"
	"github.com/alnah/go-ai2docx/internal/document"
	"github.com/alnah/go-ai2docx/internal/fileutil"
)

// DocxContentType is the media type of WordprocessingML packages.
const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Response headers carrying conversion statistics.
const (
	headerRendered = "X-Equations-Rendered"
	headerFailed   = "X-Equations-Failed"
)

// convertRequest is the JSON request body.
type convertRequest struct {
	Text   string `json:"text"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type handler struct {
	backend      Backend
	maxBodyBytes int64
}

// readInput decodes the request into an Input. It writes the error response
// and returns false when the body is unusable.
func (h *handler) readInput(c *gin.Context) (ai2docx.Input, bool) {
	body := c.Request.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE",
				"request body exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			return ai2docx.Input{}, false
		}
		respondError(c, http.StatusBadRequest, "UNREADABLE_BODY", "request body could not be read")
		return ai2docx.Input{}, false
	}

	switch c.ContentType() {
	case binding.MIMEJSON:
		var req convertRequest
		if err := binding.JSON.BindBody(data, &req); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
			return ai2docx.Input{}, false
		}
		return ai2docx.Input{Text: req.Text, Title: req.Title, Author: req.Author}, true
	case binding.MIMEPlain, "text/markdown", "":
		return ai2docx.Input{
			Text:   string(data),
			Title:  c.Query("title"),
			Author: c.Query("author"),
		}, true
	default:
		respondError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
			"send application/json or text/plain")
		return ai2docx.Input{}, false
	}
}

// Convert handles POST /api/v1/convert.
func (h *handler) Convert(c *gin.Context) {
	input, ok := h.readInput(c)
	if !ok {
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		c.Status(http.StatusNoContent)
		return
	}

	res, err := h.backend.Convert(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}

	title := input.Title
	if title == "" {
		title = document.FirstHeading(res.Elements)
	}
	c.Header("Content-Disposition", attachment(title))
	c.Header(headerRendered, strconv.Itoa(res.Stats.Rendered))
	c.Header(headerFailed, strconv.Itoa(res.Stats.Failed))
	c.Data(http.StatusOK, DocxContentType, res.DOCX)
}

// Preview handles POST /api/v1/preview.
func (h *handler) Preview(c *gin.Context) {
	input, ok := h.readInput(c)
	if !ok {
		return
	}

	page, err := h.backend.Preview(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	if page == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// Health handles GET /healthz.
func (h *handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) fail(c *gin.Context, err error) {
	status, code, msg := mapConvertError(err)
	_ = c.Error(err)
	respondError(c, status, code, msg)
}

// attachment builds a Content-Disposition value named after the title.
func attachment(title string) string {
	name := ai2docx.DefaultFileName
	if stem := fileutil.SanitizeFileName(title); stem != "" {
		name = stem + ".docx"
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}
