package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/upi-statement-parser/internal/extractor"
	"github.com/insightdelivered/upi-statement-parser/internal/logger"
	"github.com/insightdelivered/upi-statement-parser/internal/metrics"
	"github.com/insightdelivered/upi-statement-parser/internal/models"
	"github.com/insightdelivered/upi-statement-parser/internal/parser"
	"github.com/insightdelivered/upi-statement-parser/internal/writer"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Parser     *parser.Parser
	Open       extractor.OpenFunc
	DateLayout string
	Metrics    *metrics.Metrics
	Version    string
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HandleHealth)
	app.Post("/upload", h.HandleUpload)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok", Version: h.Version})
}

// HandleUpload accepts a multipart form with a PDF in "file" and its
// password in "password", and responds with the parsed transactions. An
// optional "format" of csv or xlsx returns a download instead of JSON.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	log := logger.FromContext(c.UserContext())

	form, err := c.MultipartForm()
	if err != nil {
		h.Metrics.Upload(metrics.OutcomeBadRequest)
		return writeError(c, fiber.StatusBadRequest, "Expected a multipart form with fields 'file' and 'password'.")
	}

	files := form.File["file"]
	if len(files) == 0 {
		h.Metrics.Upload(metrics.OutcomeBadRequest)
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	passwords, ok := form.Value["password"]
	if !ok || len(passwords) == 0 {
		h.Metrics.Upload(metrics.OutcomeBadRequest)
		return writeError(c, fiber.StatusBadRequest, "Missing form field 'password'.")
	}

	format := ""
	if v := form.Value["format"]; len(v) > 0 {
		format = v[0]
	}
	out, err := writer.New(format, h.DateLayout)
	if err != nil {
		h.Metrics.Upload(metrics.OutcomeBadRequest)
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	header := files[0]
	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("reading upload: %w", err)
	}

	start := time.Now()
	pages, err := h.Open(data, passwords[0])
	if err != nil {
		h.Metrics.Upload(metrics.OutcomeInvalidPDF)
		log.Warn().Err(err).Str("filename", header.Filename).Int64("size", header.Size).Msg("rejecting statement")
		return writeError(c, fiber.StatusUnprocessableEntity, "Invalid PDF or password: "+cause(err))
	}

	res := h.Parser.Parse(c.UserContext(), pages)
	h.Metrics.Statement(res, time.Since(start))
	h.Metrics.Upload(metrics.OutcomeOK)

	if _, isJSON := out.(*writer.JSONWriter); isJSON {
		return c.JSON(models.NewResponse(res, h.DateLayout))
	}

	var buf bytes.Buffer
	if err := out.Write(&buf, res); err != nil {
		return err
	}
	c.Attachment(downloadName(header.Filename, out.Extension()))
	c.Set(fiber.HeaderContentType, out.ContentType())
	return c.Send(buf.Bytes())
}

// cause strips the sentinel prefix so the client sees only the reason.
func cause(err error) string {
	msg := err.Error()
	if errors.Is(err, extractor.ErrInvalidPDF) {
		msg = strings.TrimPrefix(msg, extractor.ErrInvalidPDF.Error())
		msg = strings.TrimPrefix(msg, ": ")
	}
	if msg == "" {
		return extractor.ErrInvalidPDF.Error()
	}
	return msg
}

// downloadName derives the export file name from the uploaded one.
func downloadName(uploaded, ext string) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "transactions"
	}
	return base + "." + ext
}
