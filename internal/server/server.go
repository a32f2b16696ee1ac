// Package server exposes the conversion engine over HTTP for uploads from
// tools that cannot shell out to the CLI.
package server

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/izvod-dev/izvod/internal/buildinfo"
	"github.com/izvod-dev/izvod/internal/convert"
)

// Statement uploads can be multi-megabyte scans.
const bodyLimit = 32 << 20

// Server wires the converter into a fiber application.
type Server struct {
	conv    *convert.Converter
	workers int
	log     zerolog.Logger
}

// New builds a Server around a configured converter.
func New(conv *convert.Converter, workers int, log zerolog.Logger) *Server {
	return &Server{conv: conv, workers: workers, log: log}
}

// App returns the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "izvod " + buildinfo.Version,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	app.Get("/api/health", s.health)
	app.Post("/api/convert", s.convert)
	return app
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "version": buildinfo.Version})
}

// fileResult is the per-statement slice of the convert response. Content is
// base64-encoded by the JSON marshaller.
type fileResult struct {
	File         string   `json:"file"`
	Error        string   `json:"error,omitempty"`
	Transactions int      `json:"transactions"`
	Expanded     bool     `json:"expanded"`
	Warnings     []string `json:"warnings,omitempty"`
	Output       string   `json:"output,omitempty"`
	Content      []byte   `json:"content,omitempty"`
}

type convertResponse struct {
	RunID string       `json:"run_id"`
	Files []fileResult `json:"files"`
}

// convert accepts a multipart form with "statements" files, optional
// "specifications" files, and a "format" field (xlsx or xml).
func (s *Server) convert(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "expected multipart form: "+err.Error())
	}

	format := c.FormValue("format", convert.FormatXLSX)
	if !convert.ValidFormat(format) {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown format %q", format))
	}

	statements, err := readFiles(form.File["statements"])
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if len(statements) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no statement files uploaded")
	}
	specDocs, err := readFiles(form.File["specifications"])
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	specs := s.conv.LoadSpecifications(specDocs)
	runID, items := s.conv.Batch(c.UserContext(), statements, specs, s.workers)

	resp := convertResponse{RunID: runID, Files: make([]fileResult, 0, len(items))}
	for _, item := range items {
		fr := fileResult{File: item.File}
		if item.Err != nil {
			fr.Error = item.Err.Error()
			s.log.Error().Str("run_id", runID).Str("file", item.File).Err(item.Err).Msg("conversion failed")
			resp.Files = append(resp.Files, fr)
			continue
		}

		fr.Transactions = len(item.Result.Transactions)
		fr.Expanded = item.Result.Expanded
		for _, ev := range item.Result.Events {
			fr.Warnings = append(fr.Warnings, ev.Message)
		}

		content, err := s.conv.Render(item.Result, format)
		if err != nil {
			fr.Error = err.Error()
		} else {
			fr.Output = convert.OutputName(item.File, format)
			fr.Content = content
		}
		s.log.Info().Str("run_id", runID).Str("file", item.File).
			Int("transactions", fr.Transactions).Bool("expanded", fr.Expanded).
			Msg("converted")
		resp.Files = append(resp.Files, fr)
	}

	return c.JSON(resp)
}

func readFiles(headers []*multipart.FileHeader) ([]convert.Document, error) {
	var docs []convert.Document
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
		}
		docs = append(docs, convert.Document{Name: fh.Filename, Data: data})
	}
	return docs, nil
}
