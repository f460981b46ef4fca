// Package api exposes file generation and validation over HTTP. The capture
// UI lives elsewhere; this surface only accepts already-captured aggregates
// or trust IDs and returns generated files.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jdlsoft/it3t-filing/internal/config"
	"github.com/jdlsoft/it3t-filing/internal/genfile"
	"github.com/jdlsoft/it3t-filing/internal/models"
	"github.com/jdlsoft/it3t-filing/internal/store"
	"github.com/jdlsoft/it3t-filing/internal/validate"
)

const version = "1.0.0"

// Handler holds the HTTP handlers for the filing API.
type Handler struct {
	Cfg config.Config
	// Repo is nil when no database is configured; DB-backed routes then
	// report 503.
	Repo *store.Repository
}

// Register sets up the API routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/generate", h.HandleGenerate)
	app.Post("/api/validate", h.HandleValidate)
	app.Get("/api/trusts", h.HandleListTrusts)
	app.Get("/api/trusts/:id/file", h.HandleTrustFile)
}

// GenerateResponse is the JSON response from the generate endpoints.
type GenerateResponse struct {
	Success     bool               `json:"success"`
	Error       string             `json:"error,omitempty"`
	Findings    []validate.Finding `json:"findings,omitempty"`
	Filename    string             `json:"filename,omitempty"`
	DPBCount    int                `json:"dpbCount,omitempty"`
	TADCount    int                `json:"tadCount,omitempty"`
	TFFCount    int                `json:"tffCount,omitempty"`
	TotalAmount int64              `json:"totalAmount,omitempty"`
	Content     string             `json:"content,omitempty"`
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

// HandleGenerate builds a submission file from a trust aggregate posted as
// JSON. With ?download=1 the raw flat file is returned instead of the JSON
// summary.
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	var agg models.TrustAggregate
	if err := c.BodyParser(&agg); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid trust aggregate: "+err.Error())
	}

	if findings := validate.CheckAggregate(&agg); len(findings) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(GenerateResponse{
			Success:  false,
			Error:    "aggregate failed validation",
			Findings: findings,
		})
	}

	res, err := genfile.Generate(&agg, genfile.Options{
		GHUniqueID:        c.Query("ghUniqueId"),
		TestDataIndicator: h.Cfg.TestDataIndicator,
		Submitter:         h.Cfg.Submitter(),
		Entity:            h.Cfg.Entity(),
	})
	if err != nil {
		return writeGenerateError(c, err)
	}

	if c.QueryBool("download") {
		return sendFlatFile(c, res)
	}

	return c.JSON(GenerateResponse{
		Success:     true,
		Filename:    res.Filename,
		DPBCount:    res.DPBCount,
		TADCount:    res.TADCount,
		TFFCount:    res.TFFCount,
		TotalAmount: res.TotalAmount,
		Content:     res.Content,
	})
}

// ValidateRequest carries the field pairs the capture layer wants checked.
type ValidateRequest struct {
	IDNumber           string `json:"idNumber"`
	DateOfBirth        string `json:"dateOfBirth"`
	TaxReferenceNumber string `json:"taxReferenceNumber"`
}

// HandleValidate runs the standalone field checks.
func (h *Handler) HandleValidate(c *fiber.Ctx) error {
	var req ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid request: "+err.Error())
	}

	resp := fiber.Map{}
	if req.IDNumber != "" || req.DateOfBirth != "" {
		resp["idMatchesBirthDate"] = validate.SAIDMatchesBirthDate(req.IDNumber, req.DateOfBirth)
	}
	if req.TaxReferenceNumber != "" {
		resp["taxReferenceValid"] = validate.Modulus10(req.TaxReferenceNumber)
	}
	if len(resp) == 0 {
		return writeError(c, fiber.StatusBadRequest, "nothing to validate")
	}
	return c.JSON(resp)
}

// HandleListTrusts lists the captured trusts with their submission status.
func (h *Handler) HandleListTrusts(c *fiber.Ctx) error {
	if h.Repo == nil {
		return writeError(c, fiber.StatusServiceUnavailable, "no database configured")
	}
	trusts, err := h.Repo.ListTrusts(c.Context())
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"trusts": trusts})
}

// HandleTrustFile generates and downloads the submission file for a captured
// trust. With ?mark=1 the trust is advanced to "Submitted to SARS" after a
// successful generation.
func (h *Handler) HandleTrustFile(c *fiber.Ctx) error {
	if h.Repo == nil {
		return writeError(c, fiber.StatusServiceUnavailable, "no database configured")
	}

	trustID, err := c.ParamsInt("id")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "invalid trust id")
	}

	agg, err := h.Repo.LoadTrustAggregate(c.Context(), int64(trustID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return writeError(c, fiber.StatusNotFound, "trust not found")
		}
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	if findings := validate.CheckAggregate(agg); len(findings) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(GenerateResponse{
			Success:  false,
			Error:    "aggregate failed validation",
			Findings: findings,
		})
	}

	submitter := h.Cfg.Submitter()
	if s, ok, err := h.Repo.LatestSubmission(c.Context(), int64(trustID)); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	} else if ok {
		submitter = s
	}

	res, err := genfile.Generate(agg, genfile.Options{
		TestDataIndicator: h.Cfg.TestDataIndicator,
		Submitter:         submitter,
		Entity:            h.Cfg.Entity(),
	})
	if err != nil {
		return writeGenerateError(c, err)
	}

	if c.QueryBool("mark") {
		if err := h.Repo.MarkSubmitted(c.Context(), int64(trustID)); err != nil {
			return writeError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	return sendFlatFile(c, res)
}

func sendFlatFile(c *fiber.Ctx, res *genfile.Result) error {
	encoded, err := genfile.EncodeLatin1(res.Content)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=iso-8859-1")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
	return c.Send(encoded)
}

func writeGenerateError(c *fiber.Ctx, err error) error {
	var numErr *genfile.NumericError
	var encErr *genfile.EncodingError
	switch {
	case errors.Is(err, genfile.ErrTrustNotFound):
		return writeError(c, fiber.StatusNotFound, err.Error())
	case errors.As(err, &numErr), errors.As(err, &encErr):
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(GenerateResponse{
		Success: false,
		Error:   msg,
	})
}
