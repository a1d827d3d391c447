package controller

import (
	"trustlens-be/internal/dto"
	"trustlens-be/internal/entity"
	"trustlens-be/internal/pkg/serverutils"
	"trustlens-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDriftController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	AnalyzeBatch(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type driftController struct {
	pipelineService service.IPipelineService
}

func NewDriftController(pipelineService service.IPipelineService) IDriftController {
	return &driftController{
		pipelineService: pipelineService,
	}
}

func (c *driftController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/drift/v1")
	h.Get("health", c.Health)
	h.Post("analyze", c.Analyze)
	h.Post("analyze-batch", c.AnalyzeBatch)
}

func (c *driftController) Analyze(ctx *fiber.Ctx) error {
	var req dto.AnalyzeDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	evts, err := c.pipelineService.ProcessDocument(ctx.Context(), toDocumentInput(req))
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	res := dto.AnalyzeDocumentResponse{
		DocId:  req.DocId,
		Events: toEventResponses(evts),
		Count:  len(evts),
	}
	return ctx.JSON(serverutils.SuccessResponse("Document analyzed", res))
}

func (c *driftController) AnalyzeBatch(ctx *fiber.Ctx) error {
	var req dto.AnalyzeBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	docs := make([]entity.DocumentInput, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = toDocumentInput(d)
	}

	results := c.pipelineService.ProcessBatch(ctx.Context(), docs)

	res := dto.AnalyzeBatchResponse{
		Documents: make([]dto.BatchDocumentResult, len(results)),
	}
	for i, r := range results {
		item := dto.BatchDocumentResult{
			DocPath: r.Input.DocPath,
			DocId:   r.Input.Metadata.DocId,
			Events:  toEventResponses(r.Events),
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		res.Documents[i] = item
	}
	return ctx.JSON(serverutils.SuccessResponse("Batch analyzed", res))
}

func (c *driftController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", nil))
}

func toDocumentInput(req dto.AnalyzeDocumentRequest) entity.DocumentInput {
	return entity.DocumentInput{
		DocPath: req.DocPath,
		Metadata: entity.DocumentMetadata{
			DocId:   req.DocId,
			Version: req.Version,
			DocType: req.DocType,
		},
	}
}

func toEventResponses(evts []entity.DriftEvent) []dto.DriftEventResponse {
	out := make([]dto.DriftEventResponse, len(evts))
	for i, ev := range evts {
		item := dto.DriftEventResponse{
			ChangeType:  string(ev.Type),
			ClauseId:    ev.New.ClauseId,
			Risk:        string(ev.Risk),
			Explanation: ev.Explanation,
			NewText:     ev.New.Text,
			Evidence: dto.EvidenceDTO{
				OldVersion: ev.Evidence.OldVersion,
				NewVersion: ev.Evidence.NewVersion,
			},
		}
		if ev.Old != nil {
			item.OldText = ev.Old.Text
		}
		out[i] = item
	}
	return out
}
