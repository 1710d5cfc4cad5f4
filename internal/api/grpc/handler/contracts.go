package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jurisai/contractvault/internal/logger"
	"github.com/jurisai/contractvault/internal/model"
)

// ContractService defines business operations behind the contracts API.
type ContractService interface {
	AnalyzeOrReuse(ctx context.Context, params model.UploadParams) (model.AnalyzeResult, error)
	GetRecord(ctx context.Context, recordID, uploaderID uuid.UUID) (model.RecordView, error)
	ListRecords(ctx context.Context, filter model.ListFilter) (model.RecordPage, error)
	Stats(ctx context.Context, uploaderID uuid.UUID) (model.UsageStats, error)
	Archive(ctx context.Context, recordID, uploaderID uuid.UUID) error
	Delete(ctx context.Context, recordID, uploaderID uuid.UUID) error
}

var errNoUploader = errors.New("uploader id not found in context")

// Contracts handles gRPC endpoints for contract records.
type Contracts struct {
	contractService ContractService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

var _ ContractsServer = (*Contracts)(nil)

// NewContracts creates a new Contracts handler.
func NewContracts(contractService ContractService, contextManager model.ContextManager, logger *logger.Logger) *Contracts {
	return &Contracts{
		contractService: contractService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// AnalyzeContract fingerprints the upload and returns a stored or fresh analysis.
func (h *Contracts) AnalyzeContract(ctx context.Context, req *AnalyzeContractRequest) (*AnalyzeContractResponse, error) {
	h.logger.Debug("Contracts handler: processing analyze request",
		"file_name", req.FileName,
		"file_size", len(req.Content))

	uploaderID, err := h.uploaderID(ctx)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	if strings.TrimSpace(req.FileName) == "" {
		return nil, status.Error(codes.InvalidArgument, "file name is required")
	}
	if len(req.Content) == 0 {
		return nil, status.Error(codes.InvalidArgument, "file content is required")
	}

	result, err := h.contractService.AnalyzeOrReuse(ctx, model.UploadParams{
		UploaderID: uploaderID,
		FileName:   req.FileName,
		FileType:   req.FileType,
		Data:       req.Content,
	})
	if err != nil {
		h.logger.Error("Contracts handler: analyze failed",
			"uploader_id", uploaderID,
			"file_name", req.FileName,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Contracts handler: analyze served",
		"uploader_id", uploaderID,
		"record_id", result.Record.ID,
		"is_duplicate", result.IsDuplicate)

	return &AnalyzeContractResponse{
		IsDuplicate: result.IsDuplicate,
		Record:      toRecord(result.Record),
		Content:     toContent(result.Content),
		Analysis:    result.Analysis,
	}, nil
}

// GetContract returns a decrypted record owned by the caller.
func (h *Contracts) GetContract(ctx context.Context, req *GetContractRequest) (*GetContractResponse, error) {
	uploaderID, err := h.uploaderID(ctx)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	recordID, err := uuid.Parse(req.RecordID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid record id")
	}

	view, err := h.contractService.GetRecord(ctx, recordID, uploaderID)
	if err != nil {
		h.logger.Error("Contracts handler: get record failed",
			"uploader_id", uploaderID,
			"record_id", recordID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &GetContractResponse{
		Record:   toRecord(view.Record),
		Content:  toContent(view.Content),
		Analysis: view.Analysis,
	}, nil
}

// ListContracts returns one page of the caller's record metadata.
func (h *Contracts) ListContracts(ctx context.Context, req *ListContractsRequest) (*ListContractsResponse, error) {
	uploaderID, err := h.uploaderID(ctx)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	page, err := h.contractService.ListRecords(ctx, model.ListFilter{
		UploaderID: uploaderID,
		Status:     model.RecordStatus(req.Status),
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		h.logger.Error("Contracts handler: list records failed",
			"uploader_id", uploaderID,
			"error", err.Error())
		return nil, handleError(err)
	}

	items := make([]Record, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, toRecord(item))
	}

	return &ListContractsResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

func (h *Contracts) GetStats(ctx context.Context, _ *GetStatsRequest) (*GetStatsResponse, error) {
	uploaderID, err := h.uploaderID(ctx)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	stats, err := h.contractService.Stats(ctx, uploaderID)
	if err != nil {
		h.logger.Error("Contracts handler: stats failed",
			"uploader_id", uploaderID,
			"error", err.Error())
		return nil, handleError(err)
	}

	byType := stats.ByFileType
	if byType == nil {
		byType = map[string]int64{}
	}

	return &GetStatsResponse{
		TotalRecords:       stats.TotalRecords,
		TotalAccessCount:   stats.TotalAccessCount,
		AverageAccessCount: stats.AverageAccessCount,
		ByFileType:         byType,
	}, nil
}

func (h *Contracts) ArchiveContract(ctx context.Context, req *ArchiveContractRequest) (*Empty, error) {
	return h.changeStatus(ctx, req.RecordID, "archive", h.contractService.Archive)
}

func (h *Contracts) DeleteContract(ctx context.Context, req *DeleteContractRequest) (*Empty, error) {
	return h.changeStatus(ctx, req.RecordID, "delete", h.contractService.Delete)
}

func (h *Contracts) changeStatus(ctx context.Context, rawID, op string, apply func(context.Context, uuid.UUID, uuid.UUID) error) (*Empty, error) {
	uploaderID, err := h.uploaderID(ctx)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	recordID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid record id")
	}

	if err := apply(ctx, recordID, uploaderID); err != nil {
		h.logger.Error("Contracts handler: "+op+" failed",
			"uploader_id", uploaderID,
			"record_id", recordID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Contracts handler: "+op+" applied",
		"uploader_id", uploaderID,
		"record_id", recordID)

	return &Empty{}, nil
}

func (h *Contracts) uploaderID(ctx context.Context) (uuid.UUID, error) {
	uploaderID, ok := h.contextManager.UploaderIDFromContext(ctx)
	if !ok {
		return uuid.Nil, errNoUploader
	}
	return uploaderID, nil
}
