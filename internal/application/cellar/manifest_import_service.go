package cellar

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
	csvimport "github.com/vintrade/backend/internal/infrastructure/import"
	"go.uber.org/zap"
)

const manifestMaxErrors = 100

// ManifestImportService registers inbound batches and serializes
// received stock from CSV manifests supplied by the bonded warehouse.
type ManifestImportService struct {
	inbound *InboundService
	logger  *zap.Logger
}

// NewManifestImportService creates a new ManifestImportService
func NewManifestImportService(inbound *InboundService, logger *zap.Logger) *ManifestImportService {
	return &ManifestImportService{
		inbound: inbound,
		logger:  logger,
	}
}

func batchManifestRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field("allocation_id").Required().UUID().Build(),
		csvimport.Field("location_id").Required().UUID().Build(),
		csvimport.Field("purchase_order_ref").String().MaxLength(100).Build(),
		csvimport.Field("expected_quantity").Required().Int().Build(),
	}
}

func serialManifestRules() []csvimport.FieldRule {
	return []csvimport.FieldRule{
		csvimport.Field("serial").Required().String().MinLength(1).MaxLength(64).Build(),
	}
}

// ImportBatchManifest registers one inbound batch per manifest row.
// Rows that fail validation or registration are reported back with
// their line numbers; valid rows are not rolled back when later rows
// fail, matching how deliveries arrive and are booked one by one.
func (s *ManifestImportService) ImportBatchManifest(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, r io.Reader) (*ManifestImportResponse, error) {
	session := csvimport.NewImportSession(userID, csvimport.EntityBatchManifests, fileName, fileSize)

	parser, err := csvimport.NewCSVParser(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_MANIFEST", err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("INVALID_MANIFEST", err.Error())
	}
	if missing := parser.ValidateHeaders([]string{"allocation_id", "location_id", "expected_quantity"}); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_MANIFEST", "manifest is missing required columns: "+strings.Join(missing, ", "))
	}

	validator := csvimport.NewFieldValidator(batchManifestRules(), manifestMaxErrors)
	errs := csvimport.NewErrorCollection(manifestMaxErrors)
	session.UpdateState(csvimport.StateImporting)

	resp := &ManifestImportResponse{SessionID: session.ID}
	for {
		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			errs.Add(csvimport.NewRowError(parser.CurrentRow(), "", csvimport.ErrCodeImportMalformedRow, err.Error()))
			resp.ErrorRows++
			continue
		}
		if row.IsEmpty() {
			continue
		}
		resp.TotalRows++

		if !validator.ValidateRow(row) {
			resp.ErrorRows++
			continue
		}

		req := &RegisterBatchRequest{
			AllocationID:     uuid.MustParse(row.Get("allocation_id")),
			LocationID:       uuid.MustParse(row.Get("location_id")),
			PurchaseOrderRef: row.Get("purchase_order_ref"),
		}
		req.ExpectedQuantity, _ = strconv.ParseInt(row.Get("expected_quantity"), 10, 64)
		if req.ExpectedQuantity < 1 {
			errs.Add(csvimport.NewRowErrorWithValue(row.LineNumber, "expected_quantity",
				csvimport.ErrCodeImportInvalidRange, "expected_quantity must be at least 1", row.Get("expected_quantity")))
			resp.ErrorRows++
			continue
		}

		batch, err := s.inbound.RegisterBatch(ctx, req)
		if err != nil {
			errs.Add(csvimport.NewRowError(row.LineNumber, "", csvimport.ErrCodeImportValidation, err.Error()))
			resp.ErrorRows++
			continue
		}
		resp.Batches = append(resp.Batches, batch.ID)
	}

	for _, e := range validator.Errors().Errors() {
		errs.Add(e)
	}
	resp.Errors = errs.Errors()
	s.finishSession(session, resp.TotalRows, resp.ErrorRows)

	s.logger.Info("Imported batch manifest",
		zap.String("session_id", session.ID.String()),
		zap.String("file", fileName),
		zap.Int("rows", resp.TotalRows),
		zap.Int("batches", len(resp.Batches)),
		zap.Int("errors", resp.ErrorRows),
	)
	return resp, nil
}

// ImportSerialManifest serializes a received batch from a manifest of
// serial numbers. The wine variant, format and ownership apply to
// every serial in the file; a manifest that mixes variants has to be
// split upstream.
func (s *ManifestImportService) ImportSerialManifest(ctx context.Context, userID uuid.UUID, batchID uuid.UUID, meta *SerialManifestRequest, fileName string, fileSize int64, r io.Reader) (*SerializeBatchResponse, error) {
	session := csvimport.NewImportSession(userID, csvimport.EntitySerialManifests, fileName, fileSize)

	parser, err := csvimport.NewCSVParser(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_MANIFEST", err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("INVALID_MANIFEST", err.Error())
	}
	if missing := parser.ValidateHeaders([]string{"serial"}); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_MANIFEST", "manifest is missing required columns: "+strings.Join(missing, ", "))
	}

	validator := csvimport.NewFieldValidator(serialManifestRules(), manifestMaxErrors)
	session.UpdateState(csvimport.StateImporting)

	var serials []string
	seen := make(map[string]int)
	rowCount := 0
	for {
		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			session.UpdateState(csvimport.StateFailed)
			return nil, shared.NewDomainError("INVALID_MANIFEST", err.Error())
		}
		if row.IsEmpty() {
			continue
		}
		rowCount++
		if !validator.ValidateRow(row) {
			continue
		}
		serial := row.Get("serial")
		if prev, dup := seen[serial]; dup {
			session.UpdateState(csvimport.StateFailed)
			return nil, shared.NewDomainError("DUPLICATE_SERIAL",
				"Serial "+serial+" appears on lines "+strconv.Itoa(prev)+" and "+strconv.Itoa(row.LineNumber))
		}
		seen[serial] = row.LineNumber
		serials = append(serials, serial)
	}

	if errors := validator.Errors().Errors(); len(errors) > 0 {
		session.UpdateState(csvimport.StateFailed)
		return nil, shared.NewDomainError("INVALID_MANIFEST", errors[0].Message)
	}
	if len(serials) == 0 {
		session.UpdateState(csvimport.StateFailed)
		return nil, shared.NewDomainError("EMPTY_MANIFEST", "Serial manifest contains no serials")
	}

	resp, err := s.inbound.SerializeBatch(ctx, batchID, &SerializeBatchRequest{
		Serials:             serials,
		WineVariantID:       meta.WineVariantID,
		FormatID:            meta.FormatID,
		Ownership:           meta.Ownership,
		CaseConfigurationID: meta.CaseConfigurationID,
		CaseSize:            meta.CaseSize,
	})
	if err != nil {
		session.UpdateState(csvimport.StateFailed)
		return nil, err
	}

	s.finishSession(session, rowCount, 0)
	s.logger.Info("Imported serial manifest",
		zap.String("session_id", session.ID.String()),
		zap.String("batch_id", batchID.String()),
		zap.Int("serials", len(serials)),
	)
	return resp, nil
}

func (s *ManifestImportService) finishSession(session *csvimport.ImportSession, total, errorRows int) {
	session.TotalRows = total
	session.ValidRows = total - errorRows
	session.ErrorRows = errorRows
	if errorRows > 0 {
		session.UpdateState(csvimport.StateFailed)
	} else {
		session.UpdateState(csvimport.StateCompleted)
	}
}
