package v1

import "github.com/shenikar/live_location_sync/internal/models"

// DTOToReportModel преобразует DTO отчета в доменную модель. Поля уже проверены на наличие.
func DTOToReportModel(dto SubmitReportRequest) *models.PositionReport {
	return &models.PositionReport{
		EntityID:   *dto.EntityID,
		Latitude:   *dto.Latitude,
		Longitude:  *dto.Longitude,
		Accuracy:   dto.Accuracy,
		CapturedAt: *dto.CapturedAt,
	}
}

// DTOToEntityModel преобразует DTO провижининга в доменную модель
func DTOToEntityModel(dto CreateEntityRequest) *models.TrackedEntity {
	entity := &models.TrackedEntity{
		CaretakerID: *dto.CaretakerID,
		Label:       dto.Label,
	}
	if dto.ID != nil {
		entity.ID = *dto.ID
	}
	return entity
}

// ModelToLiveStateResponse преобразует текущее состояние в DTO; nil остается nil
func ModelToLiveStateResponse(model *models.LiveState) *LiveStateResponse {
	if model == nil {
		return nil
	}
	return &LiveStateResponse{
		EntityID:   model.EntityID,
		Latitude:   model.Latitude,
		Longitude:  model.Longitude,
		Accuracy:   model.Accuracy,
		CapturedAt: model.CapturedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// ModelsToHistoryResponses преобразует слайс записей истории в слайс DTO
func ModelsToHistoryResponses(entries []*models.HistoryEntry) []*HistoryEntryResponse {
	responses := make([]*HistoryEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = &HistoryEntryResponse{
			ID:         e.ID,
			EntityID:   e.EntityID,
			Latitude:   e.Latitude,
			Longitude:  e.Longitude,
			Accuracy:   e.Accuracy,
			CapturedAt: e.CapturedAt,
			AdmittedAt: e.AdmittedAt,
		}
	}
	return responses
}

// ModelToEntityResponse преобразует сущность в DTO
func ModelToEntityResponse(model *models.TrackedEntity) *EntityResponse {
	return &EntityResponse{
		ID:          model.ID,
		CaretakerID: model.CaretakerID,
		Label:       model.Label,
		CreatedAt:   model.CreatedAt,
	}
}

// ModelsToEntityResponses преобразует слайс сущностей в слайс DTO
func ModelsToEntityResponses(entities []*models.TrackedEntity) []*EntityResponse {
	responses := make([]*EntityResponse, len(entities))
	for i, e := range entities {
		responses[i] = ModelToEntityResponse(e)
	}
	return responses
}
