package handler

import (
	"uenvalidator/internal/uen/models"
)

// ValidateResponse is returned with 200 for valid and invalid records alike.
type ValidateResponse struct {
	Valid        bool               `json:"valid"`
	FieldErrors  models.FieldErrors `json:"field_errors"`
	RecordErrors []string           `json:"record_errors"`
	Messages     []string           `json:"messages"`
}

func toValidateResponse(out models.Outcome) *ValidateResponse {
	recordErrs := out.RecordErrors
	if recordErrs == nil {
		recordErrs = []string{}
	}
	return &ValidateResponse{
		Valid:        out.Valid,
		FieldErrors:  out.FieldErrors,
		RecordErrors: recordErrs,
		Messages:     out.Messages(),
	}
}

type ClassifyResponse struct {
	Value string `json:"value"`
	Kind  string `json:"kind"`
	Valid bool   `json:"valid"`
}

const kindUnknown = "unknown"

func toClassifyResponse(value string, kind models.Kind, ok bool) *ClassifyResponse {
	k := string(kind)
	if !ok || kind == models.KindUnknown {
		k = kindUnknown
	}
	return &ClassifyResponse{Value: value, Kind: k, Valid: ok}
}
