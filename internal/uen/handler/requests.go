package handler

import (
	"uenvalidator/internal/uen/models"
	s "uenvalidator/pkg/string"
	"uenvalidator/pkg/validation"
)

// ValidateRequest carries the three candidate identifiers. It is bound from
// JSON on the API and from form fields on the HTML page.
type ValidateRequest struct {
	BusinessReg  string `json:"business_reg" validate:"max=256"`
	LocalCompany string `json:"local_company" validate:"max=256"`
	OtherEntity  string `json:"other_entity" validate:"max=256"`
}

func (r *ValidateRequest) Normalize() {
	s.TrimStrings(&r.BusinessReg, &r.LocalCompany, &r.OtherEntity)
}

func (r *ValidateRequest) Validate() error {
	return validation.Validate(r)
}

func (r *ValidateRequest) Record() models.Record {
	return models.Record{
		BusinessReg:  r.BusinessReg,
		LocalCompany: r.LocalCompany,
		OtherEntity:  r.OtherEntity,
	}
}

type ClassifyRequest struct {
	Value string `json:"value" validate:"max=256"`
}

func (r *ClassifyRequest) Normalize() {
	s.TrimStrings(&r.Value)
}

func (r *ClassifyRequest) Validate() error {
	return validation.Validate(r)
}
