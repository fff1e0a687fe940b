package service

import (
	"errors"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/fees"
	"github.com/vibast-solutions/ms-go-school-fees/app/installment"
	"github.com/vibast-solutions/ms-go-school-fees/app/plan"
)

var (
	ErrUnpricedGrade       = fees.ErrUnpricedGrade
	ErrUnknownPaymentType  = entity.ErrUnknownPaymentType
	ErrUnknownPlanType     = plan.ErrUnknownPlanType
	ErrUnknownFrequency    = installment.ErrUnknownFrequency
	ErrMissingInstallments = errors.New("installment option is required")
)

func keepFirstErr(current, candidate error) error {
	if current != nil {
		return current
	}
	return candidate
}
